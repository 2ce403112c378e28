// Package hrv 提供 HRV × 中医体质分析的核心计算：
// - 衍生指标（ln 值、能量效率、四象限坐标、Healthy Zone 距离）
// - 阴阳 × 虚实 四象限分类
// - TP / RV / SDNN 三指标分级
// - 生理特征与体质报告生成
//
// 所有计算均为纯函数：同一 Measurement 输入必然产生同一输出，
// 无 I/O、无共享状态，可在并发环境下安全使用（只读）。
package hrv

import "math"

// lnEps 安全对数的最小正值替代（缺失/非正数据退化为保守低读数）
const lnEps = 1e-9

// Healthy Zone 参数
// μ = 6.0 为 POC 初版固定值，未来改为年龄分层
const (
	HealthyZoneMu  = 6.0
	HealthyZoneTol = 0.5
)

// SafeLn 安全对数
//
// 避免 0、负值、数据缺失时崩溃：x <= 0 或 NaN 时以 1e-9 代入，
// 保证任意实数输入都返回有限值。所有对数衍生指标必须经过此函数。
func SafeLn(x float64) float64 {
	if math.IsNaN(x) || x <= 0 {
		x = lnEps
	}
	return math.Log(x)
}

// Measurement 一次 HRV 量测的原始数据快照（不可变值对象）
//
// 所有字段缺失时默认 0.0；衍生指标按需计算、不缓存
// （O(1) 纯计算，无缓存必要）。
type Measurement struct {
	HR      float64 // 心率
	SDNN    float64 // NN 间期标准差（上游记录字段名为 SD）
	RV      float64 // 恢复力指标
	ER      float64 // 熵率（仅透传，核心计算不使用）
	N       float64 // 采样数（仅透传）
	TP      float64 // 总功率
	LF      float64 // 低频功率
	HF      float64 // 高频功率
	NN      float64 // NN 间期均值（仅透传）
	Balance float64 // 自律神经平衡指数（仅透传）
}

// LnTP ln(TP)
func (m Measurement) LnTP() float64 { return SafeLn(m.TP) }

// LnLF ln(LF)
func (m Measurement) LnLF() float64 { return SafeLn(m.LF) }

// LnHF ln(HF)
func (m Measurement) LnHF() float64 { return SafeLn(m.HF) }

// LnLFHF ln(LF/HF) = lnLF - lnHF
func (m Measurement) LnLFHF() float64 { return m.LnLF() - m.LnHF() }

// TPQ 能量效率 TP_Q = TP / (LF + HF)
func (m Measurement) TPQ() float64 {
	denom := m.LF + m.HF
	if denom <= 0 {
		denom = lnEps
	}
	return m.TP / denom
}

// LnTPQ ln(TP_Q)
func (m Measurement) LnTPQ() float64 { return SafeLn(m.TPQ()) }

// X 四象限 X 轴 = ln(LF/HF) → 陰 ←→ 陽
func (m Measurement) X() float64 { return m.LnLFHF() }

// Y 四象限 Y 轴 = ln(TP) → 虛 ←→ 實
func (m Measurement) Y() float64 { return m.LnTP() }

// InHealthyZone 是否落在 Healthy Zone
//
// 定义：|ln(LF/HF)| ≤ 0.5 且 |ln(TP) − μ| ≤ 0.5
func (m Measurement) InHealthyZone() bool {
	return math.Abs(m.LnLFHF()) <= HealthyZoneTol &&
		math.Abs(m.LnTP()-HealthyZoneMu) <= HealthyZoneTol
}

// HealthyZoneDistance 与 Healthy Zone 中心点 (0, μ) 的距离 D′
//
// 简化版：X、Y 与健康中心点的欧氏距离。
func (m Measurement) HealthyZoneDistance() float64 {
	dx := m.X()
	dy := m.Y() - HealthyZoneMu
	return math.Sqrt(dx*dx + dy*dy)
}

// AsMap 统一输出格式（供 summary、export、API 使用）
func (m Measurement) AsMap() map[string]float64 {
	return map[string]float64{
		"HR":                    m.HR,
		"SDNN":                  m.SDNN,
		"RV":                    m.RV,
		"TP":                    m.TP,
		"LF":                    m.LF,
		"HF":                    m.HF,
		"lnTP":                  m.LnTP(),
		"lnLFHF":                m.LnLFHF(),
		"TPQ":                   m.TPQ(),
		"lnTPQ":                 m.LnTPQ(),
		"quadrant_X":            m.X(),
		"quadrant_Y":            m.Y(),
		"healthy_zone_distance": m.HealthyZoneDistance(),
	}
}
