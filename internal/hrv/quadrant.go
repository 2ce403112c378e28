package hrv

import "math"

// 陰陽 × 虛實 四象限分类
//
//	X = ln(LF/HF)  → 陰 ↔ 陽
//	Y = ln(TP)     → 虛 ↔ 實
//
// 不做医疗诊断，只做体质倾向分类：
// 陽實型 / 陽虛型 / 陰實型 / 陰虛型 / 陰陽平衡型 / 未知

// YinYang 阴阳判定结果
type YinYang string

const (
	YinYangYang    YinYang = "陽"
	YinYangYin     YinYang = "陰"
	YinYangUnknown YinYang = "未知"
)

// XuShi 虚实判定结果
type XuShi string

const (
	XuShiShi     XuShi = "實"
	XuShiXu      XuShi = "虛"
	XuShiPing    XuShi = "平"
	XuShiUnknown XuShi = "未知"
)

// Quadrant 四象限主分类
type Quadrant string

const (
	QuadrantYangShi  Quadrant = "陽實型"
	QuadrantYangXu   Quadrant = "陽虛型"
	QuadrantYinShi   Quadrant = "陰實型"
	QuadrantYinXu    Quadrant = "陰虛型"
	QuadrantBalanced Quadrant = "陰陽平衡型"
	QuadrantUnknown  Quadrant = "未知"
)

// DefaultYinYangThreshold 阴阳判定阈值（ln(LF/HF) 与 0 比较）
const DefaultYinYangThreshold = 0.0

// ClassifyYinYang 阴阳判定：依 ln(LF/HF)
//
// ln(LF/HF) > threshold 视为陽，<= threshold 视为陰。
// 仅当输入缺失（NaN/Inf 标记）时返回未知：恰好等于阈值判为陰，不是未知。
func ClassifyYinYang(lnLFHF, threshold float64) YinYang {
	if math.IsNaN(lnLFHF) || math.IsInf(lnLFHF, 0) {
		return YinYangUnknown
	}
	if lnLFHF > threshold {
		return YinYangYang
	}
	return YinYangYin
}

// ClassifyXuShi 虚实判定：依 ln(TP)
//
// mu  = 能量基准值（POC 固定 6.0，未来可依年龄带调整）
// tol = ±容许范围，超出视为虛 / 實，中间视为「平」。
// 边界含端点：ln(TP) 恰为 mu±tol 时判实 / 判虚，不是平。
func ClassifyXuShi(lnTP, mu, tol float64) XuShi {
	if math.IsNaN(lnTP) || math.IsInf(lnTP, 0) {
		return XuShiUnknown
	}
	switch {
	case lnTP >= mu+tol:
		return XuShiShi
	case lnTP <= mu-tol:
		return XuShiXu
	default:
		return XuShiPing
	}
}

// ClassifyQuadrant 四象限：陰陽 × 虛實
//
// 先查四象限组合，查不到且虚实为「平」时视为相对平衡，
// 其余情况（任一轴未知）返回未知。两段回退顺序不可颠倒，
// 否则「平」会被误判为未知。
func ClassifyQuadrant(yinYang YinYang, xuShi XuShi) Quadrant {
	switch {
	case yinYang == YinYangYang && xuShi == XuShiShi:
		return QuadrantYangShi
	case yinYang == YinYangYang && xuShi == XuShiXu:
		return QuadrantYangXu
	case yinYang == YinYangYin && xuShi == XuShiShi:
		return QuadrantYinShi
	case yinYang == YinYangYin && xuShi == XuShiXu:
		return QuadrantYinXu
	}

	// 介于虚实之间的状况，视为相对平衡
	if xuShi == XuShiPing {
		return QuadrantBalanced
	}

	return QuadrantUnknown
}

// ClassificationResult 四象限分析结果（Measurement 的纯投影，无独立生命周期）
type ClassificationResult struct {
	YinYang             YinYang  `json:"yin_yang"`
	XuShi               XuShi    `json:"xu_shi"`
	Quadrant            Quadrant `json:"quadrant"`
	X                   float64  `json:"x"`
	Y                   float64  `json:"y"`
	InHealthyZone       bool     `json:"in_healthy_zone"`
	HealthyZoneDistance float64  `json:"healthy_zone_distance"`
}

// AnalyzeQuadrant 整体分析入口：Measurement → 四象限分析结果
func AnalyzeQuadrant(m Measurement) ClassificationResult {
	lnLFHF := m.LnLFHF()
	lnTP := m.LnTP()

	yinYang := ClassifyYinYang(lnLFHF, DefaultYinYangThreshold)
	xuShi := ClassifyXuShi(lnTP, HealthyZoneMu, HealthyZoneTol)

	return ClassificationResult{
		YinYang:             yinYang,
		XuShi:               xuShi,
		Quadrant:            ClassifyQuadrant(yinYang, xuShi),
		X:                   m.X(),
		Y:                   m.Y(),
		InHealthyZone:       m.InHealthyZone(),
		HealthyZoneDistance: m.HealthyZoneDistance(),
	}
}
