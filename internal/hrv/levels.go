package hrv

// HRV 三大核心指标分级：
//
//	TP   → 能量量级（Energy Level，依 lnTP）
//	RV   → 恢复力（Recovery Level）
//	SDNN → 自律神经弹性（Resilience）
//
// 不分性别、不分年龄（POC 初版，后续可换成 μ±σ 模型）。
// 三条阶梯的边界均含上界端点（>=）。

// Level 三档分级
type Level string

const (
	LevelHigh Level = "高"
	LevelMid  Level = "中"
	LevelLow  Level = "低"
)

// 分级展示标签（括注为呈现细节，不参与判定逻辑）
var (
	tpLevelLabels = map[Level]string{
		LevelHigh: "高（能量充足）",
		LevelMid:  "中（一般）",
		LevelLow:  "低（能量不足）",
	}
	rvLevelLabels = map[Level]string{
		LevelHigh: "高（恢復力佳）",
		LevelMid:  "中（一般）",
		LevelLow:  "低（恢復偏弱）",
	}
	sdnnLevelLabels = map[Level]string{
		LevelHigh: "高（彈性好）",
		LevelMid:  "中（正常）",
		LevelLow:  "低（彈性不足）",
	}
)

// TPLevel TP 能量量级（输入 lnTP）
func TPLevel(lnTP float64) Level {
	switch {
	case lnTP >= 6.5:
		return LevelHigh
	case lnTP >= 5.5:
		return LevelMid
	default:
		return LevelLow
	}
}

// RVLevel RV 恢复力（输入原始 RV）
func RVLevel(rv float64) Level {
	switch {
	case rv >= 1500:
		return LevelHigh
	case rv >= 800:
		return LevelMid
	default:
		return LevelLow
	}
}

// SDNNLevel SDNN 自律神经弹性（输入原始 SDNN）
func SDNNLevel(sdnn float64) Level {
	switch {
	case sdnn >= 70:
		return LevelHigh
	case sdnn >= 50:
		return LevelMid
	default:
		return LevelLow
	}
}

// LevelGrades 三指标分级结果（Measurement 的纯投影）
type LevelGrades struct {
	TP   Level `json:"tp_level"`
	RV   Level `json:"rv_level"`
	SDNN Level `json:"sdnn_level"`
}

// GradeLevels Measurement → 三指标分级
func GradeLevels(m Measurement) LevelGrades {
	return LevelGrades{
		TP:   TPLevel(m.LnTP()),
		RV:   RVLevel(m.RV),
		SDNN: SDNNLevel(m.SDNN),
	}
}

// TPLabel TP 分级展示标签（如「高（能量充足）」）
func (g LevelGrades) TPLabel() string { return tpLevelLabels[g.TP] }

// RVLabel RV 分级展示标签
func (g LevelGrades) RVLabel() string { return rvLevelLabels[g.RV] }

// SDNNLabel SDNN 分级展示标签
func (g LevelGrades) SDNNLabel() string { return sdnnLevelLabels[g.SDNN] }
