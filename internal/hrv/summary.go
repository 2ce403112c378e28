package hrv

import "fmt"

// 将四象限 + TP/RV/SDNN 分级转成一般人看得懂的体质说明、
// 生理特征与建议。

// quadrantDescriptions 四象限标签对应的一行说明
var quadrantDescriptions = map[Quadrant]string{
	QuadrantYangShi:  "交感偏強、能量偏高，容易處在「火力全開」但較難放鬆的狀態。",
	QuadrantYangXu:   "交感主導但能量不足，外表撐得住，內在較易疲憊與手腳冰冷。",
	QuadrantYinShi:   "副交感偏強、代謝較慢，偏向濕重、黏滯與循環較緩的體質。",
	QuadrantYinXu:    "陰液相對不足，較易燥熱、心煩與睡不好，恢復效率偏低。",
	QuadrantBalanced: "整體在陰陽與虛實之間相對平衡，屬於較理想的自律神經狀態。",
	QuadrantUnknown:  "目前數據不足以明確判定體質傾向，建議日後持續追蹤變化。",
}

// quadrantAdvice 依四象限给出的大方向建议（不做医疗诊断）
var quadrantAdvice = map[Quadrant][]string{
	QuadrantYangShi: {
		"留意情緒與血壓變化，避免長期熬夜與高刺激飲食（咖啡、能量飲）。",
		"安排固定的放鬆時間，如深呼吸、伸展、正念或散步，幫助降火與穩定自律神經。",
	},
	QuadrantYangXu: {
		"建立規律作息，避免熬夜，白天適度曬太陽，幫助提升陽氣與體力。",
		"可搭配輕中強度運動（快走、慢跑、肌力訓練），循序漸進補足體能。",
	},
	QuadrantYinShi: {
		"飲食上減少過甜、過油與冰冷食物，避免濕氣與黏滯感累積。",
		"增加適度活動與流汗機會，如快走或舒適流汗的運動，促進循環與代謝。",
	},
	QuadrantYinXu: {
		"避免長期熬夜與高壓環境，給自己足夠的睡眠與情緒休息時間。",
		"可多做溫和伸展、腹式呼吸與放鬆練習，幫助身心安定與陰液恢復。",
	},
	QuadrantBalanced: {
		"目前整體調節能力尚佳，建議持續維持良好作息與規律運動習慣。",
		"持續關注壓力與睡眠品質，避免長期超量負荷打破目前的平衡。",
	},
	QuadrantUnknown: {
		"建議在身心狀態穩定時再次量測，或搭配較長期的追蹤評估自律神經狀態。",
	},
}

// QuadrantDescription 四象限一行说明（未知回退）
func QuadrantDescription(q Quadrant) string {
	if d, ok := quadrantDescriptions[q]; ok {
		return d
	}
	return quadrantDescriptions[QuadrantUnknown]
}

// QuadrantAdvice 四象限养生建议（未知回退）
func QuadrantAdvice(q Quadrant) []string {
	if a, ok := quadrantAdvice[q]; ok {
		return a
	}
	return quadrantAdvice[QuadrantUnknown]
}

// interpretHR 用心率 HR 给一小段「神经张力」说明（非医疗判读）
//
// 区间为 <60 / 60–80 / >80，与 GeneratePhenotypes 的心率区间刻意不同，
// 两条规则各自保持原样。
func interpretHR(hr *float64) string {
	if hr == nil {
		return "心率資料不足，暫無法判讀目前的緊張程度。"
	}
	h := *hr
	switch {
	case h < 60:
		return "本次量測時心率偏低，若平時有運動習慣，可能與訓練或副交感較活躍有關。"
	case h <= 80:
		return "本次量測時心率落在一般靜息範圍，代表當下緊張程度大致穩定。"
	default:
		return "本次量測時心率偏快，代表當下可能較為緊繃、思緒忙碌或壓力稍高。"
	}
}

// interpretHealthyZone 解读与 Healthy Zone（健康参考区）距离 D′
func interpretHealthyZone(dist *float64) string {
	if dist == nil {
		return "目前無法計算與健康參考區的距離，但仍可作為體質傾向參考。"
	}
	d := *dist
	switch {
	case d < 0.7:
		return "測量點非常接近健康參考區，代表能量與陰陽調節相對理想。"
	case d < 1.5:
		return "測量點略偏離健康參考區，代表目前狀態有輕度失衡，但仍屬可調整範圍。"
	default:
		return "測量點明顯偏離健康參考區，代表身心能量與陰陽調節已有明顯落差，建議持續追蹤並調整作息。"
	}
}

// PatientInfo 报告使用的基本资料（均可缺省）
type PatientInfo struct {
	Name string
	Sex  string
	Age  *int
	BMI  *float64
}

// SummaryOptions 报告生成选项
type SummaryOptions struct {
	// IncludePhenotypes 是否附带生理特征列表（部分报告变体省略该字段）
	IncludePhenotypes bool
}

// DefaultSummaryOptions 默认选项：附带生理特征
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{IncludePhenotypes: true}
}

// Report 体质分析报告（构建后不再修改）
type Report struct {
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Phenotypes []string       `json:"phenotypes,omitempty"`
	Advice     []string       `json:"advice"`
	Meta       map[string]any `json:"meta"`
}

// GenerateSummary 核心接口：Measurement + 基本资料 → 结构化报告
//
// 全函数无错误路径：任何输入（包括全零）都产生完整、合法的报告，
// 查不到的表项一律回退到未知项。
func GenerateSummary(m Measurement, info PatientInfo, opts SummaryOptions) *Report {
	// 1) 四象限分析
	quad := AnalyzeQuadrant(m)

	// 2) TP / RV / SDNN 分级
	grades := GradeLevels(m)

	// 3) 标题
	var title string
	if quad.Quadrant == QuadrantUnknown || quad.Quadrant == "" {
		title = "目前體質傾向：尚待觀察"
	} else {
		title = fmt.Sprintf("目前體質傾向：%s", quad.Quadrant)
	}

	// 4) 整体解读 Summary（主段落）
	var namePart, agePart, sexPart, bmiPart string
	if info.Name != "" {
		namePart = fmt.Sprintf("%s（", info.Name)
	}
	if info.Age != nil {
		agePart = fmt.Sprintf("約 %d 歲、", *info.Age)
	}
	if info.Sex != "" {
		sexPart = fmt.Sprintf("%s，", info.Sex)
	}
	if info.BMI != nil {
		bmiPart = fmt.Sprintf("目前 BMI 約為 %.2f。", *info.BMI)
	}

	basicIntro := namePart + sexPart + agePart + "本次自律神經量測結果如下："

	hr := m.HR
	dist := quad.HealthyZoneDistance

	summaryParts := []string{
		basicIntro,
		fmt.Sprintf("依據 ln(TP) 與 ln(LF/HF) 的座標判定，目前屬於「%s」體質傾向（%s證、%s證）。%s",
			quad.Quadrant, quad.YinYang, quad.XuShi, QuadrantDescription(quad.Quadrant)),
		fmt.Sprintf("從三個關鍵指標來看：能量量級（TP）為「%s」、恢復力（RV）為「%s」、自律神經彈性（SDNN）為「%s」。",
			grades.TPLabel(), grades.RVLabel(), grades.SDNNLabel()),
		interpretHR(&hr),
		interpretHealthyZone(&dist),
		bmiPart,
	}
	summary := joinNonEmpty(summaryParts, " ")

	// 5) 生理特征（可选附带）
	var phenotypes []string
	if opts.IncludePhenotypes {
		phenotypes = GeneratePhenotypes(m, quad.Quadrant, grades)
	}

	// 6) 养生建议 + meta（供下游消费者使用的扁平映射）
	return &Report{
		Title:      title,
		Summary:    summary,
		Phenotypes: phenotypes,
		Advice:     QuadrantAdvice(quad.Quadrant),
		Meta: map[string]any{
			"quadrant":              string(quad.Quadrant),
			"yin_yang":              string(quad.YinYang),
			"xu_shi":                string(quad.XuShi),
			"TP_Level":              grades.TPLabel(),
			"RV_Level":              grades.RVLabel(),
			"SDNN_Level":            grades.SDNNLabel(),
			"HR":                    m.HR,
			"lnTP":                  m.LnTP(),
			"lnLFHF":                m.LnLFHF(),
			"healthy_zone_distance": dist,
		},
	}
}

// joinNonEmpty 以 sep 连接非空片段
func joinNonEmpty(parts []string, sep string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
