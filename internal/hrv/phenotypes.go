package hrv

// 依据四象限体质、TP / RV / SDNN 分级与心率，
// 产生一组「常见生理特征（非疾病）」描述。

// quadrantPhenotypes 各四象限基本特征
var quadrantPhenotypes = map[Quadrant][]string{
	QuadrantYangShi: {
		"容易感到緊繃或煩躁，情緒起伏偏大",
		"肩頸容易緊、偶爾會覺得頭脹或頭重",
		"睡眠較淺，容易半夜醒來或作夢較多",
		"出汗較多或容易感到燥熱",
	},
	QuadrantYangXu: {
		"手腳容易冰冷，體力較難維持一整天",
		"早上起床較吃力，睡醒仍覺得疲倦",
		"稍微活動或走路就容易感到喘或累",
		"下午或晚上精神反而比白天好",
	},
	QuadrantYinShi: {
		"身體有些沉重感，容易覺得懶得動",
		"下肢或腳踝偶爾有水腫、緊繃感",
		"飲食稍多就會覺得脹氣或脹滿",
		"體重較不容易下降，代謝感覺偏慢",
	},
	QuadrantYinXu: {
		"容易覺得燥熱或心浮氣躁，晚上較難安靜下來",
		"睡眠品質易受影響，可能有淺眠、多夢或入睡困難",
		"時常感到口乾、眼乾或喉嚨偏乾",
		"排便偏乾硬，較容易便秘",
	},
	QuadrantBalanced: {
		"白天精神尚可，工作與日常活動多能應付",
		"情緒大致穩定，壓力來時仍能調適",
		"睡眠品質尚可，偶爾受外在因素干擾",
	},
}

// phenotypeUnknown 未知体质时的单条通用描述
const phenotypeUnknown = "目前數據較不足，難以明確描述體質特徵。"

// 依分级微调的补充描述（每指标三档各一条）
var (
	tpPhenotypes = map[Level]string{
		LevelHigh: "整體可用能量尚足，活動量較大時仍能撐得住。",
		LevelMid:  "日常活動尚可負荷，但若連續熬夜或加班，恢復速度會變慢。",
		LevelLow:  "稍多一點的工作或壓力，就容易覺得疲憊或懶散無力。",
	}
	rvPhenotypes = map[Level]string{
		LevelHigh: "只要睡眠充足，通常隔天精神能明顯恢復。",
		LevelMid:  "恢復力普通，忙碌幾天後會需要較長時間調整。",
		LevelLow:  "熬夜或壓力累積後，隔天仍感到疲勞、恢復較慢。",
	}
	sdnnPhenotypes = map[Level]string{
		LevelHigh: "身體適應環境變化的能力不錯，壓力來時仍有一定調節空間。",
		LevelMid:  "在多數情況下能維持穩定，但長期壓力可能逐漸累積。",
		LevelLow:  "對壓力與作息變動較敏感，容易出現疲勞、緊繃或睡不好。",
	}
)

// GeneratePhenotypes 产生生理特征列表（不做医疗诊断，只描述倾向）
//
// 组合顺序：四象限基本特征 → TP / RV / SDNN 分级补充 → 心率补充，
// 最后去重并保持首次出现顺序。结果必非空（四象限基础列表至少一条）。
//
// 心率补充使用带间隙的区间：hr > 85 / 60 ≤ hr ≤ 80 / 40 < hr < 60；
// (80, 85] 与 hr ≤ 40 刻意不产生描述（与 summary 的心率判读区间不同，
// 两者为独立的呈现规则，保持原样）。
func GeneratePhenotypes(m Measurement, quadrant Quadrant, grades LevelGrades) []string {
	var phenos []string

	if base, ok := quadrantPhenotypes[quadrant]; ok {
		phenos = append(phenos, base...)
	} else {
		phenos = append(phenos, phenotypeUnknown)
	}

	if s, ok := tpPhenotypes[grades.TP]; ok {
		phenos = append(phenos, s)
	}
	if s, ok := rvPhenotypes[grades.RV]; ok {
		phenos = append(phenos, s)
	}
	if s, ok := sdnnPhenotypes[grades.SDNN]; ok {
		phenos = append(phenos, s)
	}

	// 依心率补充紧张感
	hr := m.HR
	switch {
	case hr > 85:
		phenos = append(phenos, "本次量測心率偏快，代表當下較為緊繃或思緒較忙碌。")
	case hr >= 60 && hr <= 80:
		phenos = append(phenos, "本次量測心率落在一般靜息範圍，代表當下緊張程度尚可。")
	case hr > 40 && hr < 60:
		phenos = append(phenos, "本次量測心率偏慢，若平常有運動習慣，可能與訓練有關。")
	}

	// 去重，维持原顺序
	seen := make(map[string]struct{}, len(phenos))
	unique := make([]string, 0, len(phenos))
	for _, p := range phenos {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}

	return unique
}
