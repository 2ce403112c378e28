package hrv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePhenotypes_QuadrantBaseFirst(t *testing.T) {
	m := tomMeasurement()
	grades := GradeLevels(m)

	phenos := GeneratePhenotypes(m, QuadrantYangShi, grades)
	require.GreaterOrEqual(t, len(phenos), 4)

	// 四象限基本特征在前，顺序保持
	assert.Equal(t, quadrantPhenotypes[QuadrantYangShi], phenos[:4])
}

func TestGeneratePhenotypes_LevelStatements(t *testing.T) {
	m := Measurement{HR: 70}
	grades := LevelGrades{TP: LevelHigh, RV: LevelMid, SDNN: LevelLow}

	phenos := GeneratePhenotypes(m, QuadrantBalanced, grades)

	assert.Contains(t, phenos, tpPhenotypes[LevelHigh])
	assert.Contains(t, phenos, rvPhenotypes[LevelMid])
	assert.Contains(t, phenos, sdnnPhenotypes[LevelLow])
}

func TestGeneratePhenotypes_HRRanges(t *testing.T) {
	grades := LevelGrades{TP: LevelMid, RV: LevelMid, SDNN: LevelMid}
	hrStatements := []string{
		"本次量測心率偏快，代表當下較為緊繃或思緒較忙碌。",
		"本次量測心率落在一般靜息範圍，代表當下緊張程度尚可。",
		"本次量測心率偏慢，若平常有運動習慣，可能與訓練有關。",
	}
	containsAnyHR := func(phenos []string) string {
		for _, p := range phenos {
			for _, s := range hrStatements {
				if p == s {
					return s
				}
			}
		}
		return ""
	}

	cases := []struct {
		hr   float64
		want string // 空串表示不应出现心率描述
	}{
		{hr: 86, want: hrStatements[0]},
		{hr: 90, want: hrStatements[0]},
		{hr: 60, want: hrStatements[1]},
		{hr: 72, want: hrStatements[1]},
		{hr: 80, want: hrStatements[1]},
		{hr: 41, want: hrStatements[2]},
		{hr: 59.5, want: hrStatements[2]},
		// 刻意保留的间隙：(80, 85] 与 hr ≤ 40 不产生描述
		{hr: 81, want: ""},
		{hr: 85, want: ""},
		{hr: 40, want: ""},
		{hr: 35, want: ""},
		{hr: 0, want: ""},
	}

	for _, tc := range cases {
		m := Measurement{HR: tc.hr}
		phenos := GeneratePhenotypes(m, QuadrantBalanced, grades)
		assert.Equal(t, tc.want, containsAnyHR(phenos), "HR=%v", tc.hr)
	}
}

func TestGeneratePhenotypes_UnknownQuadrant(t *testing.T) {
	m := Measurement{}
	grades := GradeLevels(m)

	phenos := GeneratePhenotypes(m, QuadrantUnknown, grades)
	require.NotEmpty(t, phenos)
	assert.Equal(t, phenotypeUnknown, phenos[0])
}

func TestGeneratePhenotypes_NeverEmptyAndNoDuplicates(t *testing.T) {
	quadrants := []Quadrant{
		QuadrantYangShi, QuadrantYangXu, QuadrantYinShi, QuadrantYinXu,
		QuadrantBalanced, QuadrantUnknown,
	}
	measurements := []Measurement{
		{},
		tomMeasurement(),
		{HR: 90, SDNN: 80, RV: 2000, TP: 10000, LF: 500, HF: 500},
		{HR: 45},
	}

	for _, q := range quadrants {
		for _, m := range measurements {
			phenos := GeneratePhenotypes(m, q, GradeLevels(m))
			require.NotEmpty(t, phenos, "quadrant=%s", q)

			seen := make(map[string]struct{})
			for _, p := range phenos {
				_, dup := seen[p]
				assert.False(t, dup, "重复条目: %s", p)
				seen[p] = struct{}{}
			}
		}
	}
}
