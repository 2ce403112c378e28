package hrv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyYinYang(t *testing.T) {
	assert.Equal(t, YinYangYang, ClassifyYinYang(0.1, DefaultYinYangThreshold))
	assert.Equal(t, YinYangYin, ClassifyYinYang(-0.5, DefaultYinYangThreshold))
	// 恰好等于阈值判为陰，不是未知
	assert.Equal(t, YinYangYin, ClassifyYinYang(0.0, DefaultYinYangThreshold))
	// 缺失标记才是未知
	assert.Equal(t, YinYangUnknown, ClassifyYinYang(math.NaN(), DefaultYinYangThreshold))
	assert.Equal(t, YinYangUnknown, ClassifyYinYang(math.Inf(1), DefaultYinYangThreshold))
}

func TestClassifyXuShi_Boundaries(t *testing.T) {
	mu, tol := HealthyZoneMu, HealthyZoneTol

	// 边界含端点：恰为 μ±tol 判实 / 判虚，不是平
	assert.Equal(t, XuShiShi, ClassifyXuShi(6.5, mu, tol))
	assert.Equal(t, XuShiXu, ClassifyXuShi(5.5, mu, tol))

	assert.Equal(t, XuShiShi, ClassifyXuShi(8.3, mu, tol))
	assert.Equal(t, XuShiXu, ClassifyXuShi(2.0, mu, tol))
	assert.Equal(t, XuShiPing, ClassifyXuShi(6.0, mu, tol))
	assert.Equal(t, XuShiPing, ClassifyXuShi(6.49, mu, tol))
	assert.Equal(t, XuShiPing, ClassifyXuShi(5.51, mu, tol))

	assert.Equal(t, XuShiUnknown, ClassifyXuShi(math.NaN(), mu, tol))
}

func TestClassifyQuadrant_Table(t *testing.T) {
	assert.Equal(t, QuadrantYangShi, ClassifyQuadrant(YinYangYang, XuShiShi))
	assert.Equal(t, QuadrantYangXu, ClassifyQuadrant(YinYangYang, XuShiXu))
	assert.Equal(t, QuadrantYinShi, ClassifyQuadrant(YinYangYin, XuShiShi))
	assert.Equal(t, QuadrantYinXu, ClassifyQuadrant(YinYangYin, XuShiXu))
}

func TestClassifyQuadrant_FallbackOrder(t *testing.T) {
	// 虚实为「平」时无论阴阳如何都视为相对平衡（包括阴阳未知）
	assert.Equal(t, QuadrantBalanced, ClassifyQuadrant(YinYangYang, XuShiPing))
	assert.Equal(t, QuadrantBalanced, ClassifyQuadrant(YinYangYin, XuShiPing))
	assert.Equal(t, QuadrantBalanced, ClassifyQuadrant(YinYangUnknown, XuShiPing))

	// 其余情况（任一轴未知）为未知
	assert.Equal(t, QuadrantUnknown, ClassifyQuadrant(YinYangUnknown, XuShiShi))
	assert.Equal(t, QuadrantUnknown, ClassifyQuadrant(YinYangUnknown, XuShiXu))
	assert.Equal(t, QuadrantUnknown, ClassifyQuadrant(YinYangYang, XuShiUnknown))
	assert.Equal(t, QuadrantUnknown, ClassifyQuadrant(YinYangUnknown, XuShiUnknown))
}

func TestAnalyzeQuadrant_Tom(t *testing.T) {
	// HR=57, SDNN=63.7, RV=1861, TP=4034, LF=1605, HF=528
	// → lnLFHF ≈ 1.112 > 0 判陽；lnTP ≈ 8.303 ≥ 6.5 判實 → 陽實型
	result := AnalyzeQuadrant(tomMeasurement())

	assert.Equal(t, YinYangYang, result.YinYang)
	assert.Equal(t, XuShiShi, result.XuShi)
	assert.Equal(t, QuadrantYangShi, result.Quadrant)
	assert.InDelta(t, 1.112, result.X, 0.001)
	assert.InDelta(t, 8.303, result.Y, 0.001)
	assert.False(t, result.InHealthyZone)
	assert.InDelta(t, 2.557, result.HealthyZoneDistance, 0.001)
}

func TestAnalyzeQuadrant_AllZero(t *testing.T) {
	// 全零输入：lnLFHF = 0 判陰（0 不大于阈值）；lnTP ≈ -20.7 判虛 → 陰虛型
	result := AnalyzeQuadrant(Measurement{})

	assert.Equal(t, YinYangYin, result.YinYang)
	assert.Equal(t, XuShiXu, result.XuShi)
	assert.Equal(t, QuadrantYinXu, result.Quadrant)
}

func TestAnalyzeQuadrant_AlwaysKnownSet(t *testing.T) {
	valid := map[Quadrant]bool{
		QuadrantYangShi:  true,
		QuadrantYangXu:   true,
		QuadrantYinShi:   true,
		QuadrantYinXu:    true,
		QuadrantBalanced: true,
		QuadrantUnknown:  true,
	}

	cases := []Measurement{
		{},
		tomMeasurement(),
		{TP: -1, LF: -1, HF: -1},
		{TP: math.Exp(6.0), LF: 100, HF: 100},
		{TP: 1e12, LF: 1, HF: 1e12},
	}
	for _, m := range cases {
		result := AnalyzeQuadrant(m)
		assert.True(t, valid[result.Quadrant], "意外的象限值: %s", result.Quadrant)
		// 相同输入必然产生相同输出
		assert.Equal(t, result, AnalyzeQuadrant(m))
	}
}

func TestAnalyzeQuadrant_BalancedBand(t *testing.T) {
	// lnTP 落在 μ±tol 内 → 陰陽平衡型
	m := Measurement{TP: math.Exp(6.0), LF: 200, HF: 100}
	result := AnalyzeQuadrant(m)
	assert.Equal(t, XuShiPing, result.XuShi)
	assert.Equal(t, QuadrantBalanced, result.Quadrant)
}
