// Package parser 解析量测设备输出的 <Patient ...> 属性记录。
//
// 两段式摄取契约：
// 1. 结构性错误（空文档、缺少 <Patient> 节点、XML 损坏）快速失败；
// 2. 字段级数值错误静默退化（数值字段 → 0.0，可选字段 → nil），
//    保证下游纯计算层永远收到合法数字。
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wisefido-hrv/internal/hrv"
)

// PatientMeta <Patient> 记录中的基本资料（非 HRV 数值部分）
type PatientMeta struct {
	Name     string            `json:"name"`
	Sex      string            `json:"sex"`
	Age      *int              `json:"age"`
	Height   float64           `json:"height"`
	Weight   float64           `json:"weight"`
	BMI      *float64          `json:"bmi"`
	ID       string            `json:"id"`
	TestTime string            `json:"test_time"`
	TestDate string            `json:"test_date"`
	RawAttrs map[string]string `json:"raw_attr"`
}

// ParsePatientXML 解析 XML 文本 → Measurement + PatientMeta
//
// <Patient> 可以是根节点，也可以嵌套在任意外层节点内（取第一个）。
// 注意字段映射：XML 的 SD 属性对应 Measurement.SDNN。
func ParsePatientXML(xmlText string) (hrv.Measurement, *PatientMeta, error) {
	attrs, err := findPatientAttrs(xmlText)
	if err != nil {
		return hrv.Measurement{}, nil, err
	}

	height := getFloat(attrs, "Height")
	weight := getFloat(attrs, "Weight")
	var bmi *float64
	if height > 0 && weight > 0 {
		v := weight / ((height / 100) * (height / 100))
		bmi = &v
	}

	meta := &PatientMeta{
		Name:     getStr(attrs, "Name"),
		Sex:      getStr(attrs, "Sex"),
		Age:      getInt(attrs, "Age"),
		Height:   height,
		Weight:   weight,
		BMI:      bmi,
		ID:       getStr(attrs, "ID"),
		TestTime: getStr(attrs, "TestTime"),
		TestDate: getStr(attrs, "TestDate"),
		RawAttrs: attrs,
	}

	m := hrv.Measurement{
		HR:      getFloat(attrs, "HR"),
		SDNN:    getFloat(attrs, "SD"), // 上游记录字段名为 SD
		RV:      getFloat(attrs, "RV"),
		ER:      getFloat(attrs, "ER"),
		N:       getFloat(attrs, "N"),
		TP:      getFloat(attrs, "TP"),
		LF:      getFloat(attrs, "LF"),
		HF:      getFloat(attrs, "HF"),
		NN:      getFloat(attrs, "NN"),
		Balance: getFloat(attrs, "Balance"),
	}

	return m, meta, nil
}

// findPatientAttrs 扫描 XML token 流，取第一个 <Patient> 节点的属性
func findPatientAttrs(xmlText string) (map[string]string, error) {
	xmlText = strings.TrimSpace(xmlText)
	if xmlText == "" {
		return nil, fmt.Errorf("empty xml document")
	}

	dec := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !strings.EqualFold(start.Name.Local, "patient") {
			continue
		}
		attrs := make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			attrs[a.Name.Local] = a.Value
		}
		return attrs, nil
	}

	// 区分「XML 损坏」与「解析成功但没有 Patient 节点」
	if _, err := checkWellFormed(xmlText); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return nil, fmt.Errorf("patient element not found")
}

// checkWellFormed 完整走一遍 token 流，返回首个语法错误
func checkWellFormed(xmlText string) (bool, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func getStr(attrs map[string]string, key string) string {
	return strings.TrimSpace(attrs[key])
}

func getFloat(attrs map[string]string, key string) float64 {
	v, ok := attrs[key]
	if !ok || strings.TrimSpace(v) == "" {
		return 0.0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0.0
	}
	return f
}

func getInt(attrs map[string]string, key string) *int {
	v, ok := attrs[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	i := int(f)
	return &i
}
