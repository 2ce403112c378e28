// hrv-report：命令行 Demo，直接用 Patient XML 产生体质分析报告。
//
// 用法：
//
//	hrv-report -file patient.xml
//	hrv-report                       # 使用内置示例数据
//	hrv-report -no-phenotypes        # 报告不附带生理特征列表
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"wisefido-hrv/internal/hrv"
	"wisefido-hrv/internal/parser"
)

// sampleXML 内置示例量测记录
const sampleXML = `<Patient Name="TOM" Sex="男" ID="20251015001"
         Height="175.0" Weight="67.0"
         Birthday="1974/06/06"
         TestTime="22:12:26" TestDate="2025-10-15"
         Age="51" HR="57" SD="63.7" RV="1861.00"
         ER="9" N="121" TP="4034" VL="1839"
         LF="1605" HF="528" NN="1051"
         ANSAgeMIN="-1" ANSAgeMAX="20" Balance="-1.2"/>`

func main() {
	file := flag.String("file", "", "Patient XML 文件路径（缺省时使用内置示例）")
	noPhenotypes := flag.Bool("no-phenotypes", false, "报告不附带生理特征列表")
	asJSON := flag.Bool("json", false, "以 JSON 输出完整报告")
	flag.Parse()

	xmlText := sampleXML
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read file: %v\n", err)
			os.Exit(1)
		}
		xmlText = string(data)
	}

	m, meta, err := parser.ParsePatientXML(xmlText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse patient record: %v\n", err)
		os.Exit(1)
	}

	info := hrv.PatientInfo{Name: meta.Name, Sex: meta.Sex, Age: meta.Age, BMI: meta.BMI}
	report := hrv.GenerateSummary(m, info, hrv.SummaryOptions{IncludePhenotypes: !*noPhenotypes})

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("\n===== %s =====\n\n", report.Title)
	fmt.Println(report.Summary)

	if len(report.Phenotypes) > 0 {
		fmt.Println("\n===== 常見生理特徵（可能符合您的狀態） =====")
		for _, p := range report.Phenotypes {
			fmt.Println(" -", p)
		}
	}

	fmt.Println("\n===== 養生建議 =====")
	for _, a := range report.Advice {
		fmt.Println(" -", a)
	}

	fmt.Println("\n===== META =====")
	for k, v := range report.Meta {
		fmt.Printf("%s: %v\n", k, v)
	}
}
