// Package export 生成体质报告的 Excel 导出文件。
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"wisefido-hrv/internal/hrv"
	"wisefido-hrv/internal/repository"
)

const reportSheetName = "HRV Report"

// ReportExportHeader 量测值区块表头
var ReportExportHeader = []string{"Field", "Value"}

// GenerateReportExcel 生成单份体质报告的 Excel 文件
//
// 布局：基本资料与量测值（键值两列）→ 生理特征列表 → 养生建议列表。
func GenerateReportExcel(rec *repository.HRVReportRecord) ([]byte, error) {
	var rep hrv.Report
	if err := json.Unmarshal(rec.Report, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report json: %w", err)
	}

	f := excelize.NewFile()
	// 注意：不要在这里 defer Close()，WriteTo 需要文件保持打开

	index, err := f.NewSheet(reportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	rows := [][2]any{
		{"Report ID", rec.ReportID},
		{"Patient ID", rec.PatientID},
		{"Patient Name", rec.PatientName},
		{"Test Date", rec.TestDate},
		{"Test Time", rec.TestTime},
		{"Title", rep.Title},
		{"Quadrant", rec.Quadrant},
		{"Yin/Yang", rec.YinYang},
		{"Xu/Shi", rec.XuShi},
		{"TP Level", rec.TPLevel},
		{"RV Level", rec.RVLevel},
		{"SDNN Level", rec.SDNNLevel},
		{"HR", rec.HR},
		{"SDNN", rec.SDNN},
		{"RV", rec.RV},
		{"TP", rec.TP},
		{"LF", rec.LF},
		{"HF", rec.HF},
		{"ln(TP)", rec.LnTP},
		{"ln(LF/HF)", rec.LnLFHF},
		{"Healthy Zone Distance", rec.ZoneDist},
		{"Summary", rep.Summary},
	}

	// 表头
	for col, h := range ReportExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(reportSheetName, cell, h); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	// 键值区块
	rowIdx := 2
	for _, kv := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		valCell, _ := excelize.CoordinatesToCellName(2, rowIdx)
		if err := f.SetCellValue(reportSheetName, keyCell, kv[0]); err != nil {
			return nil, fmt.Errorf("failed to set cell: %w", err)
		}
		if err := f.SetCellValue(reportSheetName, valCell, kv[1]); err != nil {
			return nil, fmt.Errorf("failed to set cell: %w", err)
		}
		rowIdx++
	}

	// 生理特征列表
	rowIdx++
	writeListSection := func(title string, items []string) error {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetCellValue(reportSheetName, cell, title); err != nil {
			return err
		}
		rowIdx++
		for i, item := range items {
			idxCell, _ := excelize.CoordinatesToCellName(1, rowIdx)
			itemCell, _ := excelize.CoordinatesToCellName(2, rowIdx)
			if err := f.SetCellValue(reportSheetName, idxCell, i+1); err != nil {
				return err
			}
			if err := f.SetCellValue(reportSheetName, itemCell, item); err != nil {
				return err
			}
			rowIdx++
		}
		rowIdx++
		return nil
	}

	if len(rep.Phenotypes) > 0 {
		if err := writeListSection("常見生理特徵", rep.Phenotypes); err != nil {
			return nil, fmt.Errorf("failed to write phenotypes section: %w", err)
		}
	}
	if err := writeListSection("養生建議", rep.Advice); err != nil {
		return nil, fmt.Errorf("failed to write advice section: %w", err)
	}

	// 第一列加宽，便于阅读
	if err := f.SetColWidth(reportSheetName, "A", "A", 24); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(reportSheetName, "B", "B", 80); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}
