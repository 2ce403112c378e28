package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HRVReportRecord hrv_report 表的一行（强类型领域模型，不使用 map[string]any）
type HRVReportRecord struct {
	ReportID    string          `json:"report_id"`
	PatientID   string          `json:"patient_id"`
	PatientName string          `json:"patient_name"`
	TestDate    string          `json:"test_date"`
	TestTime    string          `json:"test_time"`
	Quadrant    string          `json:"quadrant"`
	YinYang     string          `json:"yin_yang"`
	XuShi       string          `json:"xu_shi"`
	TPLevel     string          `json:"tp_level"`
	RVLevel     string          `json:"rv_level"`
	SDNNLevel   string          `json:"sdnn_level"`
	HR          float64         `json:"hr"`
	SDNN        float64         `json:"sdnn"`
	RV          float64         `json:"rv"`
	TP          float64         `json:"tp"`
	LF          float64         `json:"lf"`
	HF          float64         `json:"hf"`
	LnTP        float64         `json:"ln_tp"`
	LnLFHF      float64         `json:"ln_lfhf"`
	ZoneDist    float64         `json:"healthy_zone_distance"`
	Report      json.RawMessage `json:"report"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReportsRepository 体质报告 Repository
//
// 设计原则：从底层（数据库）向上设计，Repository 层只负责数据访问，
// 不做任何分类/分级计算。
type ReportsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewReportsRepository(db *sql.DB, logger *zap.Logger) *ReportsRepository {
	return &ReportsRepository{db: db, logger: logger}
}

const reportColumns = `report_id, patient_id, patient_name, test_date, test_time,
		quadrant, yin_yang, xu_shi, tp_level, rv_level, sdnn_level,
		hr, sdnn, rv, tp, lf, hf, ln_tp, ln_lfhf, healthy_zone_distance,
		report, created_at`

// SaveReport 保存报告（report_id 由调用方生成）
func (r *ReportsRepository) SaveReport(ctx context.Context, rec *HRVReportRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hrv_report (
			report_id, patient_id, patient_name, test_date, test_time,
			quadrant, yin_yang, xu_shi, tp_level, rv_level, sdnn_level,
			hr, sdnn, rv, tp, lf, hf, ln_tp, ln_lfhf, healthy_zone_distance,
			report
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		          $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		rec.ReportID, rec.PatientID, rec.PatientName, rec.TestDate, rec.TestTime,
		rec.Quadrant, rec.YinYang, rec.XuShi, rec.TPLevel, rec.RVLevel, rec.SDNNLevel,
		rec.HR, rec.SDNN, rec.RV, rec.TP, rec.LF, rec.HF,
		rec.LnTP, rec.LnLFHF, rec.ZoneDist,
		string(rec.Report),
	)
	if err != nil {
		return fmt.Errorf("failed to save hrv report: %w", err)
	}
	return nil
}

// GetReport 根据 report_id 获取报告
func (r *ReportsRepository) GetReport(ctx context.Context, reportID string) (*HRVReportRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM hrv_report WHERE report_id = $1`,
		reportID,
	)
	rec, err := scanReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("report not found: %s", reportID)
		}
		return nil, fmt.Errorf("failed to get hrv report: %w", err)
	}
	return rec, nil
}

// ListReports 查询报告列表（支持分页；patientID 为空时查全部）
func (r *ReportsRepository) ListReports(ctx context.Context, patientID string, page, size int) ([]*HRVReportRecord, int, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	offset := (page - 1) * size

	var total int
	var err error
	if patientID != "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM hrv_report WHERE patient_id = $1`, patientID,
		).Scan(&total)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM hrv_report`,
		).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count hrv reports: %w", err)
	}

	var rows *sql.Rows
	if patientID != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+reportColumns+` FROM hrv_report
			 WHERE patient_id = $1
			 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			patientID, size, offset,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+reportColumns+` FROM hrv_report
			 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			size, offset,
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list hrv reports: %w", err)
	}
	defer rows.Close()

	var recs []*HRVReportRecord
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan hrv report: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate hrv reports: %w", err)
	}
	return recs, total, nil
}

// scanner 兼容 *sql.Row 与 *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*HRVReportRecord, error) {
	rec := &HRVReportRecord{}
	var report string
	err := s.Scan(
		&rec.ReportID, &rec.PatientID, &rec.PatientName, &rec.TestDate, &rec.TestTime,
		&rec.Quadrant, &rec.YinYang, &rec.XuShi, &rec.TPLevel, &rec.RVLevel, &rec.SDNNLevel,
		&rec.HR, &rec.SDNN, &rec.RV, &rec.TP, &rec.LF, &rec.HF,
		&rec.LnTP, &rec.LnLFHF, &rec.ZoneDist,
		&report, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Report = json.RawMessage(report)
	return rec, nil
}
