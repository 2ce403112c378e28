package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wisefido-hrv/internal/hrv"
	"wisefido-hrv/internal/parser"
	"wisefido-hrv/internal/repository"
	"wisefido-hrv/internal/store"
)

// 最近报告缓存键：hrv:patient:{patient_id}:latest
const (
	latestKeyPrefix = "hrv:patient:"
	latestKeySuffix = ":latest"
	latestTTL       = 24 * time.Hour
)

// GeneratedReport 一次分析的产出（返回给 API / CLI）
type GeneratedReport struct {
	ReportID string          `json:"report_id"`
	Patient  *parser.PatientMeta `json:"patient"`
	Report   *hrv.Report     `json:"report"`
}

// ReportService 体质报告服务：解析 → 分析 → 持久化 → 缓存最近报告
//
// repo 为 nil 时服务降级为纯分析模式（不落库，仍可缓存与返回报告）。
type ReportService struct {
	repo   *repository.ReportsRepository
	kv     store.KV
	device *DeviceClient
	logger *zap.Logger
}

func NewReportService(
	repo *repository.ReportsRepository,
	kv store.KV,
	device *DeviceClient,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		repo:   repo,
		kv:     kv,
		device: device,
		logger: logger,
	}
}

// AnalyzeXML Patient XML 原文 → 报告
//
// 结构性解析失败返回错误；分析本身无错误路径。
// 落库/缓存失败只告警不中断（报告仍然返回给调用方）。
func (s *ReportService) AnalyzeXML(ctx context.Context, xmlText string, includePhenotypes bool) (*GeneratedReport, error) {
	m, meta, err := parser.ParsePatientXML(xmlText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse patient record: %w", err)
	}

	info := hrv.PatientInfo{
		Name: meta.Name,
		Sex:  meta.Sex,
		Age:  meta.Age,
		BMI:  meta.BMI,
	}
	report := hrv.GenerateSummary(m, info, hrv.SummaryOptions{IncludePhenotypes: includePhenotypes})

	// 补充患者基本资料到 meta（供前端 / debug 使用）
	report.Meta["name"] = meta.Name
	report.Meta["sex"] = meta.Sex
	if meta.Age != nil {
		report.Meta["age"] = *meta.Age
	}
	report.Meta["height"] = meta.Height
	report.Meta["weight"] = meta.Weight
	if meta.BMI != nil {
		report.Meta["bmi"] = *meta.BMI
	}
	report.Meta["id"] = meta.ID
	report.Meta["test_time"] = meta.TestTime
	report.Meta["test_date"] = meta.TestDate

	reportID := uuid.New().String()
	gen := &GeneratedReport{
		ReportID: reportID,
		Patient:  meta,
		Report:   report,
	}

	rec, err := s.buildRecord(reportID, m, meta, report)
	if err != nil {
		s.logger.Warn("Failed to build report record, skipping persistence", zap.Error(err))
		return gen, nil
	}

	// 落库（DB 降级模式下跳过）
	if s.repo != nil {
		if err := s.repo.SaveReport(ctx, rec); err != nil {
			s.logger.Warn("Failed to persist hrv report",
				zap.String("report_id", reportID),
				zap.Error(err),
			)
		}
	}

	// 缓存最近报告（按 patient_id；无标识时跳过）
	s.cacheLatest(ctx, meta, rec)

	return gen, nil
}

// FetchAndAnalyze 从设备网关拉取最近一次量测并生成报告
func (s *ReportService) FetchAndAnalyze(ctx context.Context, deviceID string, includePhenotypes bool) (*GeneratedReport, error) {
	if s.device == nil {
		return nil, fmt.Errorf("device gateway client not configured")
	}
	xmlText, err := s.device.FetchPatientXML(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeXML(ctx, xmlText, includePhenotypes)
}

// GetReport 读取已持久化的报告
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*repository.HRVReportRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("database disabled")
	}
	return s.repo.GetReport(ctx, reportID)
}

// ListReports 分页查询报告
func (s *ReportService) ListReports(ctx context.Context, patientID string, page, size int) ([]*repository.HRVReportRecord, int, error) {
	if s.repo == nil {
		return nil, 0, fmt.Errorf("database disabled")
	}
	return s.repo.ListReports(ctx, patientID, page, size)
}

// LatestByPatient 读取患者最近一次报告（Redis 缓存）
func (s *ReportService) LatestByPatient(ctx context.Context, patientID string) (*repository.HRVReportRecord, error) {
	raw, err := s.kv.Get(ctx, latestKeyPrefix+patientID+latestKeySuffix)
	if err != nil {
		return nil, fmt.Errorf("latest report not found for patient %s: %w", patientID, err)
	}
	var rec repository.HRVReportRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &rec, nil
}

// ListCachedLatest 扫描所有患者的最近报告缓存
func (s *ReportService) ListCachedLatest(ctx context.Context) ([]*repository.HRVReportRecord, error) {
	keys, err := s.kv.ScanKeys(ctx, latestKeyPrefix+"*"+latestKeySuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan latest report cache: %w", err)
	}

	recs := make([]*repository.HRVReportRecord, 0, len(keys))
	for _, key := range keys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		var rec repository.HRVReportRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			s.logger.Warn("Skipping undecodable cached report", zap.String("key", key), zap.Error(err))
			continue
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

// buildRecord 报告 → hrv_report 行
func (s *ReportService) buildRecord(reportID string, m hrv.Measurement, meta *parser.PatientMeta, report *hrv.Report) (*repository.HRVReportRecord, error) {
	quad := hrv.AnalyzeQuadrant(m)
	grades := hrv.GradeLevels(m)

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return &repository.HRVReportRecord{
		ReportID:    reportID,
		PatientID:   meta.ID,
		PatientName: meta.Name,
		TestDate:    meta.TestDate,
		TestTime:    meta.TestTime,
		Quadrant:    string(quad.Quadrant),
		YinYang:     string(quad.YinYang),
		XuShi:       string(quad.XuShi),
		TPLevel:     grades.TPLabel(),
		RVLevel:     grades.RVLabel(),
		SDNNLevel:   grades.SDNNLabel(),
		HR:          m.HR,
		SDNN:        m.SDNN,
		RV:          m.RV,
		TP:          m.TP,
		LF:          m.LF,
		HF:          m.HF,
		LnTP:        m.LnTP(),
		LnLFHF:      m.LnLFHF(),
		ZoneDist:    quad.HealthyZoneDistance,
		Report:      reportJSON,
		CreatedAt:   time.Now(),
	}, nil
}

// cacheLatest 更新患者最近报告缓存（失败只告警）
func (s *ReportService) cacheLatest(ctx context.Context, meta *parser.PatientMeta, rec *repository.HRVReportRecord) {
	if s.kv == nil || meta.ID == "" {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn("Failed to marshal report for cache", zap.Error(err))
		return
	}
	key := latestKeyPrefix + meta.ID + latestKeySuffix
	if err := s.kv.Set(ctx, key, string(data), latestTTL); err != nil {
		s.logger.Warn("Failed to cache latest report",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
