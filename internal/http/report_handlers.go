package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"wisefido-hrv/internal/export"
	"wisefido-hrv/internal/repository"
	"wisefido-hrv/internal/service"
)

// ReportHandler 体质报告 API
type ReportHandler struct {
	svc    *service.ReportService
	logger *zap.Logger
}

func NewReportHandler(svc *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger}
}

// includePhenotypes 解析 ?phenotypes= 开关（默认附带）
func includePhenotypes(r *http.Request) bool {
	return r.URL.Query().Get("phenotypes") != "false"
}

// POST /hrv/api/v1/reports
// body: Patient XML 原文
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r, 1<<20)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("failed to read request body"))
		return
	}

	gen, err := h.svc.AnalyzeXML(r.Context(), string(body), includePhenotypes(r))
	if err != nil {
		h.logger.Warn("Failed to analyze patient record", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(gen))
}

// FetchRequest POST /hrv/api/v1/reports/fetch 请求体
type FetchRequest struct {
	DeviceID string `json:"device_id"`
}

// POST /hrv/api/v1/reports/fetch
// 从设备网关拉取最近一次量测并生成报告
func (h *ReportHandler) FetchFromDevice(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.DeviceID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("device_id is required"))
		return
	}

	gen, err := h.svc.FetchAndAnalyze(r.Context(), req.DeviceID, includePhenotypes(r))
	if err != nil {
		h.logger.Warn("Failed to fetch and analyze",
			zap.String("device_id", req.DeviceID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(gen))
}

// GET /hrv/api/v1/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request, reportID string) {
	rec, err := h.svc.GetReport(r.Context(), reportID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(rec))
}

// ListReportsModel 报告列表响应
type ListReportsModel struct {
	Items      []*repository.HRVReportRecord `json:"items"`
	Pagination Pagination                    `json:"pagination"`
}

// GET /hrv/api/v1/reports?patient_id=&page=&size=
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("size"), 10)

	recs, total, err := h.svc.ListReports(r.Context(), patientID, page, size)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, Fail(err.Error()))
		return
	}
	if recs == nil {
		recs = []*repository.HRVReportRecord{}
	}
	writeJSON(w, http.StatusOK, Ok(ListReportsModel{
		Items:      recs,
		Pagination: Pagination{Size: size, Page: page, Count: total},
	}))
}

// GET /hrv/api/v1/reports/{id}/export
// 导出 Excel 文件
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request, reportID string) {
	rec, err := h.svc.GetReport(r.Context(), reportID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}

	data, err := export.GenerateReportExcel(rec)
	if err != nil {
		h.logger.Error("Failed to generate excel export",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="hrv-report-%s.xlsx"`, reportID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GET /hrv/api/v1/patients/{id}/latest
// 患者最近一次报告（Redis 缓存）
func (h *ReportHandler) LatestByPatient(w http.ResponseWriter, r *http.Request, patientID string) {
	rec, err := h.svc.LatestByPatient(r.Context(), patientID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(rec))
}

// GET /hrv/api/v1/reports/latest
// 所有患者的最近报告缓存（扫描，不依赖 DB）
func (h *ReportHandler) ListCachedLatest(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListCachedLatest(r.Context())
	if err != nil {
		// 联调友好：Redis 不可用时返回空列表而不是报错
		h.logger.Warn("ListCachedLatest failed, returning empty list", zap.Error(err))
		writeJSON(w, http.StatusOK, Ok([]*repository.HRVReportRecord{}))
		return
	}
	writeJSON(w, http.StatusOK, Ok(recs))
}

// Healthz GET /healthz
func (h *ReportHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// reportPathID 从 /hrv/api/v1/reports/{id}[/export] 提取 id 与尾段
func reportPathID(path string) (id string, rest string) {
	p := strings.TrimPrefix(path, "/hrv/api/v1/reports/")
	if p == path {
		return "", ""
	}
	parts := strings.SplitN(p, "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		rest = parts[1]
	}
	return id, rest
}
