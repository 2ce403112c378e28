package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wisefido-hrv/internal/service"
	"wisefido-hrv/internal/store"
)

const tomXML = `<Patient Name="TOM" Sex="男" ID="20251015001"
         Height="175.0" Weight="67.0"
         TestTime="22:12:26" TestDate="2025-10-15"
         Age="51" HR="57" SD="63.7" RV="1861.00"
         ER="9" N="121" TP="4034" VL="1839"
         LF="1605" HF="528" NN="1051" Balance="-1.2"/>`

func setupTestRouter(t *testing.T) *Router {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := store.NewRedisKV(redisClient)

	logger := zap.NewNop()
	svc := service.NewReportService(nil, kv, nil, logger)
	handler := NewReportHandler(svc, logger)

	router := NewRouter(logger)
	router.RegisterReportRoutes(handler)
	return router
}

// envelope 测试用响应封装
type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func doRequest(t *testing.T, router *Router, method, path, body string) (*httptest.ResponseRecorder, *envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, &env
}

func TestCreateReport(t *testing.T) {
	router := setupTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports", tomXML)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ResultSuccess, env.Code)

	var gen service.GeneratedReport
	require.NoError(t, json.Unmarshal(env.Result, &gen))
	assert.NotEmpty(t, gen.ReportID)
	require.NotNil(t, gen.Report)
	assert.Equal(t, "目前體質傾向：陽實型", gen.Report.Title)
	assert.NotEmpty(t, gen.Report.Phenotypes)
}

func TestCreateReport_PhenotypesFlag(t *testing.T) {
	router := setupTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports?phenotypes=false", tomXML)
	require.Equal(t, http.StatusOK, w.Code)

	var gen service.GeneratedReport
	require.NoError(t, json.Unmarshal(env.Result, &gen))
	assert.Empty(t, gen.Report.Phenotypes)
}

func TestCreateReport_InvalidBody(t *testing.T) {
	router := setupTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports", "<oops")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ResultError, env.Code)
}

func TestListReports_DatabaseDisabled(t *testing.T) {
	router := setupTestRouter(t)

	w, env := doRequest(t, router, http.MethodGet, "/hrv/api/v1/reports", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, ResultError, env.Code)
	assert.Contains(t, env.Message, "database disabled")
}

func TestLatestByPatient(t *testing.T) {
	router := setupTestRouter(t)

	// 先生成一份报告（写入缓存）
	w, _ := doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports", tomXML)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doRequest(t, router, http.MethodGet, "/hrv/api/v1/patients/20251015001/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ResultSuccess, env.Code)
	assert.Contains(t, string(env.Result), "陽實型")
}

func TestLatestByPatient_NotFound(t *testing.T) {
	router := setupTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/hrv/api/v1/patients/nobody/latest", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCachedLatest(t *testing.T) {
	router := setupTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports", tomXML)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doRequest(t, router, http.MethodGet, "/hrv/api/v1/reports/latest", "")
	require.Equal(t, http.StatusOK, w.Code)

	var recs []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Result, &recs))
	assert.Len(t, recs, 1)
}

func TestGetReport_DatabaseDisabled(t *testing.T) {
	router := setupTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/hrv/api/v1/reports/some-id", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := setupTestRouter(t)

	w, _ := doRequest(t, router, http.MethodDelete, "/hrv/api/v1/reports", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w, _ = doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports/some-id", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestFetchFromDevice_MissingDeviceID(t *testing.T) {
	router := setupTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/hrv/api/v1/reports/fetch", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "device_id is required")
}

func TestHealthz(t *testing.T) {
	router := setupTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
