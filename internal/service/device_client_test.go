package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchPatientXML_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records/dev-001/latest", r.URL.Path)
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(tomXML))
	}))
	defer srv.Close()

	client := NewDeviceClient(srv.URL, 5*time.Second, zap.NewNop())

	xmlText, err := client.FetchPatientXML(context.Background(), "dev-001")
	require.NoError(t, err)
	assert.Contains(t, xmlText, `HR="57"`)
}

func TestFetchPatientXML_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewDeviceClient(srv.URL, 5*time.Second, zap.NewNop())

	_, err := client.FetchPatientXML(context.Background(), "dev-001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchPatientXML_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewDeviceClient(srv.URL, 5*time.Second, zap.NewNop())

	_, err := client.FetchPatientXML(context.Background(), "dev-001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty record")
}

func TestFetchAndAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tomXML))
	}))
	defer srv.Close()

	mr, svc := setupTestService(t)
	_ = mr
	svc.device = NewDeviceClient(srv.URL, 5*time.Second, zap.NewNop())

	gen, err := svc.FetchAndAnalyze(context.Background(), "dev-001", true)
	require.NoError(t, err)
	assert.Equal(t, "目前體質傾向：陽實型", gen.Report.Title)
}

func TestFetchAndAnalyze_NoClient(t *testing.T) {
	_, svc := setupTestService(t)

	_, err := svc.FetchAndAnalyze(context.Background(), "dev-001", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
