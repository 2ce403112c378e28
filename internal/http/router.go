package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterReportRoutes 注册体质报告路由
func (r *Router) RegisterReportRoutes(h *ReportHandler) {
	r.Handle("/healthz", h.Healthz)

	// list / create
	r.Handle("/hrv/api/v1/reports", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.ListReports(w, req)
		case http.MethodPost:
			h.CreateReport(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// fetch / latest / report/{id} / report/{id}/export
	r.Handle("/hrv/api/v1/reports/", func(w http.ResponseWriter, req *http.Request) {
		id, rest := reportPathID(req.URL.Path)
		switch {
		case id == "fetch" && rest == "":
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.FetchFromDevice(w, req)
		case id == "latest" && rest == "":
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.ListCachedLatest(w, req)
		case id != "" && rest == "":
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.GetReport(w, req, id)
		case id != "" && rest == "export":
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.ExportReport(w, req, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	// patients/{id}/latest
	r.Handle("/hrv/api/v1/patients/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		p := strings.TrimPrefix(req.URL.Path, "/hrv/api/v1/patients/")
		parts := strings.SplitN(p, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] != "latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.LatestByPatient(w, req, parts[0])
	})
}
