package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/presence-audit/internal/aggregate"
	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/dataset"
	"github.com/sells-group/presence-audit/internal/report"
	"github.com/sells-group/presence-audit/internal/source"
)

// datasetStore is the part of dataset.Store the API uses.
type datasetStore interface {
	Current() (*dataset.Dataset, bool)
	Refresh(ctx context.Context) (*dataset.Dataset, error)
}

type api struct {
	store datasetStore
}

type datasetKey struct{}

// buildRouter mounts the audit API. Data endpoints answer 503 until the
// store holds a dataset.
func buildRouter(store datasetStore, allowedOrigins []string) http.Handler {
	a := &api{store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/refresh", a.refresh)

	r.Group(func(r chi.Router) {
		r.Use(a.requireData)
		r.Get("/companies", a.listCompanies)
		r.Get("/companies/{name}", a.getCompany)
		r.Get("/companies/{name}/report", a.getCompanyReport)
		r.Get("/stats", a.getStats)
		r.Get("/facets", a.getFacets)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (a *api) requireData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds, ok := a.store.Current()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "no data")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), datasetKey{}, ds)))
	})
}

func datasetFrom(r *http.Request) *dataset.Dataset {
	ds, _ := r.Context().Value(datasetKey{}).(*dataset.Dataset)
	return ds
}

func filterFrom(r *http.Request) audit.Filter {
	q := r.URL.Query()
	return audit.Filter{City: q.Get("city"), Sector: q.Get("sector"), Search: q.Get("q")}
}

func companyName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	return name
}

func (a *api) listCompanies(w http.ResponseWriter, r *http.Request) {
	records := filterFrom(r).Apply(datasetFrom(r).Records)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(records),
		"companies": records,
	})
}

func (a *api) findCompany(w http.ResponseWriter, r *http.Request) (report.CompanyView, bool) {
	ds := datasetFrom(r)
	name := companyName(r)
	c, ok := audit.Find(ds.Records, name)
	if !ok {
		writeError(w, http.StatusNotFound, "company not found")
		return report.CompanyView{}, false
	}
	return report.NewCompanyView(ds.Records, c), true
}

func (a *api) getCompany(w http.ResponseWriter, r *http.Request) {
	if view, ok := a.findCompany(w, r); ok {
		writeJSON(w, http.StatusOK, view)
	}
}

func (a *api) getCompanyReport(w http.ResponseWriter, r *http.Request) {
	view, ok := a.findCompany(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.DefaultFilename(view.Company.Name, report.FormatMarkdown)+`"`)
	if err := report.WriteCompanyMarkdown(w, view); err != nil {
		zap.L().Warn("write company report", zap.Error(err))
	}
}

func (a *api) getStats(w http.ResponseWriter, r *http.Request) {
	modeParam := r.URL.Query().Get("mode")
	if modeParam == "" {
		modeParam = string(aggregate.ModePresence)
	}
	mode, err := aggregate.ParseMode(modeParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "mode must be presence or performance")
		return
	}
	writeJSON(w, http.StatusOK, computeStats(datasetFrom(r), mode, filterFrom(r)))
}

func (a *api) getFacets(w http.ResponseWriter, r *http.Request) {
	ds := datasetFrom(r)
	writeJSON(w, http.StatusOK, map[string][]string{
		"cities":  audit.Cities(ds.Records),
		"sectors": audit.Sectors(ds.Records),
	})
}

func (a *api) refresh(w http.ResponseWriter, r *http.Request) {
	ds, err := a.store.Refresh(r.Context())
	if err != nil {
		if source.IsUnavailable(err) {
			writeError(w, http.StatusServiceUnavailable, "no data")
			return
		}
		zap.L().Error("refresh failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        ds.ID.String(),
		"loaded_at": ds.LoadedAt,
		"companies": len(ds.Records),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
