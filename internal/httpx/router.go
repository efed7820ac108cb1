package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/utm-dashboard/internal/ingest"
	"github.com/AngelCh415/utm-dashboard/internal/insight"
	"github.com/AngelCh415/utm-dashboard/internal/metrics"
	"github.com/AngelCh415/utm-dashboard/internal/models"
	"github.com/AngelCh415/utm-dashboard/internal/store"
	"github.com/AngelCh415/utm-dashboard/internal/utils"
)

type Deps struct {
	Log       *slog.Logger
	Loader    *ingest.Loader
	Store     *store.MemoryStore
	Metrics   *metrics.Service
	Insight   *insight.Service
	MaxUpload int64
}

func NewRouter(d Deps) http.Handler {
	if d.MaxUpload <= 0 {
		d.MaxUpload = ingest.MaxBodyBytes
	}
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))
	mux.Use(utils.Instrument)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/ingest/file", func(w http.ResponseWriter, r *http.Request) {
		data, err := readUpload(w, r, d.MaxUpload)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		t, err := d.Loader.LoadFile(r.Context(), data, r.URL.Query().Get("charset"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, tableSummary(t))
	})

	mux.Post("/ingest/url", func(w http.ResponseWriter, r *http.Request) {
		u := r.URL.Query().Get("url")
		if u == "" && r.Body != nil {
			var body struct {
				URL string `json:"url"`
			}
			if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&body); err == nil {
				u = body.URL
			}
		}
		if strings.TrimSpace(u) == "" {
			http.Error(w, "url required", 400)
			return
		}
		t, err := d.Loader.LoadURL(r.Context(), u)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, tableSummary(t))
	})

	mux.Get("/table", func(w http.ResponseWriter, r *http.Request) {
		t, ok := d.Store.Table()
		if !ok {
			writeErr(w, metrics.ErrNoTable)
			return
		}
		writeJSON(w, tableSummary(t))
	})

	mux.Delete("/table", func(w http.ResponseWriter, r *http.Request) {
		d.Store.Reset()
		utils.TableRows.Set(0)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Metrics.Dashboard(r.URL.Query())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, out)
	})

	mux.Get("/rows", func(w http.ResponseWriter, r *http.Request) {
		rows, total, err := d.Metrics.Rows(r.URL.Query())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, map[string]any{"total": total, "rows": rows})
	})

	mux.Get("/clusters", func(w http.ResponseWriter, r *http.Request) {
		cs, err := d.Metrics.Clusters(r.URL.Query())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, cs)
	})

	mux.Put("/investments/{key}", func(w http.ResponseWriter, r *http.Request) {
		key, err := clusterKeyParam(r)
		if err != nil {
			http.Error(w, "bad cluster key", 400)
			return
		}
		var body struct {
			Amount *float64 `json:"amount"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&body); err != nil || body.Amount == nil {
			http.Error(w, "amount required", 400)
			return
		}
		ok, err := d.Metrics.ClusterExists(key)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !ok {
			http.Error(w, "unknown cluster", 404)
			return
		}
		d.Store.SetInvestment(key, *body.Amount)
		writeJSON(w, map[string]any{"key": key, "amount": d.Store.Investments()[key]})
	})

	mux.Delete("/investments/{key}", func(w http.ResponseWriter, r *http.Request) {
		key, err := clusterKeyParam(r)
		if err != nil {
			http.Error(w, "bad cluster key", 400)
			return
		}
		d.Store.DeleteInvestment(key)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.Post("/insight", func(w http.ResponseWriter, r *http.Request) {
		t, ok := d.Store.Table()
		if !ok {
			writeErr(w, metrics.ErrNoTable)
			return
		}
		text, err := d.Insight.Summarize(r.Context(), t)
		if err != nil {
			d.Log.Warn("insight failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
			if errors.Is(err, insight.ErrNotConfigured) {
				writeErr(w, err)
				return
			}
			http.Error(w, "insight unavailable", http.StatusBadGateway)
			return
		}
		writeJSON(w, map[string]string{"table_id": t.ID, "text": text})
	})

	return mux
}

// clusterKeyParam: chi entrega el segmento escapado cuando el request trae
// RawPath (una "/" en la campaña llega como %2F).
func clusterKeyParam(r *http.Request) (string, error) {
	key := chi.URLParam(r, "key")
	if r.URL.RawPath == "" {
		return key, nil
	}
	return url.PathUnescape(key)
}

// readUpload acepta multipart (campo "file") o el CSV crudo en el body.
func readUpload(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, errors.New("file field required")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(r.Body)
}

type tableInfo struct {
	*models.Table
	RowCount int `json:"row_count"`
}

func tableSummary(t *models.Table) tableInfo { return tableInfo{Table: t, RowCount: len(t.Rows)} }

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metrics.ErrNoTable):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ingest.ErrEmptyCSV):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ingest.ErrFetch):
		http.Error(w, ingest.ErrFetch.Error(), http.StatusBadGateway)
	case errors.Is(err, insight.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
