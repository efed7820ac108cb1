package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/utm-dashboard/internal/analytics"
	"github.com/AngelCh415/utm-dashboard/internal/config"
	"github.com/AngelCh415/utm-dashboard/internal/models"
	"github.com/AngelCh415/utm-dashboard/internal/store"
	"github.com/AngelCh415/utm-dashboard/internal/utils"
)

// ErrEmptyCSV: no quedó ninguna línea; la tabla vigente no se toca.
var ErrEmptyCSV = errors.New("csv has no lines")

type Loader struct {
	c    HTTPClient
	st   *store.MemoryStore
	log  *slog.Logger
	cols config.Columns
}

func NewLoader(c HTTPClient, st *store.MemoryStore, log *slog.Logger, cols config.Columns) *Loader {
	return &Loader{c: c, st: st, log: log, cols: cols}
}

func (l *Loader) LoadFile(ctx context.Context, data []byte, charset string) (*models.Table, error) {
	text, err := Decode(data, charset)
	if err != nil {
		utils.IngestTotal.WithLabelValues("file", "error").Inc()
		return nil, err
	}
	return l.load("file", text)
}

// LoadURL: cualquier falla de red o contenido se reporta como ErrFetch.
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (*models.Table, error) {
	target := ExportURL(rawURL)
	b, err := FetchCSV(ctx, l.c, target)
	if err == nil {
		var text string
		if text, err = Decode(b, ""); err == nil {
			return l.load("url", text)
		}
	}
	l.log.Warn("url ingest failed", slog.String("url", target), slog.String("err", err.Error()))
	utils.IngestTotal.WithLabelValues("url", "error").Inc()
	return nil, ErrFetch
}

func (l *Loader) load(origin, text string) (*models.Table, error) {
	t, ok := Build(text)
	if !ok {
		utils.IngestTotal.WithLabelValues(origin, "empty").Inc()
		return nil, ErrEmptyCSV
	}
	t.ID = uuid.NewString()
	t.Source = origin
	t.LoadedAt = time.Now()

	roles := analytics.ResolveColumns(t.Headers, l.cols)
	keys := make(map[string]struct{})
	for _, r := range t.Rows {
		k, _, _ := analytics.RowKey(r, roles)
		keys[k] = struct{}{}
	}
	// sin guardia contra cargas solapadas: gana el último Replace
	l.st.Replace(t, func(k string) bool { _, ok := keys[k]; return ok })

	utils.IngestTotal.WithLabelValues(origin, "ok").Inc()
	utils.TableRows.Set(float64(len(t.Rows)))
	l.log.Info("ingest complete",
		slog.String("table_id", t.ID),
		slog.String("source", origin),
		slog.Int("rows", len(t.Rows)),
		slog.Int("columns", len(t.Headers)),
		slog.Int("clusters", len(keys)))
	return t, nil
}
