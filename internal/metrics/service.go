package metrics

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AngelCh415/utm-dashboard/internal/analytics"
	"github.com/AngelCh415/utm-dashboard/internal/config"
	"github.com/AngelCh415/utm-dashboard/internal/dates"
	"github.com/AngelCh415/utm-dashboard/internal/ingest"
	"github.com/AngelCh415/utm-dashboard/internal/models"
	"github.com/AngelCh415/utm-dashboard/internal/store"
)

var ErrNoTable = errors.New("no table loaded")

const filterPrefix = "f."

type Service struct {
	st   *store.MemoryStore
	cols config.Columns
	now  func() time.Time
}

func NewService(st *store.MemoryStore, cols config.Columns) *Service {
	return &Service{st: st, cols: cols, now: time.Now}
}

type Dashboard struct {
	TableID   string                        `json:"table_id"`
	Columns   analytics.Roles               `json:"columns"`
	TotalRows int                           `json:"total_rows"`
	Filtered  int                           `json:"filtered_rows"`
	Rows      []models.Row                  `json:"rows"`
	Clusters  []models.ClusterMetrics       `json:"clusters"`
	Top       map[string][]models.RankEntry `json:"top"`
	Rollup    models.Rollup                 `json:"rollup"`
}

// Query agrega lo que no es parte de Params: paginado, top y la inversión manual.
type Query struct {
	analytics.Params
	Limit      int
	Offset     int
	TopN       int
	TopColumns []string
	Investment *float64
}

func (s *Service) ParseQuery(v url.Values) (Query, error) {
	q := Query{
		Limit:  atoiDef(v.Get("limit"), 100),
		Offset: atoiDef(v.Get("offset"), 0),
		TopN:   atoiDef(v.Get("top_n"), analytics.DefaultTopN),
	}
	q.Now = s.now()
	q.Search = v.Get("q")

	q.Filters = map[string][]string{}
	for k, vals := range v {
		if col := strings.TrimPrefix(k, filterPrefix); col != k && col != "" {
			for _, val := range vals {
				if val != "" {
					q.Filters[col] = append(q.Filters[col], val)
				}
			}
		}
	}

	preset, err := dates.ParsePreset(v.Get("range"))
	if err != nil {
		return q, err
	}
	q.Range = preset
	if preset == dates.Custom {
		if q.Start, err = parseDay(v.Get("start")); err != nil {
			return q, fmt.Errorf("start: %w", err)
		}
		if q.End, err = parseDay(v.Get("end")); err != nil {
			return q, fmt.Errorf("end: %w", err)
		}
		if q.End.Before(q.Start) {
			return q, errors.New("end before start")
		}
	}

	if raw := v.Get("top"); raw != "" {
		q.TopColumns = csvList(raw)
	}
	if raw := strings.TrimSpace(v.Get("investment")); raw != "" {
		// acepta "1.500,00" igual que las celdas del CSV
		f, ok := ingest.ParseScalar(raw).Float()
		if !ok || f < 0 {
			return q, fmt.Errorf("bad investment %q", raw)
		}
		q.Investment = &f
	}
	return q, nil
}

func (s *Service) snapshot() (*models.Table, analytics.Roles, map[string]float64, error) {
	t, ok := s.st.Table()
	if !ok {
		return nil, analytics.Roles{}, nil, ErrNoTable
	}
	return t, analytics.ResolveColumns(t.Headers, s.cols), s.st.Investments(), nil
}

func (s *Service) Dashboard(v url.Values) (*Dashboard, error) {
	q, err := s.ParseQuery(v)
	if err != nil {
		return nil, err
	}
	t, roles, inv, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	rows := analytics.Filter(t, roles, q.Params)
	clusters, clusterSpend := withInvestments(analytics.Group(rows, roles), inv)

	spend := clusterSpend
	if q.Investment != nil {
		spend = *q.Investment
	}

	topCols := q.TopColumns
	if len(topCols) == 0 {
		topCols = roles.Categorical()
	}
	top := make(map[string][]models.RankEntry, len(topCols))
	for _, col := range topCols {
		top[col] = analytics.TopN(rows, col, roles.Cleaner(col), q.TopN)
	}

	limit, offset := clampLimitOffset(q.Limit, q.Offset, len(rows))
	return &Dashboard{
		TableID:   t.ID,
		Columns:   roles,
		TotalRows: len(t.Rows),
		Filtered:  len(rows),
		Rows:      paginate(rows, limit, offset),
		Clusters:  clusters,
		Top:       top,
		Rollup:    roundRollup(analytics.Summarize(rows, roles.Revenue, spend)),
	}, nil
}

func (s *Service) Rows(v url.Values) ([]models.Row, int, error) {
	q, err := s.ParseQuery(v)
	if err != nil {
		return nil, 0, err
	}
	t, roles, _, err := s.snapshot()
	if err != nil {
		return nil, 0, err
	}
	rows := analytics.Filter(t, roles, q.Params)
	limit, offset := clampLimitOffset(q.Limit, q.Offset, len(rows))
	return paginate(rows, limit, offset), len(rows), nil
}

func (s *Service) Clusters(v url.Values) ([]models.ClusterMetrics, error) {
	q, err := s.ParseQuery(v)
	if err != nil {
		return nil, err
	}
	t, roles, inv, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	clusters, _ := withInvestments(analytics.Group(analytics.Filter(t, roles, q.Params), roles), inv)
	return clusters, nil
}

// ClusterExists dice si alguna fila de la tabla vigente cae en ese cluster.
func (s *Service) ClusterExists(key string) (bool, error) {
	t, roles, _, err := s.snapshot()
	if err != nil {
		return false, err
	}
	for _, r := range t.Rows {
		if k, _, _ := analytics.RowKey(r, roles); k == key {
			return true, nil
		}
	}
	return false, nil
}

func withInvestments(cs []models.Cluster, inv map[string]float64) ([]models.ClusterMetrics, float64) {
	out := make([]models.ClusterMetrics, 0, len(cs))
	var total float64
	for _, c := range cs {
		amount := inv[c.Key]
		total += amount
		m := analytics.ClusterROI(c, amount)
		m.Revenue = round2(m.Revenue)
		m.CPA = round2(m.CPA)
		if m.ROI != nil {
			r := round2(*m.ROI)
			m.ROI = &r
		}
		out = append(out, m)
	}
	return out, total
}

func roundRollup(r models.Rollup) models.Rollup {
	r.Revenue = round2(r.Revenue)
	r.Tax = round2(r.Tax)
	r.Investment = round2(r.Investment)
	r.Profit = round2(r.Profit)
	r.ROAS = round2(r.ROAS)
	return r
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("required (YYYY-MM-DD)")
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func csvList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	} // tope sano
	if offset > n {
		offset = n
	}
	return limit, offset
}

// round2 redondea lejos de cero, sin pasar por int64
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
