package analytics

import (
	"strings"
	"time"

	"github.com/AngelCh415/utm-dashboard/internal/dates"
	"github.com/AngelCh415/utm-dashboard/internal/models"
)

// Params es la foto inmutable de los controles del dashboard.
type Params struct {
	Filters map[string][]string
	Search  string
	Range   dates.Preset
	Start   time.Time
	End     time.Time
	Now     time.Time
}

func (p Params) window() dates.Window {
	ref := p.Now
	if ref.IsZero() {
		ref = time.Now()
	}
	return dates.NewWindow(p.Range, ref, p.Start, p.End)
}

// Filter devuelve las filas que pasan fecha, filtros por columna y búsqueda,
// en el orden original. No toca la tabla.
func Filter(t *models.Table, roles Roles, p Params) []models.Row {
	if t == nil {
		return nil
	}
	win := p.window()
	useDate := roles.Date != "" && win.Active()

	sets := make(map[string]map[string]struct{}, len(p.Filters))
	for col, accepted := range p.Filters {
		if len(accepted) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(accepted))
		for _, a := range accepted {
			set[a] = struct{}{}
		}
		sets[col] = set
	}
	term := strings.ToLower(p.Search)

	out := make([]models.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if useDate {
			d, ok := dates.Parse(r.Get(roles.Date))
			if !ok || !win.Contains(d) {
				continue
			}
		}
		if !matchesFilters(r, roles, sets) {
			continue
		}
		if term != "" && !matchesSearch(r, t.Headers, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesFilters(r models.Row, roles Roles, sets map[string]map[string]struct{}) bool {
	for col, set := range sets {
		v := r.Get(col).String()
		if clean := roles.Cleaner(col); clean != nil {
			v = clean(v)
		}
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func matchesSearch(r models.Row, headers []string, term string) bool {
	for _, h := range headers {
		if strings.Contains(strings.ToLower(r.Get(h).String()), term) {
			return true
		}
	}
	return false
}
