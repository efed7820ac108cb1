package analytics

import (
	"sort"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

const DefaultTopN = 5

// TopN cuenta valores de una columna y devuelve los n más frecuentes.
// Empates: orden de primera aparición.
func TopN(rows []models.Row, column string, clean func(string) string, n int) []models.RankEntry {
	if n <= 0 {
		n = DefaultTopN
	}
	idx := map[string]int{}
	var out []models.RankEntry
	for _, r := range rows {
		v := r.Get(column).String()
		if clean != nil {
			v = clean(v)
		}
		v = orNA(v)
		i, ok := idx[v]
		if !ok {
			i = len(out)
			idx[v] = i
			out = append(out, models.RankEntry{Name: v})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
