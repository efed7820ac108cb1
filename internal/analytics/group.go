package analytics

import (
	"sort"

	"github.com/AngelCh415/utm-dashboard/internal/dates"
	"github.com/AngelCh415/utm-dashboard/internal/models"
)

// ClusterKey une fuente y campaña ya limpias. Un "|" dentro de la fuente
// puede colisionar con el separador; se acepta.
func ClusterKey(source, campaign string) string { return source + "|" + campaign }

// RowKey es la clave de cluster de una fila.
func RowKey(r models.Row, roles Roles) (key, source, campaign string) {
	source = CleanSource(r.Get(roles.Source).String())
	campaign = CleanCampaign(r.Get(roles.Campaign).String())
	return ClusterKey(source, campaign), source, campaign
}

// Group agrupa por (fuente, campaña). Orden: ventas desc, empates por
// primera aparición.
func Group(rows []models.Row, roles Roles) []models.Cluster {
	idx := map[string]int{}
	var out []models.Cluster
	contentSeen := map[string]map[string]struct{}{}

	for _, r := range rows {
		key, src, camp := RowKey(r, roles)
		i, ok := idx[key]
		dateStr := r.Get(roles.Date).String()
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, models.Cluster{
				Key:      key,
				Source:   src,
				Campaign: camp,
				MinDate:  dateStr,
				MaxDate:  dateStr,
				Products: map[string]int{},
			})
			contentSeen[key] = map[string]struct{}{}
		}
		c := &out[i]
		c.Sales++
		c.Revenue += Revenue(r.Get(roles.Revenue))
		c.Products[orNA(r.Get(roles.Product).String())]++

		content := orNA(r.Get(roles.Content).String())
		if _, dup := contentSeen[key][content]; !dup {
			contentSeen[key][content] = struct{}{}
			c.Contents = append(c.Contents, content)
		}
		if ok {
			updateBounds(c, r.Get(roles.Date), dateStr)
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Sales > out[b].Sales })
	return out
}

// las fechas que no parsean no mueven los límites; un límite que no parsea
// se reemplaza por la primera fecha válida
func updateBounds(c *models.Cluster, v models.Value, raw string) {
	d, ok := dates.Parse(v)
	if !ok {
		return
	}
	if lo, okLo := dates.Parse(models.Text(c.MinDate)); !okLo || d.Before(lo) {
		c.MinDate = raw
	}
	if hi, okHi := dates.Parse(models.Text(c.MaxDate)); !okHi || d.After(hi) {
		c.MaxDate = raw
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
