package analytics

import (
	"github.com/AngelCh415/utm-dashboard/internal/config"
	"github.com/AngelCh415/utm-dashboard/internal/models"
)

var salesHeaders = []string{"data", "utm_source", "utm_campaign", "utm_content", "produto", "valor"}

// salesTable arma una tabla a mano; cada fila sigue el orden de salesHeaders.
func salesTable(rows ...[]models.Value) *models.Table {
	t := &models.Table{ID: "t1", Headers: salesHeaders, Types: map[string]models.ColumnType{}}
	for i, vals := range rows {
		r := models.Row{ID: i, Values: map[string]models.Value{}}
		for j, h := range salesHeaders {
			if j < len(vals) {
				r.Values[h] = vals[j]
			} else {
				r.Values[h] = models.Text("")
			}
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func sale(date, source, campaign, content, product string, value float64) []models.Value {
	return []models.Value{
		models.Text(date), models.Text(source), models.Text(campaign),
		models.Text(content), models.Text(product), models.Number(value),
	}
}

func salesRoles() Roles { return ResolveColumns(salesHeaders, config.DefaultColumns()) }

func ids(rows []models.Row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
