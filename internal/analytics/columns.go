package analytics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/AngelCh415/utm-dashboard/internal/config"
)

// Roles son los nombres de columna resueltos; "" = no identificada.
type Roles struct {
	Date     string `json:"date"`
	Product  string `json:"product"`
	Revenue  string `json:"revenue"`
	Source   string `json:"source"`
	Campaign string `json:"campaign"`
	Content  string `json:"content"`
}

// ResolveColumns busca primero por sinónimo (sin mayúsculas ni acentos) y
// después cae a la posición configurada.
func ResolveColumns(headers []string, cols config.Columns) Roles {
	folded := make(map[string]string, len(headers))
	for _, h := range headers {
		k := foldHeader(h)
		if _, ok := folded[k]; !ok {
			folded[k] = h
		}
	}
	pick := func(cs config.ColumnSpec) string {
		for _, syn := range cs.Synonyms {
			if h, ok := folded[foldHeader(syn)]; ok {
				return h
			}
		}
		if cs.FallbackIndex >= 0 && cs.FallbackIndex < len(headers) {
			return headers[cs.FallbackIndex]
		}
		return ""
	}
	return Roles{
		Date:     pick(cols.Date),
		Product:  pick(cols.Product),
		Revenue:  pick(cols.Revenue),
		Source:   pick(cols.Source),
		Campaign: pick(cols.Campaign),
		Content:  pick(cols.Content),
	}
}

// Categorical lista las columnas con sentido para rankings, sin repetir.
func (r Roles) Categorical() []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range []string{r.Product, r.Source, r.Campaign, r.Content} {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Cleaner devuelve la normalización que aplica a la columna, o nil.
func (r Roles) Cleaner(col string) func(string) string {
	switch {
	case col == "":
		return nil
	case col == r.Source:
		return CleanSource
	case col == r.Campaign:
		return CleanCampaign
	}
	return nil
}

func foldHeader(s string) string {
	// Chain guarda estado: uno nuevo por llamada
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}
