package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/utm-dashboard/internal/config"
)

func TestResolveColumnsBySynonym(t *testing.T) {
	headers := []string{"Data", " UTM_Source ", "Campanha", "Conteúdo", "Valor", "Qtd"}
	r := ResolveColumns(headers, config.DefaultColumns())

	assert.Equal(t, "Data", r.Date)
	assert.Equal(t, " UTM_Source ", r.Source)
	assert.Equal(t, "Campanha", r.Campaign)
	assert.Equal(t, "Conteúdo", r.Content)
	assert.Equal(t, "Valor", r.Revenue)
	assert.Equal(t, "", r.Product)
}

func TestResolveColumnsFallbackIndex(t *testing.T) {
	cols := config.DefaultColumns()
	cols.Product = config.ColumnSpec{Synonyms: []string{"sku"}, FallbackIndex: 1}
	cols.Date.FallbackIndex = 9

	r := ResolveColumns([]string{"x", "y", "z"}, cols)
	assert.Equal(t, "y", r.Product)
	assert.Equal(t, "", r.Date)
}

func TestResolveColumnsSynonymOrder(t *testing.T) {
	r := ResolveColumns([]string{"source", "utm_source"}, config.DefaultColumns())
	assert.Equal(t, "utm_source", r.Source)
}

func TestRolesCategorical(t *testing.T) {
	r := Roles{Product: "p", Source: "s", Campaign: "c", Content: "", Date: "d"}
	assert.Equal(t, []string{"p", "s", "c"}, r.Categorical())
	assert.NotNil(t, r.Cleaner("s"))
	assert.NotNil(t, r.Cleaner("c"))
	assert.Nil(t, r.Cleaner("p"))
	assert.Nil(t, r.Cleaner(""))
}
