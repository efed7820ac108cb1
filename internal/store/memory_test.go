package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

func TestReplaceAndReset(t *testing.T) {
	st := NewMemoryStore()
	_, ok := st.Table()
	assert.False(t, ok)

	t1 := &models.Table{ID: "t1"}
	st.Replace(t1, nil)
	got, ok := st.Table()
	require.True(t, ok)
	assert.Equal(t, "t1", got.ID)

	st.SetInvestment("facebook|Promo", 10)
	st.Reset()
	_, ok = st.Table()
	assert.False(t, ok)
	assert.Empty(t, st.Investments())
}

func TestReplacePrunesInvestments(t *testing.T) {
	st := NewMemoryStore()
	st.Replace(&models.Table{ID: "t1"}, nil)
	st.SetInvestment("a|x", 10)
	st.SetInvestment("b|y", 20)

	st.Replace(&models.Table{ID: "t2"}, func(k string) bool { return k == "a|x" })
	assert.Equal(t, map[string]float64{"a|x": 10}, st.Investments())
}

func TestInvestments(t *testing.T) {
	st := NewMemoryStore()
	st.SetInvestment("a|x", -5)
	st.SetInvestment("b|y", 12.5)
	assert.Equal(t, map[string]float64{"a|x": 0, "b|y": 12.5}, st.Investments())

	// la copia no comparte el mapa interno
	cp := st.Investments()
	cp["b|y"] = 99
	assert.Equal(t, 12.5, st.Investments()["b|y"])

	st.DeleteInvestment("b|y")
	_, ok := st.Investments()["b|y"]
	assert.False(t, ok)
}
