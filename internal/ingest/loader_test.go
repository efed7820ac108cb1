package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/utm-dashboard/internal/config"
	"github.com/AngelCh415/utm-dashboard/internal/store"
)

func newTestLoader() (*Loader, *store.MemoryStore) {
	st := store.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLoader(NewHTTPClient(2*time.Second), st, log, config.DefaultColumns()), st
}

func TestLoadFileReplacesTable(t *testing.T) {
	l, st := newTestLoader()

	tb, err := l.LoadFile(context.Background(), []byte("utm_source,utm_campaign,valor\nfb,Promo,10\n"), "")
	require.NoError(t, err)
	assert.NotEmpty(t, tb.ID)
	assert.Equal(t, "file", tb.Source)

	got, ok := st.Table()
	require.True(t, ok)
	assert.Equal(t, tb.ID, got.ID)
}

func TestLoadFileEmptyIsNoop(t *testing.T) {
	l, st := newTestLoader()
	first, err := l.LoadFile(context.Background(), []byte("a\n1\n"), "")
	require.NoError(t, err)

	_, err = l.LoadFile(context.Background(), []byte("\n\n"), "")
	assert.ErrorIs(t, err, ErrEmptyCSV)

	got, ok := st.Table()
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
}

func TestLoadKeepsInvestmentsOfLiveClusters(t *testing.T) {
	l, st := newTestLoader()
	_, err := l.LoadFile(context.Background(), []byte("utm_source,utm_campaign\nfb,Promo|a\ngoogle,X\n"), "")
	require.NoError(t, err)

	st.SetInvestment("facebook|Promo", 100)
	st.SetInvestment("google|X", 50)

	_, err = l.LoadFile(context.Background(), []byte("utm_source,utm_campaign\nfacebook ads,Promo\n"), "")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"facebook|Promo": 100}, st.Investments())
}

func TestLoadURLRewritesEditLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/d/abc/export" || r.URL.Query().Get("format") != "csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("produto,valor\nA,\"R$ 10,00\"\n"))
	}))
	defer srv.Close()

	l, _ := newTestLoader()
	tb, err := l.LoadURL(context.Background(), srv.URL+"/d/abc/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "url", tb.Source)
	require.Len(t, tb.Rows, 1)
	f, ok := tb.Rows[0].Values["valor"].Float()
	assert.True(t, ok)
	assert.Equal(t, 10.0, f)
}

func TestLoadURLFailureIsCoarse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	l, st := newTestLoader()
	_, err := l.LoadURL(context.Background(), srv.URL)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.Equal(t, "could not load spreadsheet", err.Error())

	_, ok := st.Table()
	assert.False(t, ok)
}
