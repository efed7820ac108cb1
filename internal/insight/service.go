package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/AngelCh415/utm-dashboard/internal/models"
	"github.com/AngelCh415/utm-dashboard/internal/utils"
)

const systemPrompt = "Você é um analista de marketing digital. Receberá uma tabela de vendas " +
	"com colunas UTM (source, campaign, content), produto, valor e data. Escreva um resumo " +
	"curto em português com os principais destaques, canais que mais vendem e recomendações."

type Service struct {
	p       Provider
	cache   *lru.Cache
	maxRows int
	retry   utils.Backoff
	log     *slog.Logger
}

func NewService(p Provider, maxRows, cacheSize, retries int, log *slog.Logger) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	c, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("insight cache: %w", err)
	}
	return &Service{p: p, cache: c, maxRows: maxRows, retry: utils.NewBackoff(500*time.Millisecond, retries), log: log}, nil
}

// Summarize pide el texto una vez por tabla; las siguientes salen del cache.
func (s *Service) Summarize(ctx context.Context, t *models.Table) (string, error) {
	if t == nil {
		return "", errors.New("nil table")
	}
	if v, ok := s.cache.Get(t.ID); ok {
		utils.InsightTotal.WithLabelValues("cached").Inc()
		return v.(string), nil
	}
	prompt, err := BuildPrompt(t, s.maxRows)
	if err != nil {
		return "", err
	}

	var text string
	err = s.retry.Do(ctx, func(err error) bool { return !errors.Is(err, ErrNotConfigured) }, func(i int) error {
		var e error
		text, e = s.p.GenerateResponse(ctx, prompt, systemPrompt)
		if e != nil && s.log != nil {
			s.log.Warn("insight attempt failed", slog.Int("attempt", i), slog.String("err", e.Error()))
		}
		return e
	})
	if err != nil {
		utils.InsightTotal.WithLabelValues("error").Inc()
		return "", err
	}
	utils.InsightTotal.WithLabelValues("ok").Inc()
	s.cache.Add(t.ID, text)
	return text, nil
}

type promptTable struct {
	Headers   []string                     `json:"headers"`
	Types     map[string]models.ColumnType `json:"types"`
	TotalRows int                          `json:"total_rows"`
	Rows      []map[string]models.Value    `json:"rows"`
}

// BuildPrompt serializa la tabla tipada; maxRows <= 0 manda todas las filas.
func BuildPrompt(t *models.Table, maxRows int) (string, error) {
	n := len(t.Rows)
	if maxRows > 0 && n > maxRows {
		n = maxRows
	}
	pt := promptTable{Headers: t.Headers, Types: t.Types, TotalRows: len(t.Rows), Rows: make([]map[string]models.Value, 0, n)}
	for _, r := range t.Rows[:n] {
		pt.Rows = append(pt.Rows, r.Values)
	}
	b, err := json.Marshal(pt)
	if err != nil {
		return "", fmt.Errorf("encode table: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("Tabela de vendas (JSON):\n")
	sb.Write(b)
	if n < len(t.Rows) {
		fmt.Fprintf(&sb, "\n(amostra de %d de %d linhas)", n, len(t.Rows))
	}
	return sb.String(), nil
}
