package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ColumnSpec resuelve un campo lógico: primero por nombre, después por posición.
// FallbackIndex < 0 desactiva la posición.
type ColumnSpec struct {
	Synonyms      []string `yaml:"synonyms"`
	FallbackIndex int      `yaml:"fallback_index"`
}

type Columns struct {
	Date     ColumnSpec `yaml:"date"`
	Product  ColumnSpec `yaml:"product"`
	Revenue  ColumnSpec `yaml:"revenue"`
	Source   ColumnSpec `yaml:"source"`
	Campaign ColumnSpec `yaml:"campaign"`
	Content  ColumnSpec `yaml:"content"`
}

func DefaultColumns() Columns {
	return Columns{
		Date:     ColumnSpec{Synonyms: []string{"data", "date", "data da venda", "data_venda", "created_at", "dia"}, FallbackIndex: -1},
		Product:  ColumnSpec{Synonyms: []string{"produto", "product", "nome do produto", "item"}, FallbackIndex: -1},
		Revenue:  ColumnSpec{Synonyms: []string{"valor", "revenue", "faturamento", "receita", "valor da venda", "amount", "value"}, FallbackIndex: -1},
		Source:   ColumnSpec{Synonyms: []string{"utm_source", "source", "origem", "fonte"}, FallbackIndex: -1},
		Campaign: ColumnSpec{Synonyms: []string{"utm_campaign", "campaign", "campanha"}, FallbackIndex: -1},
		Content:  ColumnSpec{Synonyms: []string{"utm_content", "content", "conteudo", "criativo"}, FallbackIndex: -1},
	}
}

// LoadColumns lee un YAML; los campos ausentes quedan con los defaults.
func LoadColumns(path string) (Columns, error) {
	cols := DefaultColumns()
	if path == "" {
		return cols, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cols, fmt.Errorf("read columns config: %w", err)
	}
	var raw map[string]struct {
		Synonyms      []string `yaml:"synonyms"`
		FallbackIndex *int     `yaml:"fallback_index"`
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return cols, fmt.Errorf("parse columns config: %w", err)
	}
	for name, cs := range raw {
		dst := cols.field(name)
		if dst == nil {
			return cols, fmt.Errorf("unknown column field %q", name)
		}
		if len(cs.Synonyms) > 0 {
			dst.Synonyms = cs.Synonyms
		}
		if cs.FallbackIndex != nil {
			dst.FallbackIndex = *cs.FallbackIndex
		}
	}
	return cols, nil
}

func (c *Columns) field(name string) *ColumnSpec {
	switch name {
	case "date":
		return &c.Date
	case "product":
		return &c.Product
	case "revenue":
		return &c.Revenue
	case "source":
		return &c.Source
	case "campaign":
		return &c.Campaign
	case "content":
		return &c.Content
	}
	return nil
}
