package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

type ColumnType string

const (
	Numeric ColumnType = "numeric"
	Textual ColumnType = "textual"
)

type valueKind uint8

const (
	kindText valueKind = iota
	kindNumber
)

// Value es una celda: número o texto, nunca ambos.
type Value struct {
	kind valueKind
	num  float64
	text string
}

func Number(f float64) Value { return Value{kind: kindNumber, num: f} }
func Text(s string) Value    { return Value{kind: kindText, text: s} }

func (v Value) IsNumber() bool { return v.kind == kindNumber }

func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) IsEmpty() bool { return v.kind == kindText && v.text == "" }

func (v Value) String() string {
	if v.kind == kindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == kindNumber && !math.IsNaN(v.num) && !math.IsInf(v.num, 0) {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.String())
}

type Row struct {
	ID     int              `json:"id"`
	Values map[string]Value `json:"values"`
}

// Get devuelve texto vacío si la columna no existe
func (r Row) Get(col string) Value {
	if col == "" {
		return Text("")
	}
	return r.Values[col]
}

type Table struct {
	ID       string                `json:"id"`
	Source   string                `json:"source"`
	LoadedAt time.Time             `json:"loaded_at"`
	Headers  []string              `json:"headers"`
	Rows     []Row                 `json:"-"`
	Types    map[string]ColumnType `json:"types"`
}

type Cluster struct {
	Key      string         `json:"key"`
	Source   string         `json:"source"`
	Campaign string         `json:"campaign"`
	Sales    int            `json:"sales"`
	Revenue  float64        `json:"revenue"`
	MinDate  string         `json:"min_date"`
	MaxDate  string         `json:"max_date"`
	Products map[string]int `json:"products"`
	Contents []string       `json:"contents"`
}

type RankEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Rollup struct {
	Revenue    float64 `json:"revenue"`
	Tax        float64 `json:"tax"`
	Investment float64 `json:"investment"`
	Profit     float64 `json:"profit"`
	ROAS       float64 `json:"roas"`
}

// ClusterMetrics: ROI nil mientras no haya inversión cargada
type ClusterMetrics struct {
	Cluster
	Investment float64  `json:"investment"`
	CPA        float64  `json:"cpa"`
	ROI        *float64 `json:"roi"`
	ROIStatus  string   `json:"roi_status"`
}
