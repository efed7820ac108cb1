package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse normaliza dd/mm/aaaa (con hora opcional) o ISO a una fecha local.
// Solo acepta texto.
func Parse(v models.Value) (time.Time, bool) {
	if v.IsNumber() {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return time.Time{}, false
	}
	day := s
	if i := strings.Index(s, " "); i >= 0 {
		day = s[:i]
	}
	if parts := strings.Split(day, "/"); len(parts) == 3 {
		return fromParts(parts)
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fromParts(parts []string) (time.Time, bool) {
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}
	// time.Date normaliza desbordes (31/02 -> 03/03)
	return time.Date(n[2], time.Month(n[1]), n[0], 0, 0, 0, 0, time.Local), true
}

type Preset string

const (
	All        Preset = "all"
	Today      Preset = "today"
	Last7Days  Preset = "last-7-days"
	Last15Days Preset = "last-15-days"
	Last30Days Preset = "last-30-days"
	Custom     Preset = "custom"
)

func ParsePreset(s string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", All:
		return All, nil
	case Today, Last7Days, Last15Days, Last30Days, Custom:
		return p, nil
	}
	return "", fmt.Errorf("unknown date range %q", s)
}

func (p Preset) days() int {
	switch p {
	case Last7Days:
		return 7
	case Last15Days:
		return 15
	case Last30Days:
		return 30
	}
	return 0
}

// Window es la ventana de un preset evaluada en un instante fijo.
type Window struct {
	Preset Preset
	From   time.Time
	To     time.Time // cero = sin tope
}

// NewWindow fija la ventana; start/end solo cuentan para Custom.
func NewWindow(p Preset, ref, start, end time.Time) Window {
	w := Window{Preset: p}
	switch p {
	case Today:
		w.From = now.New(ref).BeginningOfDay()
		w.To = now.New(ref).EndOfDay()
	case Last7Days, Last15Days, Last30Days:
		w.From = ref.AddDate(0, 0, -p.days())
	case Custom:
		w.From = start
		if !end.IsZero() {
			w.To = now.New(end).EndOfDay()
		}
	}
	return w
}

func (w Window) Active() bool { return w.Preset != All && w.Preset != "" }

func (w Window) Contains(t time.Time) bool {
	if !w.Active() {
		return true
	}
	if t.Before(w.From) {
		return false
	}
	return w.To.IsZero() || !t.After(w.To)
}
