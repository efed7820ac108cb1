package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

var (
	decimalComma    = regexp.MustCompile(`-?\d+,\d+`)
	currencyMarkers = []string{"R$", "$"}
)

// ParseScalar convierte un token crudo en número o texto limpio.
// Acepta formato brasileño: "R$ 1.234,56", "12,5%", "3,14".
func ParseScalar(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Text("")
	}
	s = stripQuotes(s)
	if s == "" {
		return models.Text("")
	}

	candidate := s
	if hasMarker(s) || decimalComma.MatchString(s) {
		candidate = normalizeDecimal(s)
	}
	if f, ok := toNumber(candidate); ok {
		return models.Number(f)
	}
	return models.Text(s)
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func hasMarker(s string) bool {
	if strings.Contains(s, "%") {
		return true
	}
	for _, m := range currencyMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func normalizeDecimal(s string) string {
	for _, m := range currencyMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.Join(strings.Fields(s), "")

	hasDot, hasComma := strings.Contains(s, "."), strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// punto = miles, coma = decimal
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

func toNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
