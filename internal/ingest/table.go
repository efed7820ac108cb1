package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

// Build arma la tabla tipada a partir del texto CSV.
// Devuelve false si no queda ninguna línea útil.
func Build(csvText string) (*models.Table, bool) {
	lines := splitLines(csvText)
	if len(lines) == 0 {
		return nil, false
	}

	headers := splitHeader(lines[0])
	rows := make([]models.Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		fields := splitQuoted(line)
		vals := make(map[string]models.Value, len(headers))
		for j, h := range headers {
			if j < len(fields) {
				vals[h] = ParseScalar(fields[j])
			} else {
				vals[h] = models.Text("")
			}
		}
		rows = append(rows, models.Row{ID: i, Values: vals})
	}

	return &models.Table{
		Headers: headers,
		Rows:    rows,
		Types:   inferTypes(headers, rows),
	}, true
}

func splitLines(s string) []string {
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func splitHeader(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = stripQuotes(strings.TrimSpace(p))
	}
	return out
}

// splitQuoted separa por comas fuera de comillas; las comillas quedan en el
// campo y ParseScalar quita la capa externa. Comillas impares: el resto de la
// línea queda en un solo campo.
func splitQuoted(line string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(out, strings.TrimSpace(cur.String()))
}

// el tipo sale de la primera fila con valor no vacío, no de una mayoría
func inferTypes(headers []string, rows []models.Row) map[string]models.ColumnType {
	types := make(map[string]models.ColumnType, len(headers))
	for _, h := range headers {
		types[h] = models.Textual
		for _, r := range rows {
			v := r.Values[h]
			if v.IsEmpty() {
				continue
			}
			if v.IsNumber() {
				types[h] = models.Numeric
			}
			break
		}
	}
	return types
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode pasa el contenido a UTF-8. Sin charset explícito, un archivo que no
// es UTF-8 válido se lee como Windows-1252 (exportaciones de Excel en pt-BR).
func Decode(data []byte, charset string) (string, error) {
	var dec *encoding.Decoder
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		if utf8.Valid(data) {
			return string(bytes.TrimPrefix(data, utf8BOM)), nil
		}
		if charset != "" {
			return "", fmt.Errorf("invalid utf-8 content")
		}
		dec = charmap.Windows1252.NewDecoder()
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		dec = charmap.ISO8859_1.NewDecoder()
	case "windows-1252", "cp1252":
		dec = charmap.Windows1252.NewDecoder()
	default:
		return "", fmt.Errorf("unsupported charset %q", charset)
	}
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", charset, err)
	}
	return string(out), nil
}
