package ingest

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// ExportURL reescribe un link de edición de Google Sheets al export CSV.
// Cualquier otra URL se devuelve tal cual.
func ExportURL(raw string) string {
	raw = strings.TrimSpace(raw)
	i := strings.Index(raw, "/edit")
	if i < 0 {
		return raw
	}
	// solo si /edit es un segmento completo
	if rest := raw[i+len("/edit"):]; rest != "" && !strings.ContainsAny(rest[:1], "/?#") {
		return raw
	}
	out := raw[:i] + "/export?format=csv"
	if gid := findGID(raw[i:]); gid != "" {
		out += "&gid=" + url.QueryEscape(gid)
	}
	return out
}

func findGID(tail string) string {
	for _, sep := range []string{"?", "#"} {
		j := strings.Index(tail, sep)
		if j < 0 {
			continue
		}
		part := tail[j+1:]
		if k := strings.IndexAny(part, "?#"); k >= 0 {
			part = part[:k]
		}
		if q, err := url.ParseQuery(part); err == nil && q.Get("gid") != "" {
			return q.Get("gid")
		}
	}
	return ""
}
