package analytics

import "strings"

var sourceVocabulary = []struct {
	name    string
	matches []string
}{
	{"tiktok", []string{"tiktok"}},
	{"facebook", []string{"facebook", "fb"}},
	{"instagram", []string{"instagram", "ig"}},
	{"google", []string{"google"}},
	{"kwai", []string{"kwai"}},
}

// CleanSource lleva el utm_source a la plataforma conocida; vacío = organic.
func CleanSource(v string) string {
	if strings.TrimSpace(v) == "" {
		return "organic"
	}
	lower := strings.ToLower(v)
	for _, p := range sourceVocabulary {
		for _, m := range p.matches {
			if strings.Contains(lower, m) {
				return p.name
			}
		}
	}
	return v
}

// CleanCampaign corta en el primer "|"; vacío = n/a.
func CleanCampaign(v string) string {
	if v == "" {
		return "n/a"
	}
	if i := strings.Index(v, "|"); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
