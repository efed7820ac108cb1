package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSource(t *testing.T) {
	cases := map[string]string{
		"fb_ads":       "facebook",
		"Facebook Ads": "facebook",
		"IG":           "instagram",
		"instagram":    "instagram",
		"google-cpc":   "google",
		"TikTok":       "tiktok",
		"kwai_br":      "kwai",
		"newsletter":   "newsletter",
		"":             "organic",
		"   ":          "organic",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanSource(in), in)
	}
}

func TestCleanCampaign(t *testing.T) {
	cases := map[string]string{
		"Promo|v2":              "Promo",
		" Black Friday | x | y": "Black Friday",
		"Simple":                "Simple",
		"":                      "n/a",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanCampaign(in), in)
	}
}
