package analytics

import "github.com/AngelCh415/utm-dashboard/internal/models"

// TaxRate es fija.
const TaxRate = 0.06

// estados de ROI por cluster
const (
	ROIPending = "pending"
	ROIOK      = "ok"
)

// Revenue coacciona una celda: solo números cuentan, el resto es 0.
func Revenue(v models.Value) float64 {
	f, ok := v.Float()
	if !ok {
		return 0
	}
	return f
}

func Summarize(rows []models.Row, revenueColumn string, investment float64) models.Rollup {
	var rev float64
	for _, r := range rows {
		rev += Revenue(r.Get(revenueColumn))
	}
	tax := rev * TaxRate
	return models.Rollup{
		Revenue:    rev,
		Tax:        tax,
		Investment: investment,
		Profit:     rev - investment - tax,
		ROAS:       safeDiv(rev, investment),
	}
}

func ClusterROI(c models.Cluster, investment float64) models.ClusterMetrics {
	m := models.ClusterMetrics{Cluster: c, Investment: investment, ROIStatus: ROIPending}
	if c.Sales > 0 {
		m.CPA = investment / float64(c.Sales)
	}
	if investment > 0 {
		roi := c.Revenue / investment
		m.ROI = &roi
		m.ROIStatus = ROIOK
	}
	return m
}

func safeDiv(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}
