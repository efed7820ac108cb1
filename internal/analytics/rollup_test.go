package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

func TestSummarize(t *testing.T) {
	tb := salesTable(
		sale("", "fb", "", "", "", 100),
		sale("", "google", "", "", "", 50),
		[]models.Value{models.Text(""), models.Text(""), models.Text(""), models.Text(""), models.Text(""), models.Text("n/d")},
	)

	r := Summarize(tb.Rows, "valor", 0)
	assert.InDelta(t, 150, r.Revenue, 1e-9)
	assert.InDelta(t, 9, r.Tax, 1e-9)
	assert.InDelta(t, 141, r.Profit, 1e-9)
	assert.Equal(t, 0.0, r.ROAS)

	r = Summarize(tb.Rows, "valor", 50)
	assert.InDelta(t, 3, r.ROAS, 1e-9)
	assert.InDelta(t, 91, r.Profit, 1e-9)

	r = Summarize(tb.Rows, "", 10)
	assert.Equal(t, 0.0, r.Revenue)
	assert.InDelta(t, -10, r.Profit, 1e-9)
}

func TestClusterROI(t *testing.T) {
	c := models.Cluster{Key: "facebook|P", Sales: 3, Revenue: 90}

	m := ClusterROI(c, 0)
	assert.Nil(t, m.ROI)
	assert.Equal(t, ROIPending, m.ROIStatus)
	assert.Equal(t, 0.0, m.CPA)

	m = ClusterROI(c, 30)
	require.NotNil(t, m.ROI)
	assert.InDelta(t, 3, *m.ROI, 1e-9)
	assert.InDelta(t, 10, m.CPA, 1e-9)
	assert.Equal(t, ROIOK, m.ROIStatus)

	m = ClusterROI(models.Cluster{}, 30)
	assert.Equal(t, 0.0, m.CPA)
}
