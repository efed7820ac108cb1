package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/utm-dashboard/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   models.Value
		want time.Time
		ok   bool
	}{
		{models.Text("05/03/2024"), day(2024, time.March, 5), true},
		{models.Text("05/03/2024 14:30:00"), day(2024, time.March, 5), true},
		{models.Text("31/02/2024"), day(2024, time.March, 2), true},
		{models.Text("2024-03-05"), day(2024, time.March, 5), true},
		{models.Text("2024-03-05 10:00:00"), time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local), true},
		{models.Text("aa/bb/cc"), time.Time{}, false},
		{models.Text("05/03"), time.Time{}, false},
		{models.Text("ontem"), time.Time{}, false},
		{models.Text(""), time.Time{}, false},
		{models.Number(20240305), time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		assert.Equal(t, c.ok, ok, c.in.String())
		if c.ok {
			assert.True(t, c.want.Equal(got), "%s: got %v", c.in.String(), got)
		}
	}
}

func TestParseRFC3339(t *testing.T) {
	got, ok := Parse(models.Text("2024-03-05T10:00:00Z"))
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)))
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, All, p)

	p, err = ParsePreset(" Last-7-Days ")
	require.NoError(t, err)
	assert.Equal(t, Last7Days, p)

	_, err = ParsePreset("yesterday")
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	ref := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.Local)

	today := NewWindow(Today, ref, time.Time{}, time.Time{})
	assert.True(t, today.Contains(day(2024, time.March, 10)))
	assert.False(t, today.Contains(day(2024, time.March, 9)))
	assert.False(t, today.Contains(day(2024, time.March, 11)))

	last7 := NewWindow(Last7Days, ref, time.Time{}, time.Time{})
	assert.False(t, last7.Contains(day(2024, time.March, 3)))
	assert.True(t, last7.Contains(day(2024, time.March, 4)))
	// sin tope superior
	assert.True(t, last7.Contains(day(2024, time.March, 20)))

	custom := NewWindow(Custom, ref, day(2024, time.March, 1), day(2024, time.March, 5))
	assert.True(t, custom.Contains(day(2024, time.March, 1)))
	assert.True(t, custom.Contains(time.Date(2024, time.March, 5, 23, 0, 0, 0, time.Local)))
	assert.False(t, custom.Contains(day(2024, time.March, 6)))
	assert.False(t, custom.Contains(day(2024, time.February, 29)))

	all := NewWindow(All, ref, time.Time{}, time.Time{})
	assert.False(t, all.Active())
	assert.True(t, all.Contains(day(1999, time.January, 1)))
}
