package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
)

func sampleTimings() api.Timings {
	return api.Timings{
		Fajr:     "05:17",
		Sunrise:  "06:48",
		Dhuhr:    "12:13",
		Asr:      "15:02",
		Sunset:   "17:39",
		Maghrib:  "17:39",
		Isha:     "19:10",
		Imsak:    "05:07",
		Midnight: "00:14",
	}
}

func samplePrayers(t *testing.T, now time.Time) []Prayer {
	t.Helper()
	prayers, err := FromTimings(sampleTimings(), now)
	require.NoError(t, err)
	return prayers
}

func TestFromTimings_FixedOrderAndNames(t *testing.T) {
	prayers := samplePrayers(t, at(13, 0, 0))

	require.Len(t, prayers, 5)
	for i, name := range Names {
		assert.Equal(t, name, prayers[i].Name)
		assert.Equal(t, ArabicNames[name], prayers[i].ArabicName)
	}
}

func TestFromTimings_Windows(t *testing.T) {
	prayers := samplePrayers(t, at(13, 0, 0))

	want := []struct{ start, end string }{
		{"5:17 AM", "6:48 AM"},
		{"12:13 PM", "3:02 PM"},
		{"3:02 PM", "5:39 PM"},
		{"5:39 PM", "7:10 PM"},
		{"7:10 PM", "5:17 AM"}, // next day's Fajr
	}
	for i, w := range want {
		assert.Equal(t, w.start, prayers[i].StartTime, prayers[i].Name)
		assert.Equal(t, w.end, prayers[i].EndTime, prayers[i].Name)
	}
	assert.Equal(t, Clock{5, 17}, prayers[4].End)
}

func TestFromTimings_IsActiveEvaluatedOnce(t *testing.T) {
	tests := []struct {
		now    time.Time
		active string
	}{
		{at(13, 0, 0), "Dhuhr"},
		{at(21, 0, 0), "Isha"},
		{at(2, 0, 0), "Isha"},
		{at(5, 30, 0), "Fajr"},
		{at(9, 0, 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.now.Format("15:04"), func(t *testing.T) {
			for _, p := range samplePrayers(t, tt.now) {
				assert.Equal(t, p.Name == tt.active, p.IsActive, p.Name)
			}
		})
	}
}

func TestFromTimings_TimezoneSuffix(t *testing.T) {
	timings := sampleTimings()
	timings.Fajr = "05:17 (BST)"
	timings.Isha = "19:10 (BST)"

	prayers, err := FromTimings(timings, at(12, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, Clock{5, 17}, prayers[0].Start)
	assert.Equal(t, Clock{19, 10}, prayers[4].Start)
}

func TestFromTimings_Malformed(t *testing.T) {
	timings := sampleTimings()
	timings.Asr = "later"

	_, err := FromTimings(timings, at(12, 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrMalformed)
	assert.Contains(t, err.Error(), "Dhuhr end")
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{45 * time.Minute, "45m"},
		{0, "0m"},
		{-time.Minute, "0m"},
		{10*time.Hour + 59*time.Second, "10h 0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRemaining(tt.d), tt.d.String())
	}
}

func TestShortNames_AllPrayers(t *testing.T) {
	for _, name := range Names {
		assert.NotEmpty(t, ShortNames[name], name)
	}
}
