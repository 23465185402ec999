package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "11:30", 2.5},
		{"09:00", "10:00", 1},
		{"08:15", "09:35", 1.33},
		{"22:00", "02:00", 4},
		{"10:00", "10:00", 24},
		{"23:30", "00:00", 0.5},
	}

	for _, tc := range cases {
		got, err := DurationHours(tc.start, tc.end)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s-%s", tc.start, tc.end)
	}

	_, err := DurationHours("9am", "10:00")
	assert.Error(t, err)
}

func TestCalculatePrice(t *testing.T) {
	space := placesSpace()
	space.PricePerHour = 12

	d := Data{Space: space, DurationType: DurationHour, StartTime: "09:00", EndTime: "11:00", Duration: 1}
	assert.Equal(t, 24.0, CalculatePrice(d))

	d = Data{Space: space, DurationType: DurationHour, Duration: 3}
	assert.Equal(t, 36.0, CalculatePrice(d))

	d = Data{Space: space, DurationType: DurationDay, Duration: 2}
	assert.Equal(t, 100.0, CalculatePrice(d))

	d = Data{Space: space, DurationType: DurationWeek, Duration: 1}
	assert.Equal(t, 220.0, CalculatePrice(d))

	d = Data{Space: space, DurationType: DurationMonth, Duration: 3}
	assert.Equal(t, 2100.0, CalculatePrice(d))

	assert.Zero(t, CalculatePrice(Data{DurationType: DurationHour, Duration: 2}))
}
