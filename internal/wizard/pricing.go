package wizard

import "math"

// DurationHours returns the span from start to end in hours, rounded to two
// decimals. An end at or before start is read as the next day, so equal times
// give 24.
func DurationHours(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	minutes := int(e - s)
	if e <= s {
		minutes = minutesPerDay - int(s) + int(e)
	}

	return math.Round(float64(minutes)/60*100) / 100, nil
}

// CalculatePrice prices d at its duration type's rate. It is zero until a
// space is chosen.
func CalculatePrice(d Data) float64 {
	if d.Space == nil {
		return 0
	}

	switch d.DurationType {
	case DurationHour:
		return d.Space.PricePerHour * d.Hours()
	case DurationDay:
		return d.Space.PricePerDay * float64(d.Duration)
	case DurationWeek:
		return d.Space.PricePerWeek * float64(d.Duration)
	case DurationMonth:
		return d.Space.PricePerMonth * float64(d.Duration)
	default:
		return 0
	}
}
