package wizard

import (
	"testing"

	"cowork-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_GuestsClamped(t *testing.T) {
	cal := calendarAt(t, "09:10")
	s := New(cal, placesSpace())

	s, err := Reduce(s, SetGuests{Guests: 40}, cal)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Data.Guests)

	s, err = Reduce(s, SetGuests{Guests: -3}, cal)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Data.Guests)
}

func TestReduce_SelectSmallerSpaceClampsGuests(t *testing.T) {
	cal := calendarAt(t, "09:10")
	s := New(cal, placesSpace())
	s, _ = Reduce(s, SetGuests{Guests: 10}, cal)

	booth := placesSpace()
	booth.Capacity = 2
	s, err := Reduce(s, SelectSpace{Space: booth}, cal)

	require.NoError(t, err)
	assert.Equal(t, 2, s.Data.Guests)
}

func TestReduce_SetDateClearsStaleTimes(t *testing.T) {
	cal := calendarAt(t, "09:30")
	tomorrow := day(2026, 10, 20)
	s := State{
		Step: StepDateAndDuration,
		Data: Data{Space: placesSpace(), Date: &tomorrow, StartTime: "09:00", EndTime: "11:00", DurationType: DurationHour, Duration: 1, Guests: 1},
	}

	s, err := Reduce(s, SetDate{Date: day(2026, 10, 19)}, cal)

	require.NoError(t, err)
	assert.Empty(t, s.Data.StartTime)
	assert.Empty(t, s.Data.EndTime)
}

func TestReduce_SetDateKeepsValidTimes(t *testing.T) {
	cal := calendarAt(t, "09:30")
	today := day(2026, 10, 19)
	s := State{
		Step: StepDateAndDuration,
		Data: Data{Space: placesSpace(), Date: &today, StartTime: "13:00", EndTime: "15:00", DurationType: DurationHour, Duration: 1, Guests: 1},
	}

	s, err := Reduce(s, SetDate{Date: day(2026, 10, 22)}, cal)

	require.NoError(t, err)
	assert.Equal(t, "13:00", s.Data.StartTime)
	assert.Equal(t, "15:00", s.Data.EndTime)
	assert.Equal(t, day(2026, 10, 22), *s.Data.Date)
}

func TestReduce_SetDateToClosedDayClearsTimes(t *testing.T) {
	cal := calendarAt(t, "09:10")
	s := New(cal, placesSpace())
	s, err := Reduce(s, SetDate{Date: day(2026, 10, 20)}, cal)
	require.NoError(t, err)
	s, err = Reduce(s, SetStartTime{Time: "09:00"}, cal)
	require.NoError(t, err)
	s, err = Reduce(s, SetEndTime{Time: "11:00"}, cal)
	require.NoError(t, err)

	s, err = Reduce(s, SetDate{Date: day(2026, 10, 25)}, cal)

	require.NoError(t, err)
	assert.Empty(t, s.Data.StartTime)
	assert.Empty(t, s.Data.EndTime)

	_, err = Reduce(s, SetStartTime{Time: "09:00"}, cal)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReduce_SetStartTimeWithinOpeningHours(t *testing.T) {
	cal := calendarAt(t, "09:10")
	tuesday := day(2026, 10, 20)
	s := State{Step: StepDateAndDuration, Data: Data{Space: placesSpace(), Date: &tuesday, DurationType: DurationHour, Duration: 1, Guests: 1}}

	tests := []struct {
		time string
		msg  string
	}{
		{"03:17", msgOutsideHours},
		{"07:30", msgOutsideHours},
		{"08:15", msgOutsideHours},
		{"20:00", msgOutsideHours},
		{"08:00", ""},
		{"19:30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			next, err := Reduce(s, SetStartTime{Time: tt.time}, cal)
			if tt.msg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.time, next.Data.StartTime)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.msg, next.Errors["start_time"])
			assert.Empty(t, next.Data.StartTime)
		})
	}
}

func TestReduce_SelectSpaceClearsTimesOutsideItsHours(t *testing.T) {
	cal := calendarAt(t, "09:10")
	tuesday := day(2026, 10, 20)
	s := State{
		Step: StepSpaceSelection,
		Data: Data{Space: placesSpace(), Date: &tuesday, StartTime: "09:00", EndTime: "11:00", DurationType: DurationHour, Duration: 1, Guests: 1},
	}

	lounge := placesSpace()
	lounge.OpeningHours["tuesday"] = entity.DayHours{Open: "12:00", Close: "18:00"}
	next, err := Reduce(s, SelectSpace{Space: lounge}, cal)

	require.NoError(t, err)
	assert.Empty(t, next.Data.StartTime)
	assert.Empty(t, next.Data.EndTime)

	next, err = Reduce(s, SelectSpace{Space: placesSpace()}, cal)
	require.NoError(t, err)
	assert.Equal(t, "09:00", next.Data.StartTime)
}

func TestReduce_SetDateRejectsPast(t *testing.T) {
	cal := calendarAt(t, "09:30")
	s := New(cal, placesSpace())

	next, err := Reduce(s, SetDate{Date: day(2026, 10, 1)}, cal)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, *s.Data.Date, *next.Data.Date)
	assert.Contains(t, next.Errors, "date")
}

func TestReduce_SetStartTimeClearsEarlierEnd(t *testing.T) {
	cal := calendarAt(t, "09:30")
	tomorrow := day(2026, 10, 20)
	s := State{Data: Data{Date: &tomorrow, StartTime: "09:00", EndTime: "11:00"}}

	s, err := Reduce(s, SetStartTime{Time: "10:00"}, cal)
	require.NoError(t, err)
	assert.Equal(t, "11:00", s.Data.EndTime)

	s, err = Reduce(s, SetStartTime{Time: "11:00"}, cal)
	require.NoError(t, err)
	assert.Equal(t, "11:00", s.Data.StartTime)
	assert.Empty(t, s.Data.EndTime)
}

func TestReduce_SetStartTimeEnforcesLeadTime(t *testing.T) {
	cal := calendarAt(t, "09:30")
	s := New(cal, placesSpace())

	_, err := Reduce(s, SetStartTime{Time: "10:00"}, cal)
	assert.ErrorIs(t, err, ErrValidation)

	s, err = Reduce(s, SetStartTime{Time: "10:30"}, cal)
	require.NoError(t, err)
	assert.Equal(t, "10:30", s.Data.StartTime)
}

func TestReduce_SetEndTimeUpdatesPrice(t *testing.T) {
	cal := calendarAt(t, "09:30")
	s := New(cal, placesSpace())
	s, _ = Reduce(s, SetStartTime{Time: "11:00"}, cal)

	s, err := Reduce(s, SetEndTime{Time: "13:30"}, cal)

	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Data.TotalPrice)
}

func TestReduce_SetDuration(t *testing.T) {
	cal := calendarAt(t, "09:30")
	s := New(cal, placesSpace())

	s, err := Reduce(s, SetDuration{Type: DurationWeek, Count: 2}, cal)
	require.NoError(t, err)
	assert.Equal(t, DurationWeek, s.Data.DurationType)
	assert.Equal(t, 440.0, s.Data.TotalPrice)

	_, err = Reduce(s, SetDuration{Type: DurationWeek, Count: 0}, cal)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Reduce(s, SetDuration{Type: "year", Count: 1}, cal)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReduce_SelectPayment(t *testing.T) {
	cal := calendarAt(t, "09:30")
	s := New(cal, placesSpace())
	s = s.WithError(FieldGeneral, "Booking failed")

	s, err := Reduce(s, SelectPayment{Method: PaymentOnsite}, cal)
	require.NoError(t, err)
	assert.Equal(t, PaymentOnsite, s.Data.PaymentMethod)
	assert.Nil(t, s.Errors)

	_, err = Reduce(s, SelectPayment{Method: PaymentBankTransfer}, cal)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Reduce(s, SelectPayment{Method: "bitcoin"}, cal)
	assert.ErrorIs(t, err, ErrValidation)
}
