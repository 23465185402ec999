package wizard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoutes = Routes{
	Login:          "/login",
	CardPayment:    "/payment/card",
	PaymentSuccess: "/payment/success",
}

func TestHeal_FillsMissingTimes(t *testing.T) {
	cal := calendarAt(t, "09:10")
	today := day(2026, 10, 19)
	d := Data{Space: placesSpace(), Date: &today, DurationType: DurationHour, Duration: 1}

	d = Heal(d, cal)

	assert.Equal(t, "10:30", d.StartTime)
	assert.Equal(t, "12:30", d.EndTime)
	assert.Equal(t, 16.0, d.TotalPrice)
}

func TestHeal_NothingLeftToday(t *testing.T) {
	cal := calendarAt(t, "19:45")
	today := day(2026, 10, 19)
	d := Data{Space: placesSpace(), Date: &today}

	d = Heal(d, cal)

	assert.Empty(t, d.StartTime)
	assert.NotNil(t, Missing(d))
}

func TestNewSubmission_HourlyDuration(t *testing.T) {
	tomorrow := day(2026, 10, 20)
	d := Data{
		Space: placesSpace(), Date: &tomorrow, StartTime: "09:00", EndTime: "11:30",
		Duration: 1, DurationType: DurationHour, Guests: 2, PaymentMethod: PaymentOnsite,
	}

	sub := NewSubmission(d)

	assert.Equal(t, "7d0c0f6e-2f0a-4c1e-9b54-0e3f3c1f6a11", sub.SpaceID)
	assert.Equal(t, "2026-10-20", sub.Date)
	assert.Equal(t, 2.5, sub.Duration)
	assert.Equal(t, DurationHour, sub.DurationType)
	assert.Nil(t, sub.Contact)

	d.DurationType, d.Duration = DurationDay, 3
	d.Contact = Contact{Name: "Ada"}
	sub = NewSubmission(d)
	assert.Equal(t, 3.0, sub.Duration)
	require.NotNil(t, sub.Contact)
	assert.Equal(t, "Ada", sub.Contact.Name)
}

func TestResolveOutcome(t *testing.T) {
	tomorrow := day(2026, 10, 20)
	d := Data{Space: placesSpace(), Date: &tomorrow, StartTime: "09:00", EndTime: "11:00", TotalPrice: 16}

	t.Run("external payment", func(t *testing.T) {
		out, err := ResolveOutcome(Receipt{PaymentURL: "https://pay.example.com/s/1", BookingID: "b1"}, d, testRoutes)
		require.NoError(t, err)
		assert.Equal(t, OutcomeExternalRedirect, out.Kind)
		assert.Equal(t, "https://pay.example.com/s/1", out.URL)
	})

	t.Run("card", func(t *testing.T) {
		card := d
		card.PaymentMethod = PaymentCard
		out, err := ResolveOutcome(Receipt{BookingID: "b2"}, card, testRoutes)
		require.NoError(t, err)

		assert.Equal(t, OutcomeCardForm, out.Kind)
		u, err := url.Parse(out.URL)
		require.NoError(t, err)
		assert.Equal(t, "/payment/card", u.Path)
		assert.Equal(t, "b2", u.Query().Get("booking_id"))
		assert.Equal(t, "16.00", u.Query().Get("amount"))
		assert.Equal(t, "Places", u.Query().Get("space"))
		assert.Equal(t, "2026-10-20", u.Query().Get("date"))
		assert.Equal(t, "09:00-11:00", u.Query().Get("time"))
	})

	t.Run("onsite", func(t *testing.T) {
		onsite := d
		onsite.PaymentMethod = PaymentOnsite
		out, err := ResolveOutcome(Receipt{BookingID: "b3"}, onsite, testRoutes)
		require.NoError(t, err)

		assert.Equal(t, OutcomeOnsiteSuccess, out.Kind)
		assert.Equal(t, "b3", out.BookingID)
		assert.Equal(t, "/payment/success?booking_id=b3&payment_method=onsite", out.URL)
	})

	t.Run("no booking", func(t *testing.T) {
		for _, method := range []string{PaymentCard, PaymentOnsite} {
			empty := d
			empty.PaymentMethod = method
			_, err := ResolveOutcome(Receipt{Amount: 16}, empty, testRoutes)
			assert.ErrorIs(t, err, ErrSubmissionFailed, method)
		}
	})

	t.Run("route with query", func(t *testing.T) {
		routes := testRoutes
		routes.CardPayment = "https://pay.example.com/card?tenant=cafe"
		card := d
		card.PaymentMethod = PaymentCard

		out, err := ResolveOutcome(Receipt{BookingID: "b4"}, card, routes)

		require.NoError(t, err)
		u, err := url.Parse(out.URL)
		require.NoError(t, err)
		assert.Equal(t, "/card", u.Path)
		assert.Equal(t, "cafe", u.Query().Get("tenant"))
		assert.Equal(t, "b4", u.Query().Get("booking_id"))
	})
}

func TestLoginOutcome(t *testing.T) {
	out := LoginOutcome(testRoutes, "/booking")

	assert.Equal(t, OutcomeLogin, out.Kind)
	assert.Equal(t, "/login?callbackUrl=%2Fbooking", out.URL)

	out = LoginOutcome(Routes{Login: "/auth?lang=en"}, "/booking")
	assert.Equal(t, "/auth?callbackUrl=%2Fbooking&lang=en", out.URL)

	assert.Equal(t, "/login", LoginOutcome(testRoutes, "").URL)
}
