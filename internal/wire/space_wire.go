package wire

import (
	"cowork-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSpace(r chi.Router, spaceHandler *adaptor.SpaceHandler) {
	// GET /api/spaces - List spaces, ?location= filters (public)
	r.Get("/api/spaces", spaceHandler.GetSpaces)

	// GET /api/spaces/{id} - Space details (public)
	r.Get("/api/spaces/{id}", spaceHandler.GetSpaceByID)

	// GET /api/spaces/{id}/slots - Start times for ?date=2026-10-20 (public)
	r.Get("/api/spaces/{id}/slots", spaceHandler.GetSpaceSlots)

	// GET /api/payment-methods - Payment method catalogue (public)
	r.Get("/api/payment-methods", spaceHandler.GetPaymentMethods)
}
