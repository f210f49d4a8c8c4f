package domain

import "time"

// Booking lifecycle event types.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingUpdated   = "booking.updated"
)

// BookingEvent is emitted after a booking write has been persisted.
type BookingEvent struct {
	Type          string        `json:"type"`
	BookingID     string        `json:"bookingId"`
	UserID        string        `json:"userId"`
	PlaceID       string        `json:"placeId"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	TotalAmount   int64         `json:"totalAmount"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

// NewBookingEvent snapshots b as an event of the given type.
func NewBookingEvent(eventType string, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserID:        b.UserID,
		PlaceID:       b.PlaceID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		OccurredAt:    at,
	}
}
