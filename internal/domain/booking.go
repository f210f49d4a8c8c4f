package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Terminal reports whether no lifecycle transition leaves s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// PaymentStatus tracks money movement for a booking, independent of status.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// PackageType is the booking tier that drives the price multiplier.
type PackageType string

const (
	PackageBudget   PackageType = "budget"
	PackageMidRange PackageType = "mid-range"
	PackageLuxury   PackageType = "luxury"
)

// Valid reports whether p is a known package tier.
func (p PackageType) Valid() bool {
	return p == PackageBudget || p == PackageMidRange || p == PackageLuxury
}

// consistentPayments lists the payment states that make sense for each status.
var consistentPayments = map[BookingStatus][]PaymentStatus{
	BookingPending:   {PaymentPending, PaymentPaid, PaymentFailed},
	BookingConfirmed: {PaymentPending, PaymentPaid, PaymentFailed},
	BookingCompleted: {PaymentPaid},
	BookingCancelled: {PaymentPending, PaymentFailed, PaymentRefunded},
}

// PaymentConsistent reports whether the (status, payment) pair is a coherent
// combination, e.g. a cancelled booking should not remain "paid".
func PaymentConsistent(status BookingStatus, payment PaymentStatus) bool {
	for _, p := range consistentPayments[status] {
		if p == payment {
			return true
		}
	}
	return false
}

// Travelers is the party size of a booking.
type Travelers struct {
	Adults   int `json:"adults" validate:"gte=1,lte=50"`
	Children int `json:"children" validate:"gte=0,lte=50"`
}

// ContactInfo is stored sealed; it only exists in plaintext in memory.
type ContactInfo struct {
	Phone           string `json:"phone" validate:"required,max=20"`
	AlternatePhone  string `json:"alternatePhone,omitempty" validate:"max=20"`
	SpecialRequests string `json:"specialRequests,omitempty" validate:"max=1000"`
}

// BookingDetails describes the trip itself.
type BookingDetails struct {
	StartDate      time.Time   `json:"startDate"`
	EndDate        time.Time   `json:"endDate"`
	NumberOfPeople Travelers   `json:"numberOfPeople"`
	Budget         float64     `json:"budget"`
	PackageType    PackageType `json:"packageType"`
}

// Booking is a trip reservation. Bookings are never deleted; cancellation is
// a status.
type Booking struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	DestinationID string         `json:"destinationId"`
	PlaceID       string         `json:"placeId"`
	Details       BookingDetails `json:"bookingDetails"`
	Contact       ContactInfo    `json:"contactInfo"`
	SealedContact string         `json:"-"` // encrypted ContactInfo
	Status        BookingStatus  `json:"status"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	TotalAmount   int64          `json:"totalAmount"`
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CancelByUser applies a traveller's status change. Travellers may only ask
// for "cancelled", and only while the booking is still pending.
func (b *Booking) CancelByUser(requested BookingStatus, notes string) error {
	if requested != BookingCancelled {
		return ErrValidation("users can only cancel bookings")
	}
	if b.Status != BookingPending {
		return ErrValidation("invalid status update: you can only cancel pending bookings")
	}
	b.Status = BookingCancelled
	if notes != "" {
		b.Notes = notes
	}
	return nil
}

// AdminUpdate is the input for PUT /api/bookings/{id}/admin. Omitted fields
// are left unchanged.
type AdminUpdate struct {
	Status        *BookingStatus `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

// Validate checks every supplied field before anything is applied.
func (u AdminUpdate) Validate() error {
	if u.Status != nil && !u.Status.Valid() {
		return ErrValidation(fmt.Sprintf("invalid status %q", *u.Status))
	}
	if u.PaymentStatus != nil && !u.PaymentStatus.Valid() {
		return ErrValidation(fmt.Sprintf("invalid payment status %q", *u.PaymentStatus))
	}
	if u.Notes != nil && len(*u.Notes) > 1000 {
		return ErrValidation("notes must be less than 1000 characters")
	}
	return nil
}

// ApplyAdminUpdate sets status and payment status independently. Any value
// is accepted from any state; see PaymentConsistent for flagging odd pairs.
func (b *Booking) ApplyAdminUpdate(u AdminUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.PaymentStatus != nil {
		b.PaymentStatus = *u.PaymentStatus
	}
	if u.Notes != nil && *u.Notes != "" {
		b.Notes = *u.Notes
	}
	return nil
}

// TripDetailsRequest is the part of the booking wizard that affects price.
type TripDetailsRequest struct {
	StartDate      string    `json:"startDate" validate:"required"`
	EndDate        string    `json:"endDate" validate:"required"`
	NumberOfPeople Travelers `json:"numberOfPeople"`
	Budget         float64   `json:"budget" validate:"gte=0"`
	PackageType    string    `json:"packageType" validate:"required,oneof=budget mid-range luxury"`
}

// QuoteRequest asks for a price preview without creating a booking.
type QuoteRequest struct {
	PlaceID        string             `json:"placeId" validate:"required"`
	BookingDetails TripDetailsRequest `json:"bookingDetails"`
}

// CreateBookingRequest is the checkout submission.
type CreateBookingRequest struct {
	DestinationID  string             `json:"destinationId" validate:"required"`
	PlaceID        string             `json:"placeId" validate:"required"`
	BookingDetails TripDetailsRequest `json:"bookingDetails"`
	ContactInfo    ContactInfo        `json:"contactInfo"`
	// TotalAmount is the client's own estimate; the stored amount is always
	// recomputed server-side.
	TotalAmount *float64 `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
}

// UserStatusRequest is the input for PUT /api/bookings/{id}/status.
type UserStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=500"`
}

// ParseTripDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseTripDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrValidationFields(map[string]string{field: "must be a valid ISO 8601 date"})
}

// BookingFilter narrows booking listings. Zero values mean "any".
type BookingFilter struct {
	UserID        string
	DestinationID string
	Status        BookingStatus
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Page          int
	Limit         int
}

// Offset converts the 1-based page into a row offset.
func (f BookingFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// BookingPage is one page of a booking listing.
type BookingPage struct {
	Bookings      []*Booking `json:"bookings"`
	TotalPages    int        `json:"totalPages"`
	CurrentPage   int        `json:"currentPage"`
	TotalBookings int64      `json:"totalBookings"`
}

// MonthlyBookings aggregates bookings created in one calendar month.
type MonthlyBookings struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Count   int64 `json:"count"`
	Revenue int64 `json:"revenue"`
}

// BookingStats is the admin dashboard summary.
type BookingStats struct {
	TotalBookings     int64             `json:"totalBookings"`
	PendingBookings   int64             `json:"pendingBookings"`
	ConfirmedBookings int64             `json:"confirmedBookings"`
	CancelledBookings int64             `json:"cancelledBookings"`
	CompletedBookings int64             `json:"completedBookings"`
	TotalRevenue      int64             `json:"totalRevenue"`
	Monthly           []MonthlyBookings `json:"monthlyBookings"`
}
