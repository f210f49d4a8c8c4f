package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yatra/backend/internal/domain"
	"github.com/yatra/backend/internal/pricing"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	publishTimeout = 2 * time.Second
)

// pageBounds clamps a requested page and page size to usable values.
func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// SubscriptionReader resolves a user's current subscription state.
type SubscriptionReader interface {
	Current(ctx context.Context, userID string) (domain.SubscriptionState, error)
}

// BookingService runs the booking lifecycle: quoting, checkout, cancellation
// and administration.
type BookingService struct {
	bookings BookingStore
	places   PlaceStore
	subs     SubscriptionReader
	table    pricing.Table
	sealer   Sealer
	events   EventPublisher
	validate *validator.Validate
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings BookingStore,
	places PlaceStore,
	subs SubscriptionReader,
	table pricing.Table,
	sealer Sealer,
	events EventPublisher,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		places:   places,
		subs:     subs,
		table:    table,
		sealer:   sealer,
		events:   events,
		validate: newValidator(),
		now:      time.Now,
	}
}

// trip is a validated, parsed TripDetailsRequest.
type trip struct {
	details domain.BookingDetails
	nights  int64
}

// Quote prices a trip for the caller without creating anything.
func (s *BookingService) Quote(ctx context.Context, userID string, req *domain.QuoteRequest) (*pricing.Quote, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	t, err := parseTrip(req.BookingDetails)
	if err != nil {
		return nil, err
	}

	place, err := s.places.FindPlace(ctx, req.PlaceID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if place == nil || !place.IsActive {
		return nil, domain.ErrNotFound("place not found")
	}

	return s.price(ctx, userID, place, t)
}

// Create validates a checkout, prices it server-side and stores it as a
// pending booking.
func (s *BookingService) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	t, err := parseTrip(req.BookingDetails)
	if err != nil {
		return nil, err
	}

	dest, err := s.places.FindDestination(ctx, req.DestinationID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find destination", err)
	}
	if dest == nil || !dest.IsActive {
		return nil, domain.ErrValidation("invalid destination")
	}
	place, err := s.places.FindPlace(ctx, req.PlaceID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if place == nil || !place.IsActive {
		return nil, domain.ErrValidation("invalid place")
	}
	if place.DestinationID != dest.ID {
		return nil, domain.ErrValidation("place does not belong to the selected destination")
	}

	quote, err := s.price(ctx, userID, place, t)
	if err != nil {
		return nil, err
	}
	if req.TotalAmount != nil && int64(math.Round(*req.TotalAmount)) != quote.TotalAmount {
		log.Printf("⚠️  Booking total mismatch for user %s: client=%.2f server=%d", userID, *req.TotalAmount, quote.TotalAmount)
	}

	now := s.now()
	b := &domain.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		DestinationID: dest.ID,
		PlaceID:       place.ID,
		Details:       t.details,
		Contact:       req.ContactInfo,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		TotalAmount:   quote.TotalAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	sealed, err := s.sealer.SealJSON(b.Contact, b.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to seal contact info", err)
	}
	b.SealedContact = sealed

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, domain.ErrInternal("failed to create booking", err)
	}

	log.Printf("🧳 Booking created: id=%s user=%s place=%s total=%d", b.ID, userID, place.ID, b.TotalAmount)
	s.publish(ctx, domain.EventBookingCreated, b)
	return b, nil
}

// ListForUser returns the caller's bookings, newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID string, page, limit int, status string) (*domain.BookingPage, error) {
	f := domain.BookingFilter{UserID: userID, Page: page, Limit: limit}
	if status != "" {
		f.Status = domain.BookingStatus(status)
	}
	return s.list(ctx, f)
}

// ListAll returns bookings across all users (admin only).
func (s *BookingService) ListAll(ctx context.Context, f domain.BookingFilter) (*domain.BookingPage, error) {
	return s.list(ctx, f)
}

// Get returns a booking visible to the caller. Other users' bookings are
// reported as not found; admins see everything.
func (s *BookingService) Get(ctx context.Context, userID, role, id string) (*domain.Booking, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID && role != domain.RoleAdmin {
		return nil, domain.ErrNotFound("booking not found")
	}
	if err := s.open(b); err != nil {
		return nil, domain.ErrInternal("failed to open contact info", err)
	}
	return b, nil
}

// CancelByUser lets a traveller cancel one of their own pending bookings.
func (s *BookingService) CancelByUser(ctx context.Context, userID, id string, req *domain.UserStatusRequest) (*domain.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ErrNotFound("booking not found")
	}

	if err := b.CancelByUser(domain.BookingStatus(req.Status), req.Notes); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, persistError("failed to update booking", err)
	}

	log.Printf("🧳 Booking cancelled by user: id=%s user=%s", b.ID, userID)
	s.publish(ctx, domain.EventBookingCancelled, b)
	if err := s.open(b); err != nil {
		log.Printf("⚠️  Failed to open contact info for booking %s: %v", b.ID, err)
	}
	return b, nil
}

// AdminUpdate applies an administrator's status, payment or notes change.
// Any valid value is accepted; unusual status/payment pairs are only logged.
func (s *BookingService) AdminUpdate(ctx context.Context, id string, u domain.AdminUpdate) (*domain.Booking, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := b.Status

	if err := b.ApplyAdminUpdate(u); err != nil {
		return nil, err
	}
	if !domain.PaymentConsistent(b.Status, b.PaymentStatus) {
		log.Printf("⚠️  Booking %s now has unusual status/payment pair: %s/%s", b.ID, b.Status, b.PaymentStatus)
	}
	b.UpdatedAt = s.now()

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, persistError("failed to update booking", err)
	}

	event := domain.EventBookingUpdated
	if b.Status == domain.BookingCancelled && previous != domain.BookingCancelled {
		event = domain.EventBookingCancelled
	}
	s.publish(ctx, event, b)

	if err := s.open(b); err != nil {
		log.Printf("⚠️  Failed to open contact info for booking %s: %v", b.ID, err)
	}
	return b, nil
}

// Stats returns the admin dashboard aggregates.
func (s *BookingService) Stats(ctx context.Context) (*domain.BookingStats, error) {
	stats, err := s.bookings.Stats(ctx)
	if err != nil {
		return nil, domain.ErrInternal("failed to compute booking stats", err)
	}
	return stats, nil
}

func (s *BookingService) price(ctx context.Context, userID string, place *domain.Place, t trip) (*pricing.Quote, error) {
	state, err := s.subs.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	in := pricing.Input{
		NightlyRate: place.Rate(),
		Nights:      t.nights,
		Adults:      int64(t.details.NumberOfPeople.Adults),
		Children:    int64(t.details.NumberOfPeople.Children),
		Package:     t.details.PackageType,
		Subscription: pricing.Subscription{
			Active: state.Active(s.now()),
			Tier:   state.Tier(),
		},
	}
	quote, err := pricing.Calculate(s.table, in)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *BookingService) list(ctx context.Context, f domain.BookingFilter) (*domain.BookingPage, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.ErrValidation("invalid status filter")
	}
	f.Page, f.Limit = pageBounds(f.Page, f.Limit)

	bookings, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, domain.ErrInternal("failed to list bookings", err)
	}
	for _, b := range bookings {
		if err := s.open(b); err != nil {
			log.Printf("⚠️  Failed to open contact info for booking %s: %v", b.ID, err)
		}
	}

	return &domain.BookingPage{
		Bookings:      bookings,
		TotalPages:    domain.PageCount(total, f.Limit),
		CurrentPage:   f.Page,
		TotalBookings: total,
	}, nil
}

func (s *BookingService) find(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find booking", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound("booking not found")
	}
	return b, nil
}

func (s *BookingService) open(b *domain.Booking) error {
	if b.SealedContact == "" {
		return nil
	}
	return s.sealer.OpenJSON(b.SealedContact, b.ID, &b.Contact)
}

// publish is fire-and-forget: the booking is already stored. The event
// outlives a cancelled request but never holds it past publishTimeout.
func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, domain.NewBookingEvent(eventType, b, s.now())); err != nil {
		log.Printf("⚠️  Failed to publish %s for booking %s: %v", eventType, b.ID, err)
	}
}

func parseTrip(req domain.TripDetailsRequest) (trip, error) {
	start, err := domain.ParseTripDate("startDate", req.StartDate)
	if err != nil {
		return trip{}, err
	}
	end, err := domain.ParseTripDate("endDate", req.EndDate)
	if err != nil {
		return trip{}, err
	}
	nights, err := pricing.NightsBetween(start, end)
	if err != nil {
		return trip{}, err
	}

	return trip{
		details: domain.BookingDetails{
			StartDate:      start,
			EndDate:        end,
			NumberOfPeople: req.NumberOfPeople,
			Budget:         req.Budget,
			PackageType:    domain.PackageType(req.PackageType),
		},
		nights: nights,
	}, nil
}
