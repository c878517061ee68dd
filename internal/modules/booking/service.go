package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	bookings BookingRepository
	listings ListingGate
	users    UserGate
	now      func() time.Time
}

func NewService(bookings BookingRepository, listings ListingGate, users UserGate) *Service {
	return &Service{
		bookings: bookings,
		listings: listings,
		users:    users,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	b, err := req.Build(s.now())
	if err != nil {
		return nil, err
	}

	l, err := s.listings.GetByID(ctx, b.ListingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Field: "property_id", ID: b.ListingID}
	}
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, b.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Field: "user_id", ID: b.UserID}
	}
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// the listing or guest vanished between the lookup and the insert
		if repository.IsForeignKeyViolation(err) {
			return nil, &domain.ReferentialError{Field: "property_id", ID: b.ListingID}
		}
		return nil, err
	}
	b.Listing = l
	b.User = u

	log.Printf("booking created booking_id=%s property_id=%s user_id=%s nights=%d status=%s",
		b.ID, b.ListingID, b.UserID, b.Nights(), b.Status)
	return b, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Apply(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	items, err := s.bookings.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListForListing returns the bookings of one listing ordered by start date.
func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.bookings.ListByListing(ctx, listingID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookings.Delete(ctx, id)
}
