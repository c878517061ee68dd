package booking

import (
	"context"

	"travelapp/internal/domain"

	"github.com/google/uuid"
)

// BookingRepository defines the booking persistence the service needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListingGate resolves the booked listing
type ListingGate interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}

// UserGate resolves the booking guest
type UserGate interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
