package listing

import (
	"context"

	"travelapp/internal/domain"

	"github.com/google/uuid"
)

// ListingRepository defines the listing persistence the service needs
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	Update(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	List(ctx context.Context, limit, offset int) ([]domain.Listing, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserGate resolves host references
type UserGate interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
