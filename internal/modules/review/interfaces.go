package review

import (
	"context"

	"travelapp/internal/domain"

	"github.com/google/uuid"
)

// ReviewRepository defines the review persistence the service needs
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	Update(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error)
	ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ListingGate interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}

type UserGate interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
