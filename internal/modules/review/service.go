package review

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
	reviews  ReviewRepository
	listings ListingGate
	users    UserGate
	now      func() time.Time
}

func NewService(reviews ReviewRepository, listings ListingGate, users UserGate) *Service {
	return &Service{
		reviews:  reviews,
		listings: listings,
		users:    users,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Create accepts at most one review per user and listing. The pre-check
// gives the common case a clean error; the store's unique index catches
// concurrent duplicates.
func (s *Service) Create(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	rv, err := req.Build(s.now())
	if err != nil {
		return nil, err
	}

	l, err := s.listings.GetByID(ctx, rv.ListingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Field: "property_id", ID: rv.ListingID}
	}
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, rv.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Field: "user_id", ID: rv.UserID}
	}
	if err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByUserAndListing(ctx, rv.UserID, rv.ListingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.DuplicateReview()
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return nil, domain.DuplicateReview()
		case repository.IsForeignKeyViolation(err):
			return nil, &domain.ReferentialError{Field: "property_id", ID: rv.ListingID}
		}
		return nil, err
	}
	rv.Listing = l
	rv.User = u

	log.Printf("review created review_id=%s property_id=%s user_id=%s rating=%d", rv.ID, rv.ListingID, rv.UserID, rv.Rating)
	return rv, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rv.Apply(domain.ReviewUpdate{Rating: req.Rating, Comment: req.Comment}); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Review, int64, error) {
	items, err := s.reviews.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.reviews.ListByListing(ctx, listingID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reviews.Delete(ctx, id)
}
