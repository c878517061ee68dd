package listing

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
	listings ListingRepository
	users    UserGate
	now      func() time.Time
}

func NewService(listings ListingRepository, users UserGate) *Service {
	return &Service{
		listings: listings,
		users:    users,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *Service) Create(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	l, err := req.Build(s.now())
	if err != nil {
		return nil, err
	}

	host, err := s.users.GetByID(ctx, req.HostID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.ReferentialError{Field: "host_id", ID: req.HostID}
	}
	if err != nil {
		return nil, err
	}

	if err := s.listings.Create(ctx, l); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, &domain.ReferentialError{Field: "host_id", ID: req.HostID}
		}
		return nil, err
	}
	l.Host = host

	log.Printf("listing created property_id=%s host_id=%s", l.ID, l.HostID)
	return l, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.Apply(req.toDomain(), s.now()); err != nil {
		return nil, err
	}
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Listing, int64, error) {
	items, err := s.listings.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.listings.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes the listing together with its bookings and reviews.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("listing deleted property_id=%s", id)
	return nil
}
