package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one store handle.
type Store struct {
	db *gorm.DB

	Users    *UserRepository
	Listings *ListingRepository
	Bookings *BookingRepository
	Reviews  *ReviewRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Listings: NewListingRepository(db),
		Bookings: NewBookingRepository(db),
		Reviews:  NewReviewRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single transaction.
// fn must use only the Store it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Migrate creates or updates the users, property, booking and review tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&listingModel{},
		&bookingModel{},
		&reviewModel{},
	)
}
