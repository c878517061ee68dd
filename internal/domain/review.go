package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uuid.UUID `json:"review_id"`
	ListingID uuid.UUID `json:"property_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	Listing *Listing `json:"property,omitempty"`
	User    *User    `json:"user,omitempty"`
}

type ReviewUpdate struct {
	Rating  *int
	Comment *string
}

// NewReview checks the review's own fields. One review per (user, listing)
// is enforced by the review service and the store's unique index.
func NewReview(listingID, userID uuid.UUID, rating int, comment string, now time.Time) (*Review, error) {
	r := &Review{
		ID:        uuid.New(),
		ListingID: listingID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) Validate() error {
	fe := fieldErrors{}
	if r.ListingID == uuid.Nil {
		fe.add("property_id", "This field is required.")
	}
	if r.UserID == uuid.Nil {
		fe.add("user_id", "This field is required.")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		fe.add("rating", "Rating must be between 1 and 5.")
	}
	requireText(fe, "comment", r.Comment, 0)
	return fe.err()
}

func (r *Review) Apply(u ReviewUpdate) error {
	next := *r
	if u.Rating != nil {
		next.Rating = *u.Rating
	}
	if u.Comment != nil {
		next.Comment = *u.Comment
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*r = next
	return nil
}

// DuplicateReview is the error returned for a second review of the same listing by the same user.
func DuplicateReview() error {
	return NewUniquenessViolation(map[string]string{
		"non_field_errors": "The fields property, user must make a unique set.",
	})
}
