package review

import (
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/modules/listing"
	"travelapp/internal/pkg/validator"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

func (r CreateReviewRequest) Build(now time.Time) (*domain.Review, error) {
	return domain.NewReview(r.PropertyID, r.UserID, r.Rating, r.Comment, now)
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,notblank"`
}

func DecodeCreateReview(data []byte) (CreateReviewRequest, error) {
	var req CreateReviewRequest
	fields := validator.DecodeJSON(data, &req)
	if _, bad := fields["non_field_errors"]; bad {
		return req, domain.NewValidationError(fields)
	}
	_, err := req.Build(time.Now().UTC())
	return req, domain.Combine(fields, err)
}

func DecodeUpdateReview(data []byte) (UpdateReviewRequest, error) {
	var req UpdateReviewRequest
	if fields := validator.DecodeJSON(data, &req); fields != nil {
		return req, domain.NewValidationError(fields)
	}
	return req, nil
}

type ReviewDetail struct {
	ReviewID  uuid.UUID             `json:"review_id"`
	Property  listing.ListingDetail `json:"property"`
	User      listing.UserSummary   `json:"user"`
	Rating    int                   `json:"rating"`
	Comment   string                `json:"comment"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewReviewDetail(rv *domain.Review) ReviewDetail {
	property := listing.ListingDetail{PropertyID: rv.ListingID}
	if rv.Listing != nil {
		property = listing.NewListingDetail(rv.Listing)
	}
	return ReviewDetail{
		ReviewID:  rv.ID,
		Property:  property,
		User:      listing.NewUserSummary(rv.UserID, rv.User),
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

func (d ReviewDetail) ToDomain() (*domain.Review, error) {
	rv := &domain.Review{
		ID:        d.ReviewID,
		ListingID: d.Property.PropertyID,
		UserID:    d.User.ID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		User:      d.User.ToDomain(),
	}
	if d.Property.PricePerNight != "" {
		l, err := d.Property.ToDomain()
		if err != nil {
			return nil, err
		}
		rv.Listing = l
	}
	return rv, nil
}

// ReviewListItem keeps only ids for the listing and the author.
type ReviewListItem struct {
	ReviewID   uuid.UUID `json:"review_id"`
	PropertyID uuid.UUID `json:"property_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReviewListItem(rv *domain.Review) ReviewListItem {
	return ReviewListItem{
		ReviewID:   rv.ID,
		PropertyID: rv.ListingID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		CreatedAt:  rv.CreatedAt,
	}
}

func (i ReviewListItem) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        i.ReviewID,
		ListingID: i.PropertyID,
		UserID:    i.UserID,
		Rating:    i.Rating,
		Comment:   i.Comment,
		CreatedAt: i.CreatedAt,
	}
}

func NewReviewList(rs []domain.Review) []ReviewListItem {
	out := make([]ReviewListItem, 0, len(rs))
	for i := range rs {
		out = append(out, NewReviewListItem(&rs[i]))
	}
	return out
}
