package listing

import (
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	HostID        uuid.UUID       `json:"host_id" validate:"required"`
	Name          string          `json:"name" validate:"max=100"`
	Description   string          `json:"description"`
	Location      string          `json:"location" validate:"max=100"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

// Build runs the listing invariants; it does not touch the store.
func (r CreateListingRequest) Build(now time.Time) (*domain.Listing, error) {
	return domain.NewListing(r.HostID, r.Name, r.Description, r.Location, r.PricePerNight, now)
}

type UpdateListingRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,notblank"`
	Location      *string          `json:"location,omitempty" validate:"omitempty,notblank,max=100"`
	PricePerNight *decimal.Decimal `json:"price_per_night,omitempty"`
}

func (r UpdateListingRequest) toDomain() domain.ListingUpdate {
	return domain.ListingUpdate{
		Name:          r.Name,
		Description:   r.Description,
		Location:      r.Location,
		PricePerNight: r.PricePerNight,
	}
}

// DecodeCreateListing decodes a create body and checks it against the
// listing invariants, reporting every offending field at once.
func DecodeCreateListing(data []byte) (CreateListingRequest, error) {
	var req CreateListingRequest
	fields := validator.DecodeJSON(data, &req)
	if _, bad := fields["non_field_errors"]; bad {
		return req, domain.NewValidationError(fields)
	}
	_, err := req.Build(time.Now().UTC())
	return req, domain.Combine(fields, err)
}

func DecodeUpdateListing(data []byte) (UpdateListingRequest, error) {
	var req UpdateListingRequest
	if fields := validator.DecodeJSON(data, &req); fields != nil {
		return req, domain.NewValidationError(fields)
	}
	return req, nil
}

// UserSummary is the nested form of a user inside detail representations.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// NewUserSummary falls back to the bare id when the user was not loaded.
func NewUserSummary(id uuid.UUID, u *domain.User) UserSummary {
	if u == nil {
		return UserSummary{ID: id}
	}
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func (s UserSummary) ToDomain() *domain.User {
	return &domain.User{
		ID:        s.ID,
		Username:  s.Username,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}

// ListingDetail is the full representation with the host nested.
type ListingDetail struct {
	PropertyID    uuid.UUID   `json:"property_id"`
	Host          UserSummary `json:"host"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Location      string      `json:"location"`
	PricePerNight string      `json:"price_per_night"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func NewListingDetail(l *domain.Listing) ListingDetail {
	return ListingDetail{
		PropertyID:    l.ID,
		Host:          NewUserSummary(l.HostID, l.Host),
		Name:          l.Name,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: domain.FormatMoney(l.PricePerNight),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (d ListingDetail) ToDomain() (*domain.Listing, error) {
	price, err := decimal.NewFromString(d.PricePerNight)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"price_per_night": "A valid number is required."})
	}
	return &domain.Listing{
		ID:            d.PropertyID,
		HostID:        d.Host.ID,
		Name:          d.Name,
		Description:   d.Description,
		Location:      d.Location,
		PricePerNight: price,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Host:          d.Host.ToDomain(),
	}, nil
}

// ListingListItem is the compact form used by collection endpoints.
type ListingListItem struct {
	PropertyID    uuid.UUID `json:"property_id"`
	HostID        uuid.UUID `json:"host_id"`
	HostName      string    `json:"host_name"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	PricePerNight string    `json:"price_per_night"`
}

func NewListingListItem(l *domain.Listing) ListingListItem {
	item := ListingListItem{
		PropertyID:    l.ID,
		HostID:        l.HostID,
		Name:          l.Name,
		Location:      l.Location,
		PricePerNight: domain.FormatMoney(l.PricePerNight),
	}
	if l.Host != nil {
		item.HostName = l.Host.Username
	}
	return item
}

func (i ListingListItem) ToDomain() (*domain.Listing, error) {
	price, err := decimal.NewFromString(i.PricePerNight)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"price_per_night": "A valid number is required."})
	}
	l := &domain.Listing{
		ID:            i.PropertyID,
		HostID:        i.HostID,
		Name:          i.Name,
		Location:      i.Location,
		PricePerNight: price,
	}
	if i.HostName != "" {
		l.Host = &domain.User{ID: i.HostID, Username: i.HostName}
	}
	return l, nil
}

func NewListingList(ls []domain.Listing) []ListingListItem {
	out := make([]ListingListItem, 0, len(ls))
	for i := range ls {
		out = append(out, NewListingListItem(&ls[i]))
	}
	return out
}
