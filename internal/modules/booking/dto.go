package booking

import (
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/modules/listing"
	"travelapp/internal/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID            `json:"property_id" validate:"required"`
	UserID     uuid.UUID            `json:"user_id" validate:"required"`
	StartDate  string               `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string               `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	TotalPrice decimal.Decimal      `json:"total_price"`
	Status     domain.BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed canceled"`
}

// Build runs the booking invariants against now; it does not touch the store.
// Unparseable dates are left zero and reported as missing.
func (r CreateBookingRequest) Build(now time.Time) (*domain.Booking, error) {
	start, _ := domain.ParseDate(r.StartDate)
	end, _ := domain.ParseDate(r.EndDate)
	return domain.NewBooking(r.PropertyID, r.UserID, start, end, r.TotalPrice, r.Status, now)
}

type UpdateBookingRequest struct {
	StartDate  *string               `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string               `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TotalPrice *decimal.Decimal      `json:"total_price,omitempty"`
	Status     *domain.BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed canceled"`
}

func (r UpdateBookingRequest) toDomain() domain.BookingUpdate {
	u := domain.BookingUpdate{TotalPrice: r.TotalPrice, Status: r.Status}
	if r.StartDate != nil {
		if t, err := domain.ParseDate(*r.StartDate); err == nil {
			u.StartDate = &t
		}
	}
	if r.EndDate != nil {
		if t, err := domain.ParseDate(*r.EndDate); err == nil {
			u.EndDate = &t
		}
	}
	return u
}

// DecodeCreateBooking decodes a create body and checks it against the
// booking invariants, reporting every offending field at once.
func DecodeCreateBooking(data []byte) (CreateBookingRequest, error) {
	var req CreateBookingRequest
	fields := validator.DecodeJSON(data, &req)
	if _, bad := fields["non_field_errors"]; bad {
		return req, domain.NewValidationError(fields)
	}
	_, err := req.Build(time.Now().UTC())
	return req, domain.Combine(fields, err)
}

func DecodeUpdateBooking(data []byte) (UpdateBookingRequest, error) {
	var req UpdateBookingRequest
	if fields := validator.DecodeJSON(data, &req); fields != nil {
		return req, domain.NewValidationError(fields)
	}
	return req, nil
}

// BookingDetail nests the full listing and the guest.
type BookingDetail struct {
	BookingID  uuid.UUID             `json:"booking_id"`
	Property   listing.ListingDetail `json:"property"`
	User       listing.UserSummary   `json:"user"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	TotalPrice string                `json:"total_price"`
	Status     domain.BookingStatus  `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
}

func NewBookingDetail(b *domain.Booking) BookingDetail {
	property := listing.ListingDetail{PropertyID: b.ListingID}
	if b.Listing != nil {
		property = listing.NewListingDetail(b.Listing)
	}
	return BookingDetail{
		BookingID:  b.ID,
		Property:   property,
		User:       listing.NewUserSummary(b.UserID, b.User),
		StartDate:  b.StartDate.Format(domain.DateLayout),
		EndDate:    b.EndDate.Format(domain.DateLayout),
		TotalPrice: domain.FormatMoney(b.TotalPrice),
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

func (d BookingDetail) ToDomain() (*domain.Booking, error) {
	b, err := parseBooking(d.StartDate, d.EndDate, d.TotalPrice)
	if err != nil {
		return nil, err
	}
	b.ID = d.BookingID
	b.ListingID = d.Property.PropertyID
	b.UserID = d.User.ID
	b.Status = d.Status
	b.CreatedAt = d.CreatedAt
	b.User = d.User.ToDomain()
	if d.Property.PricePerNight != "" {
		if b.Listing, err = d.Property.ToDomain(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// BookingListItem flattens the listing and guest to their ids and names.
type BookingListItem struct {
	BookingID    uuid.UUID            `json:"booking_id"`
	PropertyID   uuid.UUID            `json:"property_id"`
	PropertyName string               `json:"property_name"`
	UserID       uuid.UUID            `json:"user_id"`
	UserName     string               `json:"user_name"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Status       domain.BookingStatus `json:"status"`
	TotalPrice   string               `json:"total_price"`
}

func NewBookingListItem(b *domain.Booking) BookingListItem {
	item := BookingListItem{
		BookingID:  b.ID,
		PropertyID: b.ListingID,
		UserID:     b.UserID,
		StartDate:  b.StartDate.Format(domain.DateLayout),
		EndDate:    b.EndDate.Format(domain.DateLayout),
		Status:     b.Status,
		TotalPrice: domain.FormatMoney(b.TotalPrice),
	}
	if b.Listing != nil {
		item.PropertyName = b.Listing.Name
	}
	if b.User != nil {
		item.UserName = b.User.Username
	}
	return item
}

func (i BookingListItem) ToDomain() (*domain.Booking, error) {
	b, err := parseBooking(i.StartDate, i.EndDate, i.TotalPrice)
	if err != nil {
		return nil, err
	}
	b.ID = i.BookingID
	b.ListingID = i.PropertyID
	b.UserID = i.UserID
	b.Status = i.Status
	if i.PropertyName != "" {
		b.Listing = &domain.Listing{ID: i.PropertyID, Name: i.PropertyName}
	}
	if i.UserName != "" {
		b.User = &domain.User{ID: i.UserID, Username: i.UserName}
	}
	return b, nil
}

func NewBookingList(bs []domain.Booking) []BookingListItem {
	out := make([]BookingListItem, 0, len(bs))
	for i := range bs {
		out = append(out, NewBookingListItem(&bs[i]))
	}
	return out
}

func parseBooking(start, end, total string) (*domain.Booking, error) {
	bad := map[string]string{}
	s, err := domain.ParseDate(start)
	if err != nil {
		bad["start_date"] = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	}
	e, err := domain.ParseDate(end)
	if err != nil {
		bad["end_date"] = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	}
	price, err := decimal.NewFromString(total)
	if err != nil {
		bad["total_price"] = "A valid number is required."
	}
	if len(bad) > 0 {
		return nil, domain.NewValidationError(bad)
	}
	return &domain.Booking{StartDate: s, EndDate: e, TotalPrice: price}, nil
}
