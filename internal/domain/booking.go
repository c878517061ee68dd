package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

func ValidBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed, BookingCanceled}
}

func (s BookingStatus) Valid() bool {
	for _, v := range ValidBookingStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

const DateLayout = "2006-01-02"

type Booking struct {
	ID         uuid.UUID       `json:"booking_id"`
	ListingID  uuid.UUID       `json:"property_id"`
	UserID     uuid.UUID       `json:"user_id"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     BookingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`

	Listing *Listing `json:"property,omitempty"`
	User    *User    `json:"user,omitempty"`
}

type BookingUpdate struct {
	StartDate  *time.Time
	EndDate    *time.Time
	TotalPrice *decimal.Decimal
	Status     *BookingStatus
}

// NewBooking validates a reservation. An empty status means pending.
// The start date may not lie before the calendar day of now.
func NewBooking(listingID, userID uuid.UUID, start, end time.Time, totalPrice decimal.Decimal, status BookingStatus, now time.Time) (*Booking, error) {
	if status == "" {
		status = BookingPending
	}
	b := &Booking{
		ID:         uuid.New(),
		ListingID:  listingID,
		UserID:     userID,
		StartDate:  DateOnly(start),
		EndDate:    DateOnly(end),
		TotalPrice: totalPrice,
		Status:     status,
		CreatedAt:  now,
	}

	fe := b.check()
	if !start.IsZero() && b.StartDate.Before(DateOnly(now)) {
		fe.add("start_date", "Start date cannot be in the past.")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Booking) Validate() error {
	return b.check().err()
}

func (b *Booking) check() fieldErrors {
	fe := fieldErrors{}
	if b.ListingID == uuid.Nil {
		fe.add("property_id", "This field is required.")
	}
	if b.UserID == uuid.Nil {
		fe.add("user_id", "This field is required.")
	}
	if b.StartDate.IsZero() {
		fe.add("start_date", "This field is required.")
	}
	if b.EndDate.IsZero() {
		fe.add("end_date", "This field is required.")
	}
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && !b.EndDate.After(b.StartDate) {
		fe.add("end_date", "End date must be after start date.")
	}
	if !b.Status.Valid() {
		fe.add("status", "\""+string(b.Status)+"\" is not a valid choice.")
	}
	checkMoney(fe, "total_price", b.TotalPrice, "Ensure this value is greater than or equal to 0.01.")
	return fe
}

func (b *Booking) Apply(u BookingUpdate) error {
	next := *b
	if u.StartDate != nil {
		next.StartDate = DateOnly(*u.StartDate)
	}
	if u.EndDate != nil {
		next.EndDate = DateOnly(*u.EndDate)
	}
	if u.TotalPrice != nil {
		next.TotalPrice = *u.TotalPrice
	}
	if u.Status != nil {
		next.Status = *u.Status
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*b = next
	return nil
}

func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// DateOnly drops the clock part and pins the date to UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
