package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxNameLength     = 100
	MaxLocationLength = 100
	MoneyPlaces       = 2
)

// money columns are decimal(10,2)
var maxMoney = decimal.New(1, 8)

type Listing struct {
	ID            uuid.UUID       `json:"property_id"`
	HostID        uuid.UUID       `json:"host_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Host *User `json:"host,omitempty"`
}

// ListingUpdate holds the mutable listing fields; nil means unchanged.
type ListingUpdate struct {
	Name          *string
	Description   *string
	Location      *string
	PricePerNight *decimal.Decimal
}

func NewListing(hostID uuid.UUID, name, description, location string, pricePerNight decimal.Decimal, now time.Time) (*Listing, error) {
	l := &Listing{
		ID:            uuid.New(),
		HostID:        hostID,
		Name:          name,
		Description:   description,
		Location:      location,
		PricePerNight: pricePerNight,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Listing) Validate() error {
	fe := fieldErrors{}
	if l.HostID == uuid.Nil {
		fe.add("host_id", "This field is required.")
	}
	requireText(fe, "name", l.Name, MaxNameLength)
	requireText(fe, "description", l.Description, 0)
	requireText(fe, "location", l.Location, MaxLocationLength)
	checkMoney(fe, "price_per_night", l.PricePerNight, "Price per night must be greater than zero.")
	if l.UpdatedAt.Before(l.CreatedAt) {
		fe.add("updated_at", "Must not be earlier than created_at.")
	}
	return fe.err()
}

// Apply validates the update against a copy and commits it only on success.
// UpdatedAt strictly increases on every successful call.
func (l *Listing) Apply(u ListingUpdate, now time.Time) error {
	next := *l
	if u.Name != nil {
		next.Name = *u.Name
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.Location != nil {
		next.Location = *u.Location
	}
	if u.PricePerNight != nil {
		next.PricePerNight = *u.PricePerNight
	}
	next.UpdatedAt = advance(l.UpdatedAt, now)

	if err := next.Validate(); err != nil {
		return err
	}
	*l = next
	return nil
}

// NightsCost is rate × nights, rounded to cents.
func (l *Listing) NightsCost(nights int) decimal.Decimal {
	return l.PricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(MoneyPlaces)
}

// FormatMoney renders an amount the way decimal(10,2) columns hold it.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

func advance(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

func requireText(fe fieldErrors, field, v string, max int) {
	if strings.TrimSpace(v) == "" {
		fe.add(field, "This field may not be blank.")
		return
	}
	if max > 0 && utf8.RuneCountInString(v) > max {
		fe.add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

func checkMoney(fe fieldErrors, field string, v decimal.Decimal, positiveMsg string) {
	switch {
	case !v.IsPositive():
		fe.add(field, positiveMsg)
	case !v.Equal(v.Round(MoneyPlaces)):
		fe.add(field, "Ensure that there are no more than 2 decimal places.")
	case v.GreaterThanOrEqual(maxMoney):
		fe.add(field, "Ensure that there are no more than 10 digits in total.")
	}
}
