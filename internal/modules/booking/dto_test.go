package booking

import (
	"encoding/json"
	"testing"
	"time"

	"travelapp/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() *domain.Booking {
	host := &domain.User{ID: uuid.New(), Username: "david_host"}
	guest := &domain.User{ID: uuid.New(), Username: "sarah_guest", Email: "sarah@example.com", FirstName: "Sarah", LastName: "Wilson"}
	l := &domain.Listing{
		ID: uuid.New(), HostID: host.ID, Name: "Desert Oasis Villa", Description: "Pool and mountain views",
		Location: "Scottsdale, Arizona", PricePerNight: decimal.NewFromInt(350),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Host: host,
	}
	return &domain.Booking{
		ID:         uuid.New(),
		ListingID:  l.ID,
		UserID:     guest.ID,
		StartDate:  time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		TotalPrice: decimal.NewFromInt(1400),
		Status:     domain.BookingConfirmed,
		CreatedAt:  time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC),
		Listing:    l,
		User:       guest,
	}
}

func TestBookingDetail_RoundTrip(t *testing.T) {
	b := sampleBooking()

	data, err := json.Marshal(NewBookingDetail(b))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2025-07-10", raw["start_date"])
	assert.Equal(t, "1400.00", raw["total_price"])
	assert.Equal(t, "Desert Oasis Villa", raw["property"].(map[string]any)["name"])

	var d BookingDetail
	require.NoError(t, json.Unmarshal(data, &d))
	got, err := d.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.ListingID, got.ListingID)
	assert.Equal(t, b.UserID, got.UserID)
	assert.Equal(t, b.StartDate, got.StartDate)
	assert.Equal(t, b.EndDate, got.EndDate)
	assert.True(t, b.TotalPrice.Equal(got.TotalPrice))
	assert.Equal(t, b.Status, got.Status)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "Desert Oasis Villa", got.Listing.Name)
	assert.Equal(t, *b.User, *got.User)
}

func TestBookingListItem_RoundTrip(t *testing.T) {
	b := sampleBooking()

	data, err := json.Marshal(NewBookingListItem(b))
	require.NoError(t, err)

	var item BookingListItem
	require.NoError(t, json.Unmarshal(data, &item))
	assert.Equal(t, "Desert Oasis Villa", item.PropertyName)
	assert.Equal(t, "sarah_guest", item.UserName)

	got, err := item.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.ListingID, got.ListingID)
	assert.Equal(t, b.StartDate, got.StartDate)
	assert.Equal(t, b.EndDate, got.EndDate)
	assert.True(t, b.TotalPrice.Equal(got.TotalPrice))
	assert.Equal(t, b.Status, got.Status)
}

func TestBookingDetail_ToDomain_BadDate(t *testing.T) {
	d := NewBookingDetail(sampleBooking())
	d.StartDate = "10/07/2025"

	_, err := d.ToDomain()
	assert.Contains(t, domain.FieldErrors(err), "start_date")
}

func TestDecodeCreateBooking_Errors(t *testing.T) {
	_, err := DecodeCreateBooking([]byte(`{"property_id":"` + uuid.NewString() + `","user_id":"` + uuid.NewString() +
		`","start_date":"2999-06-01","end_date":"2999-05-30","total_price":"100","status":"done"}`))

	fields := domain.FieldErrors(err)
	assert.Equal(t, "End date must be after start date.", fields["end_date"])
	assert.Equal(t, `"done" is not a valid choice.`, fields["status"])
}

func TestDecodeCreateBooking_DateFormat(t *testing.T) {
	_, err := DecodeCreateBooking([]byte(`{"property_id":"` + uuid.NewString() + `","user_id":"` + uuid.NewString() +
		`","start_date":"June 1","end_date":"2999-06-04","total_price":"100"}`))

	assert.Contains(t, domain.FieldErrors(err)["start_date"], "YYYY-MM-DD")
}

func TestDecodeUpdateBooking(t *testing.T) {
	req, err := DecodeUpdateBooking([]byte(`{"status":"canceled"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, *req.Status)

	_, err = DecodeUpdateBooking([]byte(`{"status":"archived"}`))
	assert.Contains(t, domain.FieldErrors(err), "status")
}
