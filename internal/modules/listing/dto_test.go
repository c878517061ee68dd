package listing

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

func sampleListing() *domain.Listing {
	host := &domain.User{ID: uuid.New(), Username: "jane_host", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}
	return &domain.Listing{
		ID:            uuid.New(),
		HostID:        host.ID,
		Name:          "Downtown Luxury Apartment",
		Description:   "High floor, city views",
		Location:      "New York, New York",
		PricePerNight: decimal.RequireFromString("300.5"),
		CreatedAt:     time.Date(2025, 5, 1, 8, 0, 0, 123000, time.UTC),
		UpdatedAt:     time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC),
		Host:          host,
	}
}

func TestListingDetail_RoundTrip(t *testing.T) {
	l := sampleListing()

	data, err := json.Marshal(NewListingDetail(l))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "300.50", raw["price_per_night"])
	assert.Equal(t, "jane_host", raw["host"].(map[string]any)["username"])

	var d ListingDetail
	require.NoError(t, json.Unmarshal(data, &d))
	got, err := d.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, l.HostID, got.HostID)
	assert.Equal(t, l.Name, got.Name)
	assert.Equal(t, l.Description, got.Description)
	assert.Equal(t, l.Location, got.Location)
	assert.True(t, l.PricePerNight.Equal(got.PricePerNight))
	assert.True(t, l.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, l.UpdatedAt.Equal(got.UpdatedAt))
	assert.Equal(t, *l.Host, *got.Host)
}

func TestListingListItem_RoundTrip(t *testing.T) {
	l := sampleListing()

	data, err := json.Marshal(NewListingListItem(l))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t,
		[]string{"property_id", "host_id", "host_name", "name", "location", "price_per_night"},
		keys(raw))

	var item ListingListItem
	require.NoError(t, json.Unmarshal(data, &item))
	got, err := item.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, l.HostID, got.HostID)
	assert.Equal(t, "jane_host", got.Host.Username)
	assert.True(t, l.PricePerNight.Equal(got.PricePerNight))
}

func TestNewListingDetail_HostNotLoaded(t *testing.T) {
	l := sampleListing()
	l.Host = nil

	d := NewListingDetail(l)
	assert.Equal(t, l.HostID, d.Host.ID)
	assert.Empty(t, d.Host.Username)
}

func TestDecodeCreateListing_CollectsAllFieldErrors(t *testing.T) {
	_, err := DecodeCreateListing([]byte(`{"host_id":"` + uuid.NewString() + `","name":"","description":"d","location":"l","price_per_night":"0","wifi":true}`))

	require.Error(t, err)
	fields := domain.FieldErrors(err)
	assert.Equal(t, "Unknown field.", fields["wifi"])
	assert.Equal(t, "This field may not be blank.", fields["name"])
	assert.Equal(t, "Price per night must be greater than zero.", fields["price_per_night"])
}

func TestDecodeCreateListing_BadTypes(t *testing.T) {
	_, err := DecodeCreateListing([]byte(`{"host_id":"nope","name":"n","description":"d","location":"l","price_per_night":"cheap"}`))

	fields := domain.FieldErrors(err)
	assert.Equal(t, "Must be a valid UUID.", fields["host_id"])
	assert.Equal(t, "A valid number is required.", fields["price_per_night"])
}

func TestDecodeCreateListing_Valid(t *testing.T) {
	hostID := uuid.New()
	req, err := DecodeCreateListing([]byte(`{"host_id":"` + hostID.String() + `","name":"Cabin","description":"Quiet","location":"Aspen","price_per_night":180}`))

	require.NoError(t, err)
	assert.Equal(t, hostID, req.HostID)
	assert.True(t, req.PricePerNight.Equal(decimal.NewFromInt(180)))
}

func TestDecodeUpdateListing_BlankName(t *testing.T) {
	_, err := DecodeUpdateListing([]byte(`{"name":"   "}`))
	assert.Equal(t, "This field may not be blank.", domain.FieldErrors(err)["name"])

	req, err := DecodeUpdateListing([]byte(`{"location":"Tuscany, Italy"}`))
	require.NoError(t, err)
	assert.Nil(t, req.Name)
	assert.Equal(t, "Tuscany, Italy", *req.Location)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
