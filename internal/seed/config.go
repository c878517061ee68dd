package seed

import (
	"travelapp/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UserSpec struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      domain.UserRole
}

type ListingSpec struct {
	Name        string
	Description string
	Location    string
}

type StatusWeight struct {
	Status domain.BookingStatus
	Weight int
}

// Config holds the shape of a seeding run. None of it is exposed on the CLI.
type Config struct {
	Users        []UserSpec
	Password     string
	PasswordCost int

	Listings     []ListingSpec
	ListingCount int
	PriceMin     decimal.Decimal
	PriceMax     decimal.Decimal

	BookingCount int
	// start dates fall StartOffsetMin..StartOffsetMax days after today
	StartOffsetMin int
	StartOffsetMax int
	NightsMin      int
	NightsMax      int
	StatusWeights  []StatusWeight

	ReviewedListings     int
	MaxReviewsPerListing int
	RatingMin            int
	RatingMax            int
	Comments             []string
}

func DefaultConfig() Config {
	return Config{
		Users: []UserSpec{
			{"john_host", "john@example.com", "John", "Doe", domain.RoleHost},
			{"jane_host", "jane@example.com", "Jane", "Smith", domain.RoleHost},
			{"mike_guest", "mike@example.com", "Mike", "Johnson", domain.RoleGuest},
			{"sarah_guest", "sarah@example.com", "Sarah", "Williams", domain.RoleGuest},
			{"david_host", "david@example.com", "David", "Brown", domain.RoleHost},
			{"emma_guest", "emma@example.com", "Emma", "Davis", domain.RoleGuest},
		},
		Password:     "password123",
		PasswordCost: bcrypt.DefaultCost,

		Listings: []ListingSpec{
			{"Cozy Beach House", "Beautiful beachfront property with stunning ocean views. Perfect for families and couples seeking a relaxing getaway.", "Malibu, California"},
			{"Mountain Retreat Cabin", "Secluded cabin in the mountains with hiking trails nearby. Ideal for nature lovers and adventure seekers.", "Aspen, Colorado"},
			{"Downtown Luxury Apartment", "Modern apartment in the heart of the city with all amenities. Walking distance to restaurants and entertainment.", "New York, NY"},
			{"Countryside Villa", "Spacious villa surrounded by vineyards and rolling hills. Features a private pool and outdoor dining area.", "Tuscany, Italy"},
			{"Tropical Paradise Bungalow", "Charming bungalow steps from pristine beaches. Includes hammocks, an outdoor shower and a tropical garden.", "Bali, Indonesia"},
			{"Historic City Loft", "Renovated loft in a historic building with exposed brick and high ceilings. Perfect for urban explorers.", "Boston, Massachusetts"},
			{"Lakefront Cottage", "Peaceful cottage on a private lake with a dock and kayaks included. Great for fishing and water activities.", "Lake Tahoe, Nevada"},
			{"Desert Oasis Villa", "Modern villa with an infinity pool overlooking the desert landscape. Solar-powered and eco-friendly.", "Scottsdale, Arizona"},
		},
		ListingCount: 8,
		PriceMin:     decimal.NewFromInt(80),
		PriceMax:     decimal.NewFromInt(500),

		BookingCount:   15,
		StartOffsetMin: 1,
		StartOffsetMax: 60,
		NightsMin:      2,
		NightsMax:      14,
		StatusWeights: []StatusWeight{
			{domain.BookingPending, 1},
			{domain.BookingConfirmed, 3},
			{domain.BookingCanceled, 1},
		},

		ReviewedListings:     6,
		MaxReviewsPerListing: 3,
		RatingMin:            3,
		RatingMax:            5,
		Comments: []string{
			"Amazing place! Highly recommended for anyone visiting the area.",
			"Great location and very clean. The host was very responsive.",
			"Beautiful property with stunning views. Would definitely stay again.",
			"Good value for money. Some minor issues but overall satisfied.",
			"Exactly as described. Perfect for our family vacation.",
			"Outstanding experience. The property exceeded our expectations.",
			"Nice place but could use some updates. Still enjoyable though.",
			"Wonderful stay! The amenities were top-notch.",
			"Very comfortable and well-maintained. Great communication with host.",
			"Decent property but not quite what we expected from the photos.",
		},
	}
}

func (c Config) validate() error {
	fields := map[string]string{}
	if len(c.Users) == 0 {
		fields["users"] = "At least one user is required."
	}
	if len(c.Listings) == 0 {
		fields["listings"] = "The listing catalog may not be empty."
	}
	if !c.PriceMin.IsPositive() || c.PriceMax.LessThan(c.PriceMin) ||
		!c.PriceMin.Equal(c.PriceMin.Round(domain.MoneyPlaces)) || !c.PriceMax.Equal(c.PriceMax.Round(domain.MoneyPlaces)) {
		fields["price"] = "Price range must satisfy 0 < min <= max, in whole cents."
	}
	if c.StartOffsetMin < 1 || c.StartOffsetMax < c.StartOffsetMin {
		fields["start_offset"] = "Start offsets must satisfy 1 <= min <= max."
	}
	if c.NightsMin < 1 || c.NightsMax < c.NightsMin {
		fields["nights"] = "Nights must satisfy 1 <= min <= max."
	}
	total := 0
	for _, w := range c.StatusWeights {
		if !w.Status.Valid() || w.Weight < 0 {
			fields["status_weights"] = "Weights must be non-negative and name valid statuses."
		}
		total += w.Weight
	}
	if total == 0 {
		fields["status_weights"] = "Weights must be non-negative and name valid statuses."
	}
	if c.RatingMin < domain.MinRating || c.RatingMax > domain.MaxRating || c.RatingMax < c.RatingMin {
		fields["rating"] = "Rating bounds must lie within 1..5."
	}
	if c.ReviewedListings > 0 && (len(c.Comments) == 0 || c.MaxReviewsPerListing < 1) {
		fields["comments"] = "Reviews need at least one comment and one review per listing."
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
