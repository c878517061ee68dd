package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	Clear bool
}

// Summary reports what a run did. Users counts every catalog user in play,
// UsersCreated only the ones inserted by this run.
type Summary struct {
	Cleared      bool
	Users        int
	UsersCreated int
	Listings     int
	Bookings     int
	Reviews      int
	SkippedPairs int
}

type Seeder struct {
	store *repository.Store
	cfg   Config
	rng   *rand.Rand
	now   func() time.Time
}

func New(store *repository.Store, cfg Config, rng *rand.Rand) *Seeder {
	return &Seeder{
		store: store,
		cfg:   cfg,
		rng:   rng,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Run seeds inside a single transaction: any failure rolls the whole run back
// and is reported with the name of the step that failed.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if err := s.cfg.validate(); err != nil {
		return sum, fmt.Errorf("seed config: %w", err)
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		sum = Summary{}
		now := s.now()

		if opts.Clear {
			if err := clearAll(ctx, tx); err != nil {
				return fmt.Errorf("seed clear: %w", err)
			}
			sum.Cleared = true
		}

		hosts, guests, created, err := s.seedUsers(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		sum.Users = len(hosts) + len(guests)
		sum.UsersCreated = created

		listings, err := s.seedListings(ctx, tx, hosts, now)
		if err != nil {
			return fmt.Errorf("seed listings: %w", err)
		}
		sum.Listings = len(listings)

		sum.Bookings, err = s.seedBookings(ctx, tx, listings, guests, now)
		if err != nil {
			return fmt.Errorf("seed bookings: %w", err)
		}

		sum.Reviews, sum.SkippedPairs, err = s.seedReviews(ctx, tx, listings, guests, now)
		if err != nil {
			return fmt.Errorf("seed reviews: %w", err)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// clearAll deletes in dependency order; superusers survive.
func clearAll(ctx context.Context, tx *repository.Store) error {
	reviews, err := tx.Reviews.DeleteAll(ctx)
	if err != nil {
		return err
	}
	bookings, err := tx.Bookings.DeleteAll(ctx)
	if err != nil {
		return err
	}
	listings, err := tx.Listings.DeleteAll(ctx)
	if err != nil {
		return err
	}
	users, err := tx.Users.DeleteNonSuperusers(ctx)
	if err != nil {
		return err
	}
	log.Printf("seed: cleared reviews=%d bookings=%d listings=%d users=%d", reviews, bookings, listings, users)
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, tx *repository.Store, now time.Time) (hosts, guests []*domain.User, created int, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Password), s.cfg.PasswordCost)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("hash password: %w", err)
	}

	for _, spec := range s.cfg.Users {
		u, err := domain.NewUser(spec.Username, spec.Email, spec.FirstName, spec.LastName, spec.Role, now)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("user %s: %w", spec.Username, err)
		}
		u.PasswordHash = string(hash)

		stored, isNew, err := tx.Users.GetOrCreate(ctx, u)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("user %s: %w", spec.Username, err)
		}
		if isNew {
			created++
		}

		// the stored role wins for users that already existed
		switch stored.Role {
		case domain.RoleHost:
			hosts = append(hosts, stored)
		case domain.RoleGuest:
			guests = append(guests, stored)
		}
	}

	if len(hosts) == 0 || len(guests) == 0 {
		return nil, nil, 0, fmt.Errorf("need at least one host and one guest, got %d hosts and %d guests", len(hosts), len(guests))
	}
	log.Printf("seed: users hosts=%d guests=%d created=%d", len(hosts), len(guests), created)
	return hosts, guests, created, nil
}

func (s *Seeder) seedListings(ctx context.Context, tx *repository.Store, hosts []*domain.User, now time.Time) ([]*domain.Listing, error) {
	listings := make([]*domain.Listing, 0, s.cfg.ListingCount)
	for i := 0; i < s.cfg.ListingCount; i++ {
		spec := s.cfg.Listings[i%len(s.cfg.Listings)]
		host := hosts[i%len(hosts)]

		l, err := domain.NewListing(host.ID, spec.Name, spec.Description, spec.Location, s.price(), now)
		if err != nil {
			return nil, fmt.Errorf("listing %q: %w", spec.Name, err)
		}
		if err := tx.Listings.Create(ctx, l); err != nil {
			return nil, fmt.Errorf("listing %q: %w", spec.Name, err)
		}
		l.Host = host
		listings = append(listings, l)
	}
	log.Printf("seed: listings created=%d", len(listings))
	return listings, nil
}

func (s *Seeder) seedBookings(ctx context.Context, tx *repository.Store, listings []*domain.Listing, guests []*domain.User, now time.Time) (int, error) {
	if len(listings) == 0 {
		return 0, nil
	}
	today := domain.DateOnly(now)

	for i := 0; i < s.cfg.BookingCount; i++ {
		l := listings[s.rng.Intn(len(listings))]
		guest := guests[s.rng.Intn(len(guests))]
		start := today.AddDate(0, 0, s.between(s.cfg.StartOffsetMin, s.cfg.StartOffsetMax))
		nights := s.between(s.cfg.NightsMin, s.cfg.NightsMax)
		end := start.AddDate(0, 0, nights)

		b, err := domain.NewBooking(l.ID, guest.ID, start, end, l.NightsCost(nights), s.status(), now)
		if err != nil {
			return i, fmt.Errorf("booking %d: %w", i+1, err)
		}
		if err := tx.Bookings.Create(ctx, b); err != nil {
			return i, fmt.Errorf("booking %d: %w", i+1, err)
		}
	}
	log.Printf("seed: bookings created=%d", s.cfg.BookingCount)
	return s.cfg.BookingCount, nil
}

// seedReviews never repeats a (user, listing) pair: pairs already in the
// store or drawn earlier in this run are skipped. The total is capped at the
// number of listings created by this run.
func (s *Seeder) seedReviews(ctx context.Context, tx *repository.Store, listings []*domain.Listing, guests []*domain.User, now time.Time) (created, skipped int, err error) {
	used, err := tx.Reviews.Pairs(ctx)
	if err != nil {
		return 0, 0, err
	}

	limit := len(listings)
	picked := s.rng.Perm(len(listings))
	if n := s.cfg.ReviewedListings; n < len(picked) {
		picked = picked[:n]
	}

	for _, li := range picked {
		l := listings[li]
		want := s.between(1, s.cfg.MaxReviewsPerListing)
		order := s.rng.Perm(len(guests))
		if want < len(order) {
			order = order[:want]
		}

		for _, gi := range order {
			if created >= limit {
				break
			}
			guest := guests[gi]
			pair := repository.ReviewPair{UserID: guest.ID, ListingID: l.ID}
			if used[pair] {
				skipped++
				continue
			}

			rating := s.between(s.cfg.RatingMin, s.cfg.RatingMax)
			comment := s.cfg.Comments[s.rng.Intn(len(s.cfg.Comments))]
			rv, err := domain.NewReview(l.ID, guest.ID, rating, comment, now)
			if err != nil {
				return created, skipped, fmt.Errorf("review of %q by %s: %w", l.Name, guest.Username, err)
			}
			if err := tx.Reviews.Create(ctx, rv); err != nil {
				if repository.IsUniqueViolation(err) {
					return created, skipped, fmt.Errorf("review of %q by %s: %w", l.Name, guest.Username, domain.DuplicateReview())
				}
				return created, skipped, fmt.Errorf("review of %q by %s: %w", l.Name, guest.Username, err)
			}
			used[pair] = true
			created++
		}
	}
	log.Printf("seed: reviews created=%d skipped_pairs=%d", created, skipped)
	return created, skipped, nil
}

// between draws uniformly from [lo, hi].
func (s *Seeder) between(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// price draws a whole number of cents uniformly from [PriceMin, PriceMax].
func (s *Seeder) price() decimal.Decimal {
	lo := s.cfg.PriceMin.Shift(domain.MoneyPlaces).Ceil().IntPart()
	hi := s.cfg.PriceMax.Shift(domain.MoneyPlaces).Floor().IntPart()
	cents := lo + s.rng.Int63n(hi-lo+1)
	return decimal.New(cents, -domain.MoneyPlaces)
}

func (s *Seeder) status() domain.BookingStatus {
	total := 0
	for _, w := range s.cfg.StatusWeights {
		total += w.Weight
	}
	r := s.rng.Intn(total)
	for _, w := range s.cfg.StatusWeights {
		if r < w.Weight {
			return w.Status
		}
		r -= w.Weight
	}
	return domain.BookingPending
}
