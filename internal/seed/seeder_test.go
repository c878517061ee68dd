package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"travelapp/internal/database"
	"travelapp/internal/domain"
	"travelapp/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Connect(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return repository.NewStore(db)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PasswordCost = bcrypt.MinCost
	return cfg
}

func newSeeder(store *repository.Store, cfg Config, seed int64) *Seeder {
	s := New(store, cfg, rand.New(rand.NewSource(seed)))
	s.now = func() time.Time { return fixedNow }
	return s
}

type counts struct {
	users, listings, bookings, reviews int64
}

func countAll(t *testing.T, store *repository.Store) counts {
	t.Helper()
	ctx := context.Background()
	var c counts
	var err error
	c.users, err = store.Users.Count(ctx)
	require.NoError(t, err)
	c.listings, err = store.Listings.Count(ctx)
	require.NoError(t, err)
	c.bookings, err = store.Bookings.Count(ctx)
	require.NoError(t, err)
	c.reviews, err = store.Reviews.Count(ctx)
	require.NoError(t, err)
	return c
}

func TestRun_ClearTwiceYieldsSameShape(t *testing.T) {
	store := setupStore(t)
	s := newSeeder(store, testConfig(), 1)

	for run := 1; run <= 2; run++ {
		sum, err := s.Run(context.Background(), Options{Clear: true})
		require.NoError(t, err, "run %d", run)

		assert.True(t, sum.Cleared)
		assert.Equal(t, 6, sum.Users)
		assert.Equal(t, 6, sum.UsersCreated)
		assert.Equal(t, 8, sum.Listings)
		assert.Equal(t, 15, sum.Bookings)
		assert.GreaterOrEqual(t, sum.Reviews, 1)
		assert.LessOrEqual(t, sum.Reviews, 8)

		c := countAll(t, store)
		assert.Equal(t, counts{users: 6, listings: 8, bookings: 15, reviews: int64(sum.Reviews)}, c, "run %d", run)
	}
}

func TestRun_DataObeysInvariants(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	cfg := testConfig()
	_, err := newSeeder(store, cfg, 7).Run(ctx, Options{Clear: true})
	require.NoError(t, err)

	listings, err := store.Listings.List(ctx, 100, 0)
	require.NoError(t, err)
	hostNames := map[string]bool{}
	for _, l := range listings {
		assert.True(t, l.PricePerNight.GreaterThanOrEqual(cfg.PriceMin), l.PricePerNight.String())
		assert.True(t, l.PricePerNight.LessThanOrEqual(cfg.PriceMax), l.PricePerNight.String())
		assert.True(t, l.PricePerNight.Equal(l.PricePerNight.Round(2)))
		require.NotNil(t, l.Host)
		assert.Equal(t, domain.RoleHost, l.Host.Role)
		hostNames[l.Host.Username] = true
	}
	assert.Len(t, hostNames, 3, "hosts are assigned round-robin")

	bookings, err := store.Bookings.List(ctx, 100, 0)
	require.NoError(t, err)
	today := domain.DateOnly(fixedNow)
	for _, b := range bookings {
		assert.True(t, b.StartDate.After(today), "start %s", b.StartDate)
		assert.True(t, b.EndDate.After(b.StartDate))
		nights := b.Nights()
		assert.GreaterOrEqual(t, nights, 2)
		assert.LessOrEqual(t, nights, 14)
		assert.True(t, b.TotalPrice.Equal(b.Listing.NightsCost(nights)), "total %s for %d nights", b.TotalPrice, nights)
		assert.True(t, b.Status.Valid())
		assert.Equal(t, domain.RoleGuest, b.User.Role)
	}

	guests, err := store.Users.ListByRole(ctx, domain.RoleGuest)
	require.NoError(t, err)
	guestIDs := map[string]bool{}
	for _, g := range guests {
		guestIDs[g.ID.String()] = true
	}

	reviews, err := store.Reviews.List(ctx, 100, 0)
	require.NoError(t, err)
	perListing := map[string]int{}
	for _, rv := range reviews {
		assert.GreaterOrEqual(t, rv.Rating, 3)
		assert.LessOrEqual(t, rv.Rating, 5)
		assert.Contains(t, cfg.Comments, rv.Comment)
		assert.True(t, guestIDs[rv.UserID.String()], "reviews are written by guests")
		perListing[rv.ListingID.String()]++
	}
	assert.LessOrEqual(t, len(perListing), 6)
	for _, n := range perListing {
		assert.LessOrEqual(t, n, 3)
	}
}

func TestRun_SameSeedSameData(t *testing.T) {
	a, b := setupStore(t), setupStore(t)

	_, err := newSeeder(a, testConfig(), 42).Run(context.Background(), Options{})
	require.NoError(t, err)
	_, err = newSeeder(b, testConfig(), 42).Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, fingerprint(t, a), fingerprint(t, b))
}

func TestRun_WithoutClearAppendsAndNeverRepeatsPairs(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first, err := newSeeder(store, testConfig(), 3).Run(ctx, Options{})
	require.NoError(t, err)
	second, err := newSeeder(store, testConfig(), 3).Run(ctx, Options{})
	require.NoError(t, err)

	assert.Equal(t, 6, first.UsersCreated)
	assert.Equal(t, 0, second.UsersCreated)
	assert.Equal(t, 6, second.Users)

	c := countAll(t, store)
	assert.Equal(t, int64(6), c.users)
	assert.Equal(t, int64(16), c.listings)
	assert.Equal(t, int64(30), c.bookings)
	assert.Equal(t, int64(first.Reviews+second.Reviews), c.reviews)

	pairs, err := store.Reviews.Pairs(ctx)
	require.NoError(t, err)
	assert.Len(t, pairs, int(c.reviews))
}

func TestRun_ClearKeepsSuperusers(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	admin, err := domain.NewUser("admin", "admin@example.com", "Ada", "Admin", domain.RoleHost, fixedNow)
	require.NoError(t, err)
	admin.IsSuperuser = true
	require.NoError(t, store.Users.Create(ctx, admin))

	_, err = newSeeder(store, testConfig(), 5).Run(ctx, Options{Clear: true})
	require.NoError(t, err)

	_, err = store.Users.GetByUsername(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), countAll(t, store).users)
}

func TestRun_FailureRollsBackWholeRun(t *testing.T) {
	store := setupStore(t)
	cfg := testConfig()
	cfg.Listings = append([]ListingSpec(nil), cfg.Listings...)
	cfg.Listings[3].Location = ""

	_, err := newSeeder(store, cfg, 9).Run(context.Background(), Options{Clear: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed listings")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, counts{}, countAll(t, store))
}

func TestRun_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.StartOffsetMin = 0

	_, err := newSeeder(setupStore(t), cfg, 1).Run(context.Background(), Options{})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, domain.FieldErrors(err), "start_offset")
}

func TestStatus_FollowsWeights(t *testing.T) {
	cfg := testConfig()
	cfg.StatusWeights = []StatusWeight{{domain.BookingPending, 0}, {domain.BookingConfirmed, 1}, {domain.BookingCanceled, 0}}
	s := newSeeder(nil, cfg, 11)

	for i := 0; i < 50; i++ {
		assert.Equal(t, domain.BookingConfirmed, s.status())
	}
}

func TestPrice_WholeCentsWithinRange(t *testing.T) {
	cfg := testConfig()
	cfg.PriceMin = decimal.RequireFromString("99.99")
	cfg.PriceMax = decimal.RequireFromString("100.01")
	s := newSeeder(nil, cfg, 13)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p := s.price()
		seen[p.StringFixed(2)] = true
	}
	assert.Equal(t, map[string]bool{"99.99": true, "100.00": true, "100.01": true}, seen)
}

func fingerprint(t *testing.T, store *repository.Store) []string {
	t.Helper()
	ctx := context.Background()
	var out []string

	listings, err := store.Listings.List(ctx, 100, 0)
	require.NoError(t, err)
	names := map[string]string{}
	for _, l := range listings {
		names[l.ID.String()] = l.Name
		out = append(out, fmt.Sprintf("L %s %s %s", l.Name, l.Host.Username, domain.FormatMoney(l.PricePerNight)))
	}
	users := map[string]string{}
	for _, role := range domain.ValidUserRoles() {
		us, err := store.Users.ListByRole(ctx, role)
		require.NoError(t, err)
		for _, u := range us {
			users[u.ID.String()] = u.Username
		}
	}
	bookings, err := store.Bookings.List(ctx, 100, 0)
	require.NoError(t, err)
	for _, b := range bookings {
		out = append(out, fmt.Sprintf("B %s %s %s %s %s %s", b.Listing.Name, b.User.Username,
			b.StartDate.Format(domain.DateLayout), b.EndDate.Format(domain.DateLayout), b.Status, domain.FormatMoney(b.TotalPrice)))
	}
	reviews, err := store.Reviews.List(ctx, 100, 0)
	require.NoError(t, err)
	for _, rv := range reviews {
		out = append(out, fmt.Sprintf("R %s %s %d %s", names[rv.ListingID.String()], users[rv.UserID.String()], rv.Rating, rv.Comment))
	}

	sort.Strings(out)
	return out
}
