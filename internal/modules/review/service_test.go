package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelapp/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, listingID, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockListingGate struct {
	mock.Mock
}

func (m *MockListingGate) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockUserGate struct {
	mock.Mock
}

func (m *MockUserGate) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var testNow = time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)

type fixture struct {
	reviews  *MockReviewRepository
	listings *MockListingGate
	users    *MockUserGate
	service  *Service
	listing  *domain.Listing
	user     *domain.User
}

// newFixture wires mocks in which both the listing and the user exist.
func newFixture() *fixture {
	f := &fixture{
		reviews:  new(MockReviewRepository),
		listings: new(MockListingGate),
		users:    new(MockUserGate),
		listing:  &domain.Listing{ID: uuid.New(), Name: "Tropical Paradise Bungalow"},
		user:     &domain.User{ID: uuid.New(), Username: "emma_guest"},
	}
	f.listings.On("GetByID", mock.Anything, f.listing.ID).Return(f.listing, nil)
	f.users.On("GetByID", mock.Anything, f.user.ID).Return(f.user, nil)
	f.service = NewService(f.reviews, f.listings, f.users)
	f.service.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) request(rating int) CreateReviewRequest {
	return CreateReviewRequest{PropertyID: f.listing.ID, UserID: f.user.ID, Rating: rating, Comment: "Amazing place! Would definitely stay again."}
}

func TestService_Create_Success(t *testing.T) {
	f := newFixture()
	f.reviews.On("ExistsByUserAndListing", mock.Anything, f.user.ID, f.listing.ID).Return(false, nil)
	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	rv, err := f.service.Create(context.Background(), f.request(5))

	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, testNow, rv.CreatedAt)
	assert.Equal(t, f.listing, rv.Listing)
	f.reviews.AssertExpectations(t)
}

func TestService_Create_RatingOutOfRange(t *testing.T) {
	for _, rating := range []int{0, 6} {
		f := newFixture()

		_, err := f.service.Create(context.Background(), f.request(rating))

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "Rating must be between 1 and 5.", domain.FieldErrors(err)["rating"])
		f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestService_Create_DuplicateCaughtByPreCheck(t *testing.T) {
	f := newFixture()
	f.reviews.On("ExistsByUserAndListing", mock.Anything, f.user.ID, f.listing.ID).Return(true, nil)

	_, err := f.service.Create(context.Background(), f.request(4))

	assert.ErrorIs(t, err, domain.ErrUniqueness)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, domain.FieldErrors(err), "non_field_errors")
	f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateCaughtByStore(t *testing.T) {
	f := newFixture()
	f.reviews.On("ExistsByUserAndListing", mock.Anything, f.user.ID, f.listing.ID).Return(false, nil)
	f.reviews.On("Create", mock.Anything, mock.Anything).
		Return(&domain.StoreError{Op: "create review", Err: errors.New("UNIQUE constraint failed: review.property_id, review.user_id")})

	_, err := f.service.Create(context.Background(), f.request(4))

	assert.ErrorIs(t, err, domain.ErrUniqueness)
}

func TestService_Create_UnknownListing(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.listings.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrNotFound)
	req := f.request(4)
	req.PropertyID = missing

	_, err := f.service.Create(context.Background(), req)

	var refErr *domain.ReferentialError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "property_id", refErr.Field)
}

func TestService_Create_StoreFailurePassesThrough(t *testing.T) {
	f := newFixture()
	boom := &domain.StoreError{Op: "create review", Err: errors.New("disk I/O error")}
	f.reviews.On("ExistsByUserAndListing", mock.Anything, f.user.ID, f.listing.ID).Return(false, nil)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(boom)

	_, err := f.service.Create(context.Background(), f.request(4))

	assert.ErrorIs(t, err, domain.ErrStore)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestService_Update_Rating(t *testing.T) {
	f := newFixture()
	existing, err := domain.NewReview(f.listing.ID, f.user.ID, 3, "Fine", testNow)
	require.NoError(t, err)
	f.reviews.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.reviews.On("Update", mock.Anything, existing).Return(nil)

	five := 5
	rv, err := f.service.Update(context.Background(), existing.ID, UpdateReviewRequest{Rating: &five})

	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, "Fine", rv.Comment)
}

func TestService_Update_InvalidRating(t *testing.T) {
	f := newFixture()
	existing, err := domain.NewReview(f.listing.ID, f.user.ID, 3, "Fine", testNow)
	require.NoError(t, err)
	f.reviews.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	zero := 0
	_, err = f.service.Update(context.Background(), existing.ID, UpdateReviewRequest{Rating: &zero})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 3, existing.Rating)
	f.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
