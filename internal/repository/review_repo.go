package repository

import (
	"context"
	"time"

	"travelapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// One review per (property_id, user_id) is guaranteed by uq_review_property_user.
type reviewModel struct {
	ID        uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey"`
	ListingID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index:idx_review_property;uniqueIndex:uq_review_property_user,priority:1"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_review_user;uniqueIndex:uq_review_property_user,priority:2"`
	Rating    int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"column:comment;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`

	Listing *listingModel `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:CASCADE"`
	User    *userModel    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (reviewModel) TableName() string { return "review" }

// ReviewPair identifies the (user, listing) combination a review is unique on.
type ReviewPair struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
}

func toDomainReview(m reviewModel) *domain.Review {
	rv := &domain.Review{
		ID:        m.ID,
		ListingID: m.ListingID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt.UTC(),
	}
	if m.Listing != nil {
		rv.Listing = toDomainListing(*m.Listing)
	}
	if m.User != nil {
		rv.User = toDomainUser(*m.User)
	}
	return rv
}

func toReviewModel(rv *domain.Review) reviewModel {
	return reviewModel{
		ID:        rv.ID,
		ListingID: rv.ListingID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return storeErr("create review", err)
	}
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	res := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("review_id = ?", rv.ID).
		Updates(map[string]any{
			"rating":  rv.Rating,
			"comment": rv.Comment,
		})
	if res.Error != nil {
		return storeErr("update review", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var m reviewModel
	err := r.db.WithContext(ctx).
		Preload("Listing.Host").
		Preload("User").
		First(&m, "review_id = ?", id).Error
	if err != nil {
		return nil, storeErr("get review", err)
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	return r.list(r.db.WithContext(ctx), limit, offset)
}

func (r *ReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	return r.list(r.db.WithContext(ctx).Where("property_id = ?", listingID), limit, offset)
}

func (r *ReviewRepository) list(q *gorm.DB, limit, offset int) ([]domain.Review, error) {
	limit, offset = clampPage(limit, offset)

	var rows []reviewModel
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list reviews", err)
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("user_id = ? AND property_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, storeErr("check review", err)
}

// Pairs returns every (user, listing) combination that already has a review.
func (r *ReviewRepository) Pairs(ctx context.Context) (map[ReviewPair]bool, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Select("user_id", "property_id").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list review pairs", err)
	}

	out := make(map[ReviewPair]bool, len(rows))
	for _, m := range rows {
		out[ReviewPair{UserID: m.UserID, ListingID: m.ListingID}] = true
	}
	return out, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).Count(&n).Error
	return n, storeErr("count reviews", err)
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("review_id = ?", id).Delete(&reviewModel{})
	if res.Error != nil {
		return storeErr("delete review", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&reviewModel{})
	return res.RowsAffected, storeErr("clear reviews", res.Error)
}
