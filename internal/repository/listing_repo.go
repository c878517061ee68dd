package repository

import (
	"context"
	"time"

	"travelapp/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

type listingModel struct {
	ID            uuid.UUID       `gorm:"column:property_id;type:uuid;primaryKey"`
	HostID        uuid.UUID       `gorm:"column:host_id;type:uuid;not null;index:idx_property_host"`
	Name          string          `gorm:"column:name;size:100;not null"`
	Description   string          `gorm:"column:description;type:text;not null"`
	Location      string          `gorm:"column:location;size:100;not null"`
	PricePerNight decimal.Decimal `gorm:"column:price_per_night;type:decimal(10,2);not null;check:price_per_night > 0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`

	Host *userModel `gorm:"foreignKey:HostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (listingModel) TableName() string { return "property" }

func toDomainListing(m listingModel) *domain.Listing {
	l := &domain.Listing{
		ID:            m.ID,
		HostID:        m.HostID,
		Name:          m.Name,
		Description:   m.Description,
		Location:      m.Location,
		PricePerNight: m.PricePerNight,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
	if m.Host != nil {
		l.Host = toDomainUser(*m.Host)
	}
	return l
}

func toListingModel(l *domain.Listing) listingModel {
	return listingModel{
		ID:            l.ID,
		HostID:        l.HostID,
		Name:          l.Name,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return storeErr("create listing", err)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	res := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("property_id = ?", l.ID).
		Updates(map[string]any{
			"name":            m.Name,
			"description":     m.Description,
			"location":        m.Location,
			"price_per_night": m.PricePerNight,
			"updated_at":      m.UpdatedAt,
		})
	if res.Error != nil {
		return storeErr("update listing", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads the listing with its host.
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var m listingModel
	err := r.db.WithContext(ctx).
		Preload("Host").
		First(&m, "property_id = ?", id).Error
	if err != nil {
		return nil, storeErr("get listing", err)
	}
	return toDomainListing(m), nil
}

func (r *ListingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&listingModel{}).Where("property_id = ?", id).Count(&count).Error
	return count > 0, storeErr("check listing", err)
}

func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]domain.Listing, error) {
	limit, offset = clampPage(limit, offset)

	var rows []listingModel
	err := r.db.WithContext(ctx).
		Preload("Host").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list listings", err)
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}

func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&listingModel{}).Count(&n).Error
	return n, storeErr("count listings", err)
}

// Delete removes the listing together with its bookings and reviews.
func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&reviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("property_id = ?", id).Delete(&listingModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return storeErr("delete listing", err)
}

func (r *ListingRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&listingModel{})
	return res.RowsAffected, storeErr("clear listings", res.Error)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
