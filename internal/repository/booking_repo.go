package repository

import (
	"context"
	"time"

	"travelapp/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         uuid.UUID       `gorm:"column:booking_id;type:uuid;primaryKey"`
	ListingID  uuid.UUID       `gorm:"column:property_id;type:uuid;not null;index:idx_booking_property"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_booking_user"`
	StartDate  datatypes.Date  `gorm:"column:start_date;not null"`
	EndDate    datatypes.Date  `gorm:"column:end_date;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null;check:total_price > 0"`
	Status     string          `gorm:"column:status;size:10;not null;default:pending"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime:false"`

	Listing *listingModel `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:CASCADE"`
	User    *userModel    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (bookingModel) TableName() string { return "booking" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:         m.ID,
		ListingID:  m.ListingID,
		UserID:     m.UserID,
		StartDate:  domain.DateOnly(time.Time(m.StartDate)),
		EndDate:    domain.DateOnly(time.Time(m.EndDate)),
		TotalPrice: m.TotalPrice,
		Status:     domain.BookingStatus(m.Status),
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.Listing != nil {
		b.Listing = toDomainListing(*m.Listing)
	}
	if m.User != nil {
		b.User = toDomainUser(*m.User)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		ListingID:  b.ListingID,
		UserID:     b.UserID,
		StartDate:  datatypes.Date(b.StartDate),
		EndDate:    datatypes.Date(b.EndDate),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return storeErr("create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("booking_id = ?", b.ID).
		Updates(map[string]any{
			"start_date":  m.StartDate,
			"end_date":    m.EndDate,
			"total_price": m.TotalPrice,
			"status":      m.Status,
		})
	if res.Error != nil {
		return storeErr("update booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads the booking with its listing (and host) and guest.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).
		Preload("Listing.Host").
		Preload("User").
		First(&m, "booking_id = ?", id).Error
	if err != nil {
		return nil, storeErr("get booking", err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return r.list(r.db.WithContext(ctx), limit, offset)
}

func (r *BookingRepository) ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	return r.list(r.db.WithContext(ctx).Where("property_id = ?", listingID), limit, offset)
}

func (r *BookingRepository) list(q *gorm.DB, limit, offset int) ([]domain.Booking, error) {
	limit, offset = clampPage(limit, offset)

	var rows []bookingModel
	err := q.
		Preload("Listing").
		Preload("User").
		Order("start_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list bookings", err)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&n).Error
	return n, storeErr("count bookings", err)
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("booking_id = ?", id).Delete(&bookingModel{})
	if res.Error != nil {
		return storeErr("delete booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&bookingModel{})
	return res.RowsAffected, storeErr("clear bookings", res.Error)
}
