package repository

import (
	"context"
	"strings"
	"time"

	"travelapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username     string    `gorm:"column:username;size:150;not null;uniqueIndex:idx_users_username"`
	Email        string    `gorm:"column:email;size:254"`
	FirstName    string    `gorm:"column:first_name;size:150"`
	LastName     string    `gorm:"column:last_name;size:150"`
	Role         string    `gorm:"column:role;size:10;not null"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsSuperuser  bool      `gorm:"column:is_superuser;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         domain.UserRole(m.Role),
		PasswordHash: m.PasswordHash,
		IsSuperuser:  m.IsSuperuser,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		IsSuperuser:  u.IsSuperuser,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return storeErr("create user", err)
	}
	*u = *toDomainUser(m)
	return nil
}

// GetOrCreate returns the user with u.Username, inserting u when none exists.
// The bool reports whether a row was inserted.
func (r *UserRepository) GetOrCreate(ctx context.Context, u *domain.User) (*domain.User, bool, error) {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&m)
	if tx.Error != nil {
		return nil, false, storeErr("create user", tx.Error)
	}
	if tx.RowsAffected == 1 {
		return toDomainUser(m), true, nil
	}

	existing, err := r.GetByUsername(ctx, u.Username)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, storeErr("get user", err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, storeErr("get user", err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, storeErr("check user", err)
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("username ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list users", err)
	}
	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Count(&n).Error
	return n, storeErr("count users", err)
}

// Delete removes the user, the listings they host with those listings'
// bookings and reviews, and the bookings and reviews they made elsewhere.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hosted := tx.Model(&listingModel{}).Select("property_id").Where("host_id = ?", id)

		if err := tx.Where("user_id = ? OR property_id IN (?)", id, hosted).Delete(&reviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR property_id IN (?)", id, hosted).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("host_id = ?", id).Delete(&listingModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&userModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return storeErr("delete user", err)
}

// DeleteNonSuperusers is the user step of a seed clear; callers remove
// reviews, bookings and listings first.
func (r *UserRepository) DeleteNonSuperusers(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("is_superuser = ?", false).Delete(&userModel{})
	return res.RowsAffected, storeErr("clear users", res.Error)
}
