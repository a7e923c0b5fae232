package repository

import (
	"strings"
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	Update(discount *model.Discount) error
	FindAll() ([]model.Discount, error)
	FindByID(id uuid.UUID) (*model.Discount, error)
	// FindActiveByCode matches case-insensitively against the upper-cased
	// stored code and only returns active definitions.
	FindActiveByCode(code string) (*model.Discount, error)
	FindUsable(now time.Time) ([]model.Discount, error)
	// IncrementUsage bumps usage_count inside tx, guarded so the count can
	// never pass usage_limit. Returns gorm.ErrRecordNotFound when the guard
	// rejects the update.
	IncrementUsage(tx *gorm.DB, id uuid.UUID) error
}

type discountRepo struct {
	db *gorm.DB
}

func NewDiscountRepo(db *gorm.DB) DiscountRepository {
	return &discountRepo{db}
}

func (r *discountRepo) Create(discount *model.Discount) error {
	discount.Code = strings.ToUpper(discount.Code)
	return r.db.Create(discount).Error
}

func (r *discountRepo) Update(discount *model.Discount) error {
	discount.Code = strings.ToUpper(discount.Code)
	return r.db.Save(discount).Error
}

func (r *discountRepo) FindAll() ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.Order("created_at DESC").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) FindByID(id uuid.UUID) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.First(&discount, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepo) FindActiveByCode(code string) (*model.Discount, error) {
	var discount model.Discount
	err := r.db.
		Where("code = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepo) FindUsable(now time.Time) ([]model.Discount, error) {
	var discounts []model.Discount
	day := now.Format("2006-01-02")
	err := r.db.
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Where("usage_limit IS NULL OR usage_count < usage_limit").
		Order("created_at DESC").
		Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) IncrementUsage(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Model(&model.Discount{}).
		Where("id = ?", id).
		Where("usage_limit IS NULL OR usage_count < usage_limit").
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
