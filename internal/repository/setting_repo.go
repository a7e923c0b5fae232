package repository

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxSettingRepository interface {
	FindAll() ([]model.TaxSetting, error)
	FindByID(id uuid.UUID) (*model.TaxSetting, error)
	FindByKey(key string) (*model.TaxSetting, error)
	// FindActiveOrdered returns active settings in application order:
	// before-service group first, each group sorted by setting key.
	FindActiveOrdered() ([]model.TaxSetting, error)
	Save(setting *model.TaxSetting) error
}

type taxSettingRepo struct {
	db *gorm.DB
}

func NewTaxSettingRepo(db *gorm.DB) TaxSettingRepository {
	return &taxSettingRepo{db}
}

func (r *taxSettingRepo) FindAll() ([]model.TaxSetting, error) {
	var settings []model.TaxSetting
	err := r.db.Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

func (r *taxSettingRepo) FindByID(id uuid.UUID) (*model.TaxSetting, error) {
	var setting model.TaxSetting
	if err := r.db.First(&setting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *taxSettingRepo) FindByKey(key string) (*model.TaxSetting, error) {
	var setting model.TaxSetting
	if err := r.db.First(&setting, "setting_key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *taxSettingRepo) FindActiveOrdered() ([]model.TaxSetting, error) {
	var settings []model.TaxSetting
	err := r.db.
		Where("is_active = ?", true).
		Order("apply_before_service DESC, setting_key ASC").
		Find(&settings).Error
	return settings, err
}

func (r *taxSettingRepo) Save(setting *model.TaxSetting) error {
	return r.db.Save(setting).Error
}

// RoundingSettingRepository enforces the singleton contract: at most one row
// exists, and updates always target that row.
type RoundingSettingRepository interface {
	// Get returns the singleton row, or (nil, nil) when none exists yet.
	Get() (*model.RoundingSetting, error)
	Save(setting *model.RoundingSetting) error
}

type roundingSettingRepo struct {
	db *gorm.DB
}

func NewRoundingSettingRepo(db *gorm.DB) RoundingSettingRepository {
	return &roundingSettingRepo{db}
}

func (r *roundingSettingRepo) Get() (*model.RoundingSetting, error) {
	var setting model.RoundingSetting
	err := r.db.Order("updated_at DESC").First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *roundingSettingRepo) Save(setting *model.RoundingSetting) error {
	return r.db.Save(setting).Error
}
