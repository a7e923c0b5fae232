package service

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/pricing"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"

	"gorm.io/gorm"
)

var ErrTaxSettingNotFound = errors.New("tax setting not found")

// TaxSettingUpdate carries the editable fields of one charge; nil means keep.
type TaxSettingUpdate struct {
	Name               *string  `json:"name"`
	Percentage         *float64 `json:"percentage"`
	Description        *string  `json:"description"`
	ApplyBeforeService *bool    `json:"apply_before_service"`
	IsActive           *bool    `json:"is_active"`
}

// RoundingSettingUpdate carries the editable fields of the rounding policy.
type RoundingSettingUpdate struct {
	IsActive          *bool                 `json:"is_active"`
	RoundingMethod    *model.RoundingMethod `json:"rounding_method"`
	RoundingIncrement *int64                `json:"rounding_increment"`
	Description       *string               `json:"description"`
}

// TotalPreview shows the full pipeline applied to a discounted subtotal, for
// the POS display before the sale is committed.
type TotalPreview struct {
	Subtotal       int64 `json:"subtotal"`
	TaxAmount      int64 `json:"tax_amount"`
	ServiceAmount  int64 `json:"service_amount"`
	BeforeRounding int64 `json:"before_rounding"`
	RoundingAmount int64 `json:"rounding_amount"`
	FinalAmount    int64 `json:"final_amount"`
}

type SettingService interface {
	GetTaxSettings() ([]model.TaxSetting, error)
	UpdateTaxSetting(key string, update *TaxSettingUpdate, userID string) (*model.TaxSetting, error)

	// GetRoundingSetting returns the singleton row, materializing the
	// default when none exists yet.
	GetRoundingSetting() (*model.RoundingSetting, error)
	UpdateRoundingSetting(update *RoundingSettingUpdate, userID string) (*model.RoundingSetting, error)

	// PreviewRounding applies the current policy to an amount.
	PreviewRounding(amount int64) (*pricing.RoundingResult, error)
	// PreviewTotal compounds the active charges over the amount and rounds
	// the result, exactly as checkout would.
	PreviewTotal(discountedSubtotal int64) (*TotalPreview, error)
}

type settingService struct {
	taxRepo      repository.TaxSettingRepository
	roundingRepo repository.RoundingSettingRepository
}

func NewSettingService(taxRepo repository.TaxSettingRepository, roundingRepo repository.RoundingSettingRepository) SettingService {
	return &settingService{taxRepo: taxRepo, roundingRepo: roundingRepo}
}

func (s *settingService) GetTaxSettings() ([]model.TaxSetting, error) {
	return s.taxRepo.FindAll()
}

func (s *settingService) UpdateTaxSetting(key string, update *TaxSettingUpdate, userID string) (*model.TaxSetting, error) {
	setting, err := s.taxRepo.FindByKey(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaxSettingNotFound
	}
	if err != nil {
		return nil, err
	}

	if update.Percentage != nil {
		if *update.Percentage < 0 || *update.Percentage > 100 {
			return nil, ErrPercentageOutOfRange
		}
		setting.Percentage = *update.Percentage
	}
	if update.Name != nil {
		setting.Name = *update.Name
	}
	if update.Description != nil {
		setting.Description = *update.Description
	}
	if update.ApplyBeforeService != nil {
		setting.ApplyBeforeService = *update.ApplyBeforeService
	}
	if update.IsActive != nil {
		setting.IsActive = *update.IsActive
	}
	setting.UpdatedBy = userID

	if err := s.taxRepo.Save(setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingService) GetRoundingSetting() (*model.RoundingSetting, error) {
	setting, err := s.roundingRepo.Get()
	if err != nil {
		return nil, err
	}
	if setting == nil {
		def := model.DefaultRoundingSetting()
		if err := s.roundingRepo.Save(&def); err != nil {
			return nil, err
		}
		return &def, nil
	}
	return setting, nil
}

func (s *settingService) UpdateRoundingSetting(update *RoundingSettingUpdate, userID string) (*model.RoundingSetting, error) {
	setting, err := s.GetRoundingSetting()
	if err != nil {
		return nil, err
	}

	if update.RoundingIncrement != nil {
		if !model.IsValidRoundingIncrement(*update.RoundingIncrement) {
			return nil, ErrRoundingIncrement
		}
		setting.RoundingIncrement = *update.RoundingIncrement
	}
	if update.RoundingMethod != nil {
		switch *update.RoundingMethod {
		case model.RoundUp, model.RoundDown, model.RoundNearest:
			setting.RoundingMethod = *update.RoundingMethod
		default:
			return nil, errors.New("rounding method must be one of: up, down, nearest")
		}
	}
	if update.IsActive != nil {
		setting.IsActive = *update.IsActive
	}
	if update.Description != nil {
		setting.Description = *update.Description
	}
	setting.UpdatedBy = userID

	if err := s.roundingRepo.Save(setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingService) PreviewRounding(amount int64) (*pricing.RoundingResult, error) {
	setting, err := s.roundingRepo.Get()
	if err != nil {
		return nil, err
	}
	result := pricing.ApplyRounding(amount, setting)
	return &result, nil
}

func (s *settingService) PreviewTotal(discountedSubtotal int64) (*TotalPreview, error) {
	settings, err := s.taxRepo.FindActiveOrdered()
	if err != nil {
		return nil, err
	}
	charges := pricing.CalculateTaxAndService(settings, discountedSubtotal)

	roundingSetting, err := s.roundingRepo.Get()
	if err != nil {
		return nil, err
	}
	rounding := pricing.ApplyRounding(charges.FinalAmount, roundingSetting)

	return &TotalPreview{
		Subtotal:       discountedSubtotal,
		TaxAmount:      charges.TaxAmount,
		ServiceAmount:  charges.ServiceAmount,
		BeforeRounding: charges.FinalAmount,
		RoundingAmount: rounding.RoundingAmount,
		FinalAmount:    rounding.RoundedAmount,
	}, nil
}
