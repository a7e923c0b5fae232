package repository

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	FindByID(id uuid.UUID) (*model.PaymentMethod, error)
	FindByCode(code string) (*model.PaymentMethod, error)
	FindAllActive() ([]model.PaymentMethod, error)
	SeedDefaults() error
}

type paymentMethodRepo struct {
	db *gorm.DB
}

func NewPaymentMethodRepo(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepo{db}
}

func (r *paymentMethodRepo) FindByID(id uuid.UUID) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := r.db.First(&method, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepo) FindByCode(code string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := r.db.First(&method, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepo) FindAllActive() ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.Where("is_active = ?", true).Order("code ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepo) SeedDefaults() error {
	for _, method := range model.DefaultPaymentMethods {
		var existing model.PaymentMethod
		err := r.db.First(&existing, "code = ?", method.Code).Error
		if err == gorm.ErrRecordNotFound {
			method.IsActive = true
			if err := r.db.Create(&method).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
