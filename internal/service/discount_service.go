package service

import (
	"errors"
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/pricing"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountPreview is the dry-run result of a code against a cart: the same
// numbers checkout would produce, without consuming the code.
type DiscountPreview struct {
	Code            string                   `json:"code"`
	Name            string                   `json:"name"`
	Type            model.DiscountType       `json:"type"`
	DiscountAmount  int64                    `json:"discount_amount"`
	DiscountDetails model.DiscountDetailList `json:"discount_details"`
	Subtotal        int64                    `json:"subtotal"`
	AfterDiscount   int64                    `json:"after_discount"`
}

type DiscountService interface {
	CreateDiscount(discount *model.Discount, userID string) error
	UpdateDiscount(discount *model.Discount, userID string) error
	GetDiscounts() ([]model.Discount, error)
	GetUsableDiscounts() ([]model.Discount, error)
	GetDiscountByID(id uuid.UUID) (*model.Discount, error)
	// ValidateCode gates a code and previews its effect on the cart without
	// touching the usage count.
	ValidateCode(code string, items []pricing.CartItem, subtotal int64) (*DiscountPreview, error)
}

type discountService struct {
	discountRepo repository.DiscountRepository
}

func NewDiscountService(discountRepo repository.DiscountRepository) DiscountService {
	return &discountService{discountRepo: discountRepo}
}

// gateDiscount runs the eligibility checks every caller must pass before the
// arithmetic engine sees the definition. The repo already filters inactive
// codes.
func gateDiscount(d *model.Discount, now time.Time, subtotal int64) error {
	if now.Truncate(24 * time.Hour).Before(d.StartDate.Truncate(24 * time.Hour)) {
		return ErrDiscountNotStarted
	}
	if !d.IsWithinValidity(now) {
		return ErrDiscountExpired
	}
	if d.IsUsageExhausted() {
		return ErrDiscountExhausted
	}
	if d.MinimumPurchase > 0 && subtotal < d.MinimumPurchase {
		return &MinimumPurchaseError{MinimumPurchase: d.MinimumPurchase}
	}
	return nil
}

func (s *discountService) CreateDiscount(discount *model.Discount, userID string) error {
	if errs := validator.ValidateStruct(discount); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	discount.CreatedBy = userID
	discount.UpdatedBy = userID
	return s.discountRepo.Create(discount)
}

func (s *discountService) UpdateDiscount(discount *model.Discount, userID string) error {
	if errs := validator.ValidateStruct(discount); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	discount.UpdatedBy = userID
	return s.discountRepo.Update(discount)
}

func (s *discountService) GetDiscounts() ([]model.Discount, error) {
	return s.discountRepo.FindAll()
}

func (s *discountService) GetUsableDiscounts() ([]model.Discount, error) {
	return s.discountRepo.FindUsable(time.Now())
}

func (s *discountService) GetDiscountByID(id uuid.UUID) (*model.Discount, error) {
	discount, err := s.discountRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDiscountNotFound
	}
	return discount, err
}

func (s *discountService) ValidateCode(code string, items []pricing.CartItem, subtotal int64) (*DiscountPreview, error) {
	discount, err := s.discountRepo.FindActiveByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := gateDiscount(discount, time.Now(), subtotal); err != nil {
		return nil, err
	}

	calc := pricing.CalculateDiscount(discount, items, subtotal)
	return &DiscountPreview{
		Code:            discount.Code,
		Name:            discount.Name,
		Type:            discount.Type,
		DiscountAmount:  calc.DiscountAmount,
		DiscountDetails: calc.Details,
		Subtotal:        subtotal,
		AfterDiscount:   subtotal - calc.DiscountAmount,
	}, nil
}
