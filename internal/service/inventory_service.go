package service

import (
	"errors"
	"fmt"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
	"github.com/dedesp/PancongKeceApp-sub000/internal/ws"
	"github.com/dedesp/PancongKeceApp-sub000/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrMaterialNotFound = errors.New("raw material not found")

// StockAdjustmentRequest is a manual raw-material stock change.
type StockAdjustmentRequest struct {
	MaterialID uuid.UUID          `json:"material_id" validate:"required"`
	Type       model.MovementType `json:"type" validate:"required,oneof=in out adjustment"`
	// For in/out this is the delta; for adjustment it is the new absolute
	// quantity.
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Notes    string          `json:"notes"`
}

// ProductStockAdjustmentRequest is a manual finished-goods stock change.
type ProductStockAdjustmentRequest struct {
	ProductID uuid.UUID          `json:"product_id" validate:"required"`
	Type      model.MovementType `json:"type" validate:"required,oneof=in out adjustment"`
	Quantity  int                `json:"quantity"`
	Notes     string             `json:"notes"`
}

type InventoryService interface {
	CreateMaterial(material *model.RawMaterial, userID string) error
	UpdateMaterial(material *model.RawMaterial, userID string) error
	GetMaterials() ([]model.RawMaterial, error)
	GetMaterialByID(id uuid.UUID) (*model.RawMaterial, error)

	// AdjustStock applies a manual raw-material movement and records it in
	// the audit trail, in one transaction.
	AdjustStock(req *StockAdjustmentRequest, userID string) (*model.StockMovement, error)
	GetMovements(materialID *uuid.UUID, limit int) ([]model.StockMovement, error)
	GetLowStockMaterials() ([]model.RawMaterial, error)

	// AdjustProductStock is the finished-goods counterpart of AdjustStock.
	AdjustProductStock(req *ProductStockAdjustmentRequest, userID string) (*model.InventoryLog, error)
	GetInventoryLogs(productID uuid.UUID, limit int) ([]model.InventoryLog, error)
}

type inventoryService struct {
	db            *gorm.DB
	materialRepo  repository.MaterialRepository
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	hub           *ws.Hub
}

func NewInventoryService(
	db *gorm.DB,
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		db:            db,
		materialRepo:  materialRepo,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		hub:           hub,
	}
}

func (s *inventoryService) CreateMaterial(material *model.RawMaterial, userID string) error {
	if errs := validator.ValidateStruct(material); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	material.CreatedBy = userID
	material.UpdatedBy = userID
	if err := s.materialRepo.Create(material); err != nil {
		return err
	}
	// Every material gets a stock row immediately so movements never need
	// an upsert.
	level := &model.StockLevel{
		MaterialID: material.ID,
		Quantity:   decimal.Zero,
		Unit:       material.Unit,
	}
	level.CreatedBy = userID
	return s.stockRepo.Create(level)
}

func (s *inventoryService) UpdateMaterial(material *model.RawMaterial, userID string) error {
	if errs := validator.ValidateStruct(material); len(errs) > 0 {
		return validator.FirstError(errs)
	}
	material.UpdatedBy = userID
	return s.materialRepo.Update(material)
}

func (s *inventoryService) GetMaterials() ([]model.RawMaterial, error) {
	return s.materialRepo.FindAll()
}

func (s *inventoryService) GetMaterialByID(id uuid.UUID) (*model.RawMaterial, error) {
	material, err := s.materialRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMaterialNotFound
	}
	return material, err
}

func (s *inventoryService) AdjustStock(req *StockAdjustmentRequest, userID string) (*model.StockMovement, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validator.FirstError(errs)
	}

	material, err := s.materialRepo.FindByID(req.MaterialID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMaterialNotFound
	}
	if err != nil {
		return nil, err
	}

	var movement *model.StockMovement
	err = s.db.Transaction(func(tx *gorm.DB) error {
		level, err := s.stockRepo.FindByMaterial(tx, req.MaterialID)
		if err != nil {
			return err
		}
		previous := level.Quantity

		var delta decimal.Decimal
		switch req.Type {
		case model.MovementIn:
			delta = req.Quantity
			if err := s.stockRepo.Increment(tx, req.MaterialID, delta); err != nil {
				return err
			}
		case model.MovementOut:
			delta = req.Quantity
			ok, err := s.stockRepo.DecrementIfAvailable(tx, req.MaterialID, delta)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientMaterialError{
					MaterialName: material.Name,
					Required:     delta,
					Available:    previous,
				}
			}
		case model.MovementAdjustment:
			// Quantity is the counted stock; the movement records the
			// difference against the previous level.
			delta = req.Quantity.Sub(previous)
			if err := s.stockRepo.Increment(tx, req.MaterialID, delta); err != nil {
				return err
			}
		}

		after, err := s.stockRepo.FindByMaterial(tx, req.MaterialID)
		if err != nil {
			return err
		}

		movement = &model.StockMovement{
			MaterialID:       req.MaterialID,
			Type:             req.Type,
			Quantity:         delta.Abs(),
			PreviousQuantity: previous,
			NewQuantity:      after.Quantity,
			Unit:             level.Unit,
			UnitCost:         req.UnitCost,
			TotalCost:        req.UnitCost.Mul(delta.Abs()),
			Notes:            req.Notes,
		}
		movement.CreatedBy = userID
		return s.stockRepo.CreateMovement(tx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.hub.PublishEvent(ws.EventStockAdjusted,
		fmt.Sprintf("Stock adjusted for %s", material.Name), movement)

	if movement.NewQuantity.LessThan(material.MinimumStock) {
		s.hub.PublishEvent(ws.EventStockLow,
			fmt.Sprintf("%s is below minimum stock", material.Name), material)
	}
	return movement, nil
}

func (s *inventoryService) GetMovements(materialID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	return s.stockRepo.FindMovements(materialID, limit)
}

func (s *inventoryService) GetLowStockMaterials() ([]model.RawMaterial, error) {
	return s.stockRepo.FindBelowMinimum()
}

func (s *inventoryService) AdjustProductStock(req *ProductStockAdjustmentRequest, userID string) (*model.InventoryLog, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validator.FirstError(errs)
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	var log *model.InventoryLog
	err = s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.inventoryRepo.FindByProduct(tx, req.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			inv = &model.Inventory{ProductID: req.ProductID}
			inv.CreatedBy = userID
			if err := tx.Create(inv).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		previous := inv.Quantity

		var delta int
		switch req.Type {
		case model.MovementIn:
			delta = req.Quantity
			if err := s.inventoryRepo.Increment(tx, req.ProductID, delta); err != nil {
				return err
			}
		case model.MovementOut:
			delta = req.Quantity
			ok, err := s.inventoryRepo.DecrementIfAvailable(tx, req.ProductID, delta)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{
					ProductName: product.Name,
					Requested:   delta,
					Available:   previous,
				}
			}
		case model.MovementAdjustment:
			delta = req.Quantity - previous
			if err := s.inventoryRepo.Increment(tx, req.ProductID, delta); err != nil {
				return err
			}
		}

		after, err := s.inventoryRepo.FindByProduct(tx, req.ProductID)
		if err != nil {
			return err
		}

		log = &model.InventoryLog{
			ProductID:        req.ProductID,
			Type:             req.Type,
			Quantity:         abs(delta),
			PreviousQuantity: previous,
			NewQuantity:      after.Quantity,
			Notes:            req.Notes,
		}
		log.CreatedBy = userID
		return s.inventoryRepo.CreateLog(tx, log)
	})
	if err != nil {
		return nil, err
	}

	s.hub.PublishEvent(ws.EventStockAdjusted,
		fmt.Sprintf("Stock adjusted for %s", product.Name), log)
	return log, nil
}

func (s *inventoryService) GetInventoryLogs(productID uuid.UUID, limit int) ([]model.InventoryLog, error) {
	return s.inventoryRepo.FindLogsByProduct(productID, limit)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
