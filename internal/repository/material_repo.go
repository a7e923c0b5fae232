package repository

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.RawMaterial) error
	Update(material *model.RawMaterial) error
	FindAll() ([]model.RawMaterial, error)
	FindByID(id uuid.UUID) (*model.RawMaterial, error)
	FindByCode(code string) (*model.RawMaterial, error)
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) Create(material *model.RawMaterial) error {
	return r.db.Create(material).Error
}

func (r *materialRepo) Update(material *model.RawMaterial) error {
	return r.db.Save(material).Error
}

func (r *materialRepo) FindAll() ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.Preload("StockLevel").Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindByID(id uuid.UUID) (*model.RawMaterial, error) {
	var material model.RawMaterial
	if err := r.db.Preload("StockLevel").First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) FindByCode(code string) (*model.RawMaterial, error) {
	var material model.RawMaterial
	if err := r.db.First(&material, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

type StockRepository interface {
	FindByMaterial(tx *gorm.DB, materialID uuid.UUID) (*model.StockLevel, error)
	Create(level *model.StockLevel) error
	// DecrementIfAvailable mirrors the finished-goods pattern for decimal
	// raw-material quantities; false means insufficient stock.
	DecrementIfAvailable(tx *gorm.DB, materialID uuid.UUID, quantity decimal.Decimal) (bool, error)
	Increment(tx *gorm.DB, materialID uuid.UUID, quantity decimal.Decimal) error
	CreateMovement(tx *gorm.DB, movement *model.StockMovement) error
	FindMovements(materialID *uuid.UUID, limit int) ([]model.StockMovement, error)
	// FindBelowMinimum lists materials whose stock fell under their minimum.
	FindBelowMinimum() ([]model.RawMaterial, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindByMaterial(tx *gorm.DB, materialID uuid.UUID) (*model.StockLevel, error) {
	if tx == nil {
		tx = r.db
	}
	var level model.StockLevel
	if err := tx.First(&level, "material_id = ?", materialID).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *stockRepo) Create(level *model.StockLevel) error {
	return r.db.Create(level).Error
}

func (r *stockRepo) DecrementIfAvailable(tx *gorm.DB, materialID uuid.UUID, quantity decimal.Decimal) (bool, error) {
	res := tx.Model(&model.StockLevel{}).
		Where("material_id = ? AND quantity >= ?", materialID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *stockRepo) Increment(tx *gorm.DB, materialID uuid.UUID, quantity decimal.Decimal) error {
	return tx.Model(&model.StockLevel{}).
		Where("material_id = ?", materialID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

func (r *stockRepo) CreateMovement(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockRepo) FindMovements(materialID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := r.db.Preload("Material").Order("created_at DESC").Limit(limit)
	if materialID != nil {
		query = query.Where("material_id = ?", *materialID)
	}
	var movements []model.StockMovement
	err := query.Find(&movements).Error
	return movements, err
}

func (r *stockRepo) FindBelowMinimum() ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.
		Joins("JOIN stock_levels ON stock_levels.material_id = raw_materials.id").
		Where("stock_levels.quantity < raw_materials.minimum_stock").
		Preload("StockLevel").
		Find(&materials).Error
	return materials, err
}
