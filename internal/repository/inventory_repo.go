package repository

import (
	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	FindByProduct(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error)
	Create(inventory *model.Inventory) error
	// DecrementIfAvailable is the atomic conditional decrement:
	// UPDATE ... SET quantity = quantity - n WHERE product_id = ? AND quantity >= n.
	// Returns false when stock was insufficient (zero rows affected); the row
	// is left untouched in that case. Run inside the order transaction.
	DecrementIfAvailable(tx *gorm.DB, productID uuid.UUID, quantity int) (bool, error)
	Increment(tx *gorm.DB, productID uuid.UUID, quantity int) error
	CreateLog(tx *gorm.DB, log *model.InventoryLog) error
	FindLogsByProduct(productID uuid.UUID, limit int) ([]model.InventoryLog, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) FindByProduct(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	if tx == nil {
		tx = r.db
	}
	var inv model.Inventory
	if err := tx.First(&inv, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) Create(inventory *model.Inventory) error {
	return r.db.Create(inventory).Error
}

func (r *inventoryRepo) DecrementIfAvailable(tx *gorm.DB, productID uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&model.Inventory{}).
		Where("product_id = ? AND quantity >= ?", productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *inventoryRepo) Increment(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	return tx.Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

func (r *inventoryRepo) CreateLog(tx *gorm.DB, log *model.InventoryLog) error {
	return tx.Create(log).Error
}

func (r *inventoryRepo) FindLogsByProduct(productID uuid.UUID, limit int) ([]model.InventoryLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.InventoryLog
	err := r.db.
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
