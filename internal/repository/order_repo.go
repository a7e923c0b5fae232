package repository

import (
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentStatus string
	CashierID     *uuid.UUID
	Page          int
	Limit         int
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	CreateItem(tx *gorm.DB, item *model.OrderItem) error
	// ExistsByNumber checks a candidate order number inside tx so a
	// collision can be retried before the insert aborts the transaction.
	ExistsByNumber(tx *gorm.DB, orderNumber string) (bool, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	// FindByIDInTx loads the order with its items inside tx, used by
	// cancellation.
	FindByIDInTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	FindAll(filter OrderFilter) ([]model.Order, int64, error)
	UpdatePaymentStatus(tx *gorm.DB, id uuid.UUID, status model.PaymentStatus, notes string) error
	UpdateReceiptPrinted(id uuid.UUID, printed bool) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) CreateItem(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Create(item).Error
}

func (r *orderRepo) ExistsByNumber(tx *gorm.DB, orderNumber string) (bool, error) {
	var count int64
	err := tx.Model(&model.Order{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Cashier").
		Preload("PaymentMethod").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByIDInTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindAll(filter OrderFilter) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{})

	if filter.StartDate != nil {
		query = query.Where("order_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("order_date <= ?", *filter.EndDate)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.CashierID != nil {
		query = query.Where("cashier_id = ?", *filter.CashierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var orders []model.Order
	err := query.
		Preload("PaymentMethod").
		Preload("Items").
		Order("order_date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) UpdatePaymentStatus(tx *gorm.DB, id uuid.UUID, status model.PaymentStatus, notes string) error {
	updates := map[string]interface{}{"payment_status": status}
	if notes != "" {
		updates["notes"] = notes
	}
	return tx.Model(&model.Order{}).Where("id = ?", id).Updates(updates).Error
}

func (r *orderRepo) UpdateReceiptPrinted(id uuid.UUID, printed bool) error {
	return r.db.Model(&model.Order{}).Where("id = ?", id).Update("receipt_printed", printed).Error
}
