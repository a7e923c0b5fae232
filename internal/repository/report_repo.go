package repository

import (
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"

	"gorm.io/gorm"
)

// DailySalesData is one aggregated chart point.
type DailySalesData struct {
	Date       string `json:"date"`
	OrderCount int    `json:"order_count"`
	Revenue    int64  `json:"revenue"`
}

// SalesSummary is the headline numbers for a period.
type SalesSummary struct {
	TotalOrders    int64   `json:"total_orders"`
	TotalRevenue   int64   `json:"total_revenue"`
	TotalDiscount  int64   `json:"total_discount"`
	TotalTax       int64   `json:"total_tax"`
	TotalService   int64   `json:"total_service"`
	TotalCost      float64 `json:"total_cost"`
	GrossProfit    float64 `json:"gross_profit"`
	RefundedOrders int64   `json:"refunded_orders"`
}

// MovementChartData aggregates raw-material in/out quantities per day.
type MovementChartData struct {
	Date     string  `json:"date"`
	Inbound  float64 `json:"inbound"`
	Outbound float64 `json:"outbound"`
}

type ReportRepository interface {
	GetDailySales(startDate, endDate time.Time) ([]DailySalesData, error)
	GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error)
	GetStockMovementChart(startDate, endDate time.Time) ([]MovementChartData, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetDailySales(startDate, endDate time.Time) ([]DailySalesData, error) {
	var results []DailySalesData

	rows, err := r.db.Model(&model.Order{}).
		Select(`
			DATE(order_date) as date,
			COUNT(*) as order_count,
			COALESCE(SUM(final_amount), 0) as revenue
		`).
		Where("order_date BETWEEN ? AND ?", startDate, endDate).
		Where("payment_status = ?", model.PaymentPaid).
		Group("DATE(order_date)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySalesData
		if err := rows.Scan(&data.Date, &data.OrderCount, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, nil
}

func (r *reportRepo) GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	paid := r.db.Model(&model.Order{}).
		Where("order_date BETWEEN ? AND ?", startDate, endDate).
		Where("payment_status = ?", model.PaymentPaid)

	if err := paid.Session(&gorm.Session{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, err
	}

	type totals struct {
		Revenue  int64
		Discount int64
		Tax      int64
		Service  int64
	}
	var t totals
	err := paid.Session(&gorm.Session{}).Select(`
		COALESCE(SUM(final_amount), 0) as revenue,
		COALESCE(SUM(discount_amount), 0) as discount,
		COALESCE(SUM(tax_amount), 0) as tax,
		COALESCE(SUM(service_amount), 0) as service
	`).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	summary.TotalRevenue = t.Revenue
	summary.TotalDiscount = t.Discount
	summary.TotalTax = t.Tax
	summary.TotalService = t.Service

	// COGS comes from the per-line snapshots captured at sale time.
	err = r.db.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.order_date BETWEEN ? AND ?", startDate, endDate).
		Where("orders.payment_status = ?", model.PaymentPaid).
		Select("COALESCE(SUM(order_items.cost_of_goods), 0)").
		Scan(&summary.TotalCost).Error
	if err != nil {
		return nil, err
	}
	summary.GrossProfit = float64(summary.TotalRevenue) - summary.TotalCost

	err = r.db.Model(&model.Order{}).
		Where("order_date BETWEEN ? AND ?", startDate, endDate).
		Where("payment_status = ?", model.PaymentRefunded).
		Count(&summary.RefundedOrders).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepo) GetStockMovementChart(startDate, endDate time.Time) ([]MovementChartData, error) {
	var results []MovementChartData

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'out' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MovementChartData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, nil
}
