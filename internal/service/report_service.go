package service

import (
	"time"

	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"
)

type ReportService interface {
	// GetDailySales charts paid revenue per day over the period.
	GetDailySales(startDate, endDate time.Time) ([]repository.DailySalesData, error)
	// GetSalesSummary returns the period's headline numbers, including COGS
	// and gross profit from the per-line cost snapshots.
	GetSalesSummary(startDate, endDate time.Time) (*repository.SalesSummary, error)
	GetStockMovementChart(startDate, endDate time.Time) ([]repository.MovementChartData, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// normalizeRange widens the bounds to whole days and defaults to the last 30
// days when unset.
func normalizeRange(startDate, endDate time.Time) (time.Time, time.Time) {
	if endDate.IsZero() {
		endDate = time.Now()
	}
	if startDate.IsZero() {
		startDate = endDate.AddDate(0, 0, -30)
	}
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 999999999, endDate.Location())
	return start, end
}

func (s *reportService) GetDailySales(startDate, endDate time.Time) ([]repository.DailySalesData, error) {
	start, end := normalizeRange(startDate, endDate)
	return s.reportRepo.GetDailySales(start, end)
}

func (s *reportService) GetSalesSummary(startDate, endDate time.Time) (*repository.SalesSummary, error) {
	start, end := normalizeRange(startDate, endDate)
	return s.reportRepo.GetSalesSummary(start, end)
}

func (s *reportService) GetStockMovementChart(startDate, endDate time.Time) ([]repository.MovementChartData, error) {
	start, end := normalizeRange(startDate, endDate)
	return s.reportRepo.GetStockMovementChart(start, end)
}
