// Package report builds monthly financial reports from the transactions collection.
package report

import (
	"context"
	"errors"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/window"
	"rentwatch/utils"

	"go.uber.org/zap"
)

// ReportRequest is the caller's input. ApartmentID is optional.
type ReportRequest struct {
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	ApartmentID string `json:"apartmentId,omitempty"`
}

// ReportService defines the report-generation job.
type ReportService interface {
	Generate(ctx context.Context, actorID string, req ReportRequest) (*models.MonthlyReport, error)
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	Transactions repository.TransactionRepository
	Lookups      repository.LookupRepository
	Location     *time.Location
	Now          func() time.Time
}

func NewReportService(txs repository.TransactionRepository, lookups repository.LookupRepository, loc *time.Location) *DefaultReportService {
	return &DefaultReportService{
		Transactions: txs,
		Lookups:      lookups,
		Location:     loc,
		Now:          time.Now,
	}
}

func validate(actorID string, req ReportRequest) error {
	if actorID == "" {
		return utils.Unauthenticated("User must be authenticated")
	}
	if req.Month == 0 || req.Year == 0 {
		return utils.InvalidArgument("Month and year are required")
	}
	if req.Month < 1 || req.Month > 12 {
		return utils.InvalidArgument("Month must be between 1 and 12")
	}
	if req.Year < 1970 || req.Year > 9999 {
		return utils.InvalidArgument("Year is out of range")
	}
	return nil
}

// Generate aggregates every transaction dated in the requested month.
func (s *DefaultReportService) Generate(ctx context.Context, actorID string, req ReportRequest) (*models.MonthlyReport, error) {
	if err := validate(actorID, req); err != nil {
		return nil, err
	}

	logger := utils.GetLogger().With(
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.String("apartmentId", req.ApartmentID),
	)

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	w := window.Month(req.Year, time.Month(req.Month), loc)

	result, err := Aggregate(s.Transactions.InPeriod(ctx, w, req.ApartmentID), loc)
	if err != nil {
		logger.Error("Error generating monthly report", zap.Error(err))
		return nil, utils.Internal("Failed to generate monthly report", err)
	}

	var apartment *models.Apartment
	if req.ApartmentID != "" {
		apartment, err = s.Lookups.GetApartment(ctx, req.ApartmentID)
		if errors.Is(err, store.ErrNotFound) {
			apartment = nil
		} else if err != nil {
			logger.Error("Error loading report apartment", zap.Error(err))
			return nil, utils.Internal("Failed to generate monthly report", err)
		}
	}

	logger.Info("Generated monthly report", zap.Int("transactions", result.Summary.TransactionCount))

	return &models.MonthlyReport{
		Period: models.ReportPeriod{
			Month:     req.Month,
			Year:      req.Year,
			StartDate: w.Lower.At,
			EndDate:   w.LastInstant(),
		},
		Apartment:          apartment,
		Summary:            result.Summary,
		IncomeByCategory:   result.IncomeByCategory,
		ExpensesByCategory: result.ExpensesByCategory,
		Transactions:       result.Items,
		GeneratedAt:        s.Now().In(loc),
		GeneratedBy:        actorID,
	}, nil
}
