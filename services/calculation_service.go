package services

import (
	"context"

	apperrors "github.com/filebright/filebright-backend/errors"
	"github.com/filebright/filebright-backend/internal/store"
	"github.com/filebright/filebright-backend/internal/tax/aggregator"
	"github.com/filebright/filebright-backend/internal/tax/unified"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

// CalculationService rebuilds the income/withholding ledger from a user's
// processed documents on every request and runs the unified calculation.
// Nothing is cached: a document change is reflected on the next call.
type CalculationService struct {
	store store.DocumentStore
}

// NewCalculationService creates a new CalculationService.
func NewCalculationService(docStore store.DocumentStore) *CalculationService {
	return &CalculationService{store: docStore}
}

// Calculate loads every processed document, aggregates the ledger, and runs
// the federal (and, when a state is given, state) calculation.
func (s *CalculationService) Calculate(ctx context.Context, userID string, personal types.PersonalInfo, opts types.CalculationOptions) (*types.UnifiedTaxResult, error) {
	log := logger.GetLogger()

	documents, err := s.store.ListExtractions(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	ledger := aggregator.Aggregate(documents)
	log.Infow("Ledger aggregated",
		"userId", userID,
		"documentCount", len(documents),
		"totalIncome", ledger.Income.Total(),
		"totalWithholding", ledger.Withholdings.Total(),
	)

	return unified.Calculate(ledger, personal, opts), nil
}
