// Package aggregator builds the per-request income/withholding ledger from a
// user's processed documents. It applies the field classifier, enforces
// confidence floors, and suppresses duplicate boxes the OCR vendor sometimes
// emits under synonymous field names.
package aggregator

import (
	"github.com/filebright/filebright-backend/internal/tax/classifier"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

const (
	// Documents below this average confidence are skipped entirely.
	minDocumentConfidence = 0.1
	// Individual fields below this confidence are discarded.
	minFieldConfidence = 0.3
)

// dedupKey identifies a counted amount within one document. The vendor can
// return the same box under both a flat field name and a transaction-array
// path; the (documentType, boxReference, amount) triple catches that.
type dedupKey struct {
	documentType types.DocumentType
	boxReference string
	amount       float64
}

// Aggregate classifies every usable field of every usable document and
// accumulates the totals into a fresh ledger. It is pure: no caching, no
// mutation of its inputs.
func Aggregate(documents []types.SourceDocument) types.TaxDocumentData {
	log := logger.GetLogger()

	data := types.TaxDocumentData{
		Breakdown: types.TaxBreakdown{ByDocument: []types.DocumentContribution{}},
	}

	for _, doc := range documents {
		if doc.Confidence < minDocumentConfidence {
			log.Debugw("Skipping low-confidence document",
				"documentId", doc.ID,
				"confidence", doc.Confidence,
			)
			continue
		}

		contribution := aggregateDocument(doc, &data)
		data.Breakdown.ByDocument = append(data.Breakdown.ByDocument, contribution)
	}

	return data
}

// aggregateDocument processes one document's fields, adding counted amounts
// to the ledger totals and returning the provenance entry. Dedup bookkeeping
// is scoped to the document, so concurrent per-document classification would
// need no cross-document coordination.
func aggregateDocument(doc types.SourceDocument, data *types.TaxDocumentData) types.DocumentContribution {
	log := logger.GetLogger()

	contribution := types.DocumentContribution{
		DocumentID:   doc.ID,
		FileName:     doc.FileName,
		DocumentType: doc.DocumentType,
		Fields:       []types.FieldContribution{},
	}

	seen := make(map[dedupKey]struct{})

	for _, field := range doc.Fields {
		if field.Confidence < minFieldConfidence {
			log.Debugw("Skipping low-confidence field",
				"documentId", doc.ID,
				"field", field.FieldName,
				"confidence", field.Confidence,
			)
			continue
		}

		amount := ParseFieldValue(field.RawValue)
		if amount <= 0 {
			continue
		}

		classified := classifier.Classify(field.FieldName, amount, doc.DocumentType)
		if classified.Classification == types.ClassificationIgnore {
			continue
		}

		key := dedupKey{doc.DocumentType, classified.BoxReference, amount}
		if _, dup := seen[key]; dup {
			log.Debugw("Skipping duplicate box",
				"documentId", doc.ID,
				"field", field.FieldName,
				"boxReference", classified.BoxReference,
				"amount", amount,
			)
			continue
		}
		seen[key] = struct{}{}

		switch classified.Classification {
		case types.ClassificationIncome:
			addIncome(&data.Income, classified.Category, amount)
			contribution.Income += amount
		case types.ClassificationWithholding:
			addWithholding(&data.Withholdings, classified.Category, amount)
			contribution.Withholding += amount
		}

		contribution.Fields = append(contribution.Fields, types.FieldContribution{
			FieldName:      field.FieldName,
			BoxReference:   classified.BoxReference,
			Classification: classified.Classification,
			Category:       classified.Category,
			Description:    classified.Description,
			Amount:         amount,
			Confidence:     field.Confidence,
		})
	}

	return contribution
}

func addIncome(totals *types.IncomeTotals, category string, amount float64) {
	switch category {
	case types.CategoryWages:
		totals.Wages += amount
	case types.CategoryInterest:
		totals.Interest += amount
	case types.CategoryDividends:
		totals.Dividends += amount
	case types.CategoryNonEmployeeCompensation:
		totals.NonEmployeeCompensation += amount
	case types.CategoryMiscellaneousIncome:
		totals.MiscellaneousIncome += amount
	case types.CategoryRentalRoyalties:
		totals.RentalRoyalties += amount
	default:
		totals.Other += amount
	}
}

func addWithholding(totals *types.WithholdingTotals, category string, amount float64) {
	switch category {
	case types.CategoryFederalTax:
		totals.FederalTax += amount
	case types.CategoryStateTax:
		totals.StateTax += amount
	case types.CategorySocialSecurityTax:
		totals.SocialSecurityTax += amount
	case types.CategoryMedicareTax:
		totals.MedicareTax += amount
	}
}
