package services

import (
	"github.com/shopspring/decimal"

	"taxinator/internal/models"
)

// rollup aggregates the monetary and treatment counts shared by both
// summary shapes.
func rollup(normalized []models.NormalizedTransaction) (proceeds, cost, gainLoss decimal.Decimal, shortTerm, longTerm int) {
	proceeds = decimal.Zero
	cost = decimal.Zero
	gainLoss = decimal.Zero
	for _, tx := range normalized {
		proceeds = proceeds.Add(tx.Proceeds)
		cost = cost.Add(tx.CostBasis)
		gainLoss = gainLoss.Add(tx.GainLoss())
		if tx.Treatment() == models.TreatmentShortTerm {
			shortTerm++
		} else {
			longTerm++
		}
	}
	return proceeds, cost, gainLoss, shortTerm, longTerm
}

// buildIngestionSummary computes the rollup attached after cost-basis
// ingestion. totalRows is the raw upload size, before normalization.
func buildIngestionSummary(totalRows int, normalized []models.NormalizedTransaction) models.IngestionSummary {
	proceeds, cost, gainLoss, shortTerm, longTerm := rollup(normalized)
	return models.IngestionSummary{
		TotalRows:       totalRows,
		NormalizedCount: len(normalized),
		TotalProceeds:   proceeds,
		TotalCostBasis:  cost,
		TotalGainLoss:   gainLoss,
		ShortTermCount:  shortTerm,
		LongTermCount:   longTerm,
	}
}

// buildJobSummary computes the legacy single-shot ingestion rollup.
func buildJobSummary(normalized []models.NormalizedTransaction) models.JobSummary {
	proceeds, cost, gainLoss, shortTerm, longTerm := rollup(normalized)
	return models.JobSummary{
		TotalTransactions: len(normalized),
		TotalProceeds:     proceeds,
		TotalCostBasis:    cost,
		TotalGainLoss:     gainLoss,
		ShortTermCount:    shortTerm,
		LongTermCount:     longTerm,
	}
}
