package services

import "taxinator/internal/models"

// reconciliationNote is the fixed advisory attached to every report.
const reconciliationNote = "Resolve mismatched accounts with the upstream provider before filing; mismatches do not block export."

// BuildReconciliation cross-checks normalized transactions against the
// uploaded personal-info set. Mismatched account ids keep their duplicates,
// one entry per offending transaction, so matched + mismatched always sums
// to the transaction count. Gain/loss alignment holds only when a prior
// transform recorded exactly as many gain/loss records as there are
// normalized transactions now.
func BuildReconciliation(normalized []models.NormalizedTransaction, personalInfo []models.PersonalInfoRecord, transformation *models.TransformationSummary) models.ReconciliationReport {
	known := make(map[string]bool, len(personalInfo))
	for _, rec := range personalInfo {
		known[rec.CustomerID] = true
	}

	matched := 0
	mismatched := []string{}
	for _, tx := range normalized {
		if known[tx.AccountID] {
			matched++
		} else {
			mismatched = append(mismatched, tx.AccountID)
		}
	}

	alignment := transformation != nil && transformation.GainLossRecords == len(normalized)

	return models.ReconciliationReport{
		MatchedAccounts:    matched,
		MismatchedAccounts: mismatched,
		GainLossAlignment:  alignment,
		Notes:              reconciliationNote,
	}
}
