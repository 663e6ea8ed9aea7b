// Package priority computes the two priority signals used by the intake
// pipeline: the integer class that orders the work queue, and the richer
// label attached to tickets as metadata. The two are intentionally
// independent; only the class gates queue order.
package priority

import (
	"regexp"
	"strings"

	"triagedesk/pkg/models"
)

// Queue service classes; lower is served first.
const (
	ClassCentral = 1
	ClassHigh    = 2
	ClassNormal  = 3
)

// Ticket priority labels.
const (
	LabelLow      = "low"
	LabelMedium   = "medium"
	LabelHigh     = "high"
	LabelCritical = "critical"
)

// Class maps request attributes to a queue service class. Pure and total:
// missing numeric fields are zero, missing query level means branch.
func Class(req *models.QueryRequest) int {
	if req.QueryLevel == models.QueryLevelCentral ||
		req.CibilScore >= 800 || req.Holdings >= 1_000_000 || req.AnnualIncome >= 1_000_000 {
		return ClassCentral
	}
	if req.CibilScore >= 700 || req.Holdings >= 500_000 || req.AnnualIncome >= 500_000 {
		return ClassHigh
	}
	return ClassNormal
}

// criticalPatterns flag queries about fraud, lost/blocked cards and other
// situations that must jump straight to the critical label.
var criticalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bfraud\b`),
	regexp.MustCompile(`\bstolen\b`),
	regexp.MustCompile(`\bhack\b`),
	regexp.MustCompile(`\bphish\b`),
	regexp.MustCompile(`\bunauthorized\b`),
	regexp.MustCompile(`\bblock\b.*\bcard\b`),
	regexp.MustCompile(`\blost\b.*\bcard\b`),
	regexp.MustCompile(`\bstolen\b.*\bcard\b`),
	regexp.MustCompile(`\bwrong\b.*\btransaction\b`),
	regexp.MustCompile(`\bfailed\b.*\btransaction\b`),
	regexp.MustCompile(`\bfrozen\b.*\baccount\b`),
	regexp.MustCompile(`\blocked\b.*\baccount\b`),
	regexp.MustCompile(`\bscam\b`),
	regexp.MustCompile(`\btheft\b`),
	regexp.MustCompile(`\bcompromised\b`),
	regexp.MustCompile(`\bsuspicious\b`),
	regexp.MustCompile(`\bemergency\b`),
	regexp.MustCompile(`\burgent\b`),
	regexp.MustCompile(`\bimmediate\b`),
	regexp.MustCompile(`\bcritical\b`),
}

// IsCritical reports whether the query text matches a critical pattern.
func IsCritical(queryText string) bool {
	if queryText == "" {
		return false
	}
	lower := strings.ToLower(queryText)
	for _, re := range criticalPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// Generate produces the ticket-annotation priority label from the
// customer's financial attributes and query text. Critical queries win
// regardless of financial standing.
func Generate(cibilScore, holdings, annualIncome, loans float64, queryText string) string {
	if IsCritical(queryText) {
		return LabelCritical
	}
	return financialLabel(cibilScore, holdings, annualIncome, loans)
}

// financialLabel scores each attribute into bands and sums the points.
// A missing (zero) CIBIL score is treated as the 700 midpoint.
func financialLabel(cibilScore, holdings, annualIncome, loans float64) string {
	if cibilScore == 0 {
		cibilScore = 700
	}

	score := 0
	switch {
	case cibilScore >= 800:
		score += 3
	case cibilScore >= 700:
		score += 2
	case cibilScore >= 600:
		score += 1
	}
	switch {
	case holdings >= 1_000_000:
		score += 3
	case holdings >= 100_000:
		score += 2
	case holdings >= 10_000:
		score += 1
	}
	switch {
	case annualIncome >= 1_000_000:
		score += 3
	case annualIncome >= 500_000:
		score += 2
	case annualIncome >= 250_000:
		score += 1
	}
	switch {
	case loans >= 5_000_000:
		score += 3
	case loans >= 1_000_000:
		score += 2
	case loans >= 100_000:
		score += 1
	}

	switch {
	case score >= 8:
		return LabelHigh
	case score >= 4:
		return LabelMedium
	default:
		return LabelLow
	}
}
