package domain

import "github.com/shopspring/decimal"

// LeadStats is an aggregate view over one user's leads. Amounts are summed
// from the "amount" field of quote and invoice payloads.
type LeadStats struct {
	Total         int                `json:"total"`
	ByStatus      map[ChatStatus]int `json:"byStatus"`
	TotalQuoted   decimal.Decimal    `json:"totalQuoted"`
	TotalInvoiced decimal.Decimal    `json:"totalInvoiced"`
}
