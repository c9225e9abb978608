package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/siblingk/chatbot-sub001/internal/domain"
)

// Stats aggregates a user's leads: counts per status and money totals summed
// from the amount field of quote and invoice payloads.
func (s *LeadService) Stats(ctx context.Context, userID string) (*domain.LeadStats, error) {
	leads, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user leads: %w", err)
	}

	stats := &domain.LeadStats{
		ByStatus:      make(map[domain.ChatStatus]int),
		TotalQuoted:   decimal.Zero,
		TotalInvoiced: decimal.Zero,
	}
	for _, lead := range leads {
		stats.Total++
		stats.ByStatus[lead.Status]++
		stats.TotalQuoted = stats.TotalQuoted.Add(payloadAmount(lead.QuoteData))
		stats.TotalInvoiced = stats.TotalInvoiced.Add(payloadAmount(lead.InvoiceData))
	}
	return stats, nil
}

// payloadAmount pulls the amount out of a stage payload. Payloads without a
// numeric amount count as zero.
func payloadAmount(data json.RawMessage) decimal.Decimal {
	if len(data) == 0 {
		return decimal.Zero
	}
	var p struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return decimal.Zero
	}
	return p.Amount
}
