// Package repository provides the Postgres-backed persistence layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siblingk/chatbot-sub001/internal/domain"
)

type Leads struct {
	pool *pgxpool.Pool
}

func NewLeads(pool *pgxpool.Pool) *Leads {
	return &Leads{pool: pool}
}

const leadColumns = `id, session_id, user_id, status, prequote_data, prequote_date,
	appointment_data, appointment_date, quote_data, last_quote_date, quote_count,
	invoice_data, invoice_date, created_at, updated_at`

func (r *Leads) GetBySessionID(ctx context.Context, sessionID string) (*domain.ChatLead, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE session_id = $1`, sessionID)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("get lead by session: %w", err)
	}
	return lead, nil
}

func (r *Leads) ListByUser(ctx context.Context, userID string) ([]domain.ChatLead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list leads by user: %w", err)
	}
	defer rows.Close()

	var leads []domain.ChatLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads by user: %w", err)
	}
	return leads, nil
}

func (r *Leads) Insert(ctx context.Context, lead *domain.ChatLead) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		lead.ID,
		lead.SessionID,
		lead.UserID,
		string(lead.Status),
		lead.PreQuoteData,
		timePtrToPgTimestamptz(lead.PreQuoteDate),
		lead.AppointmentData,
		timePtrToPgTimestamptz(lead.AppointmentDate),
		lead.QuoteData,
		timePtrToPgTimestamptz(lead.LastQuoteDate),
		lead.QuoteCount,
		lead.InvoiceData,
		timePtrToPgTimestamptz(lead.InvoiceDate),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Update writes the whole row. Last writer wins; a single browser tab is
// expected to be the sole writer per session.
func (r *Leads) Update(ctx context.Context, lead *domain.ChatLead) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE leads SET
			status = $2,
			prequote_data = $3, prequote_date = $4,
			appointment_data = $5, appointment_date = $6,
			quote_data = $7, last_quote_date = $8, quote_count = $9,
			invoice_data = $10, invoice_date = $11,
			updated_at = $12
		 WHERE id = $1`,
		lead.ID,
		string(lead.Status),
		lead.PreQuoteData,
		timePtrToPgTimestamptz(lead.PreQuoteDate),
		lead.AppointmentData,
		timePtrToPgTimestamptz(lead.AppointmentDate),
		lead.QuoteData,
		timePtrToPgTimestamptz(lead.LastQuoteDate),
		lead.QuoteCount,
		lead.InvoiceData,
		timePtrToPgTimestamptz(lead.InvoiceDate),
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// scanLead is the single deserialization boundary for lead rows: nullable
// timestamps come out of the driver as pgtype.Timestamptz and leave here as
// fully typed *time.Time.
func scanLead(row pgx.Row) (*domain.ChatLead, error) {
	var (
		lead            domain.ChatLead
		status          string
		prequoteDate    pgtype.Timestamptz
		appointmentDate pgtype.Timestamptz
		lastQuoteDate   pgtype.Timestamptz
		invoiceDate     pgtype.Timestamptz
	)
	err := row.Scan(
		&lead.ID,
		&lead.SessionID,
		&lead.UserID,
		&status,
		&lead.PreQuoteData,
		&prequoteDate,
		&lead.AppointmentData,
		&appointmentDate,
		&lead.QuoteData,
		&lastQuoteDate,
		&lead.QuoteCount,
		&lead.InvoiceData,
		&invoiceDate,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Status = domain.ChatStatus(status)
	lead.PreQuoteDate = pgTimestamptzToTimePtr(prequoteDate)
	lead.AppointmentDate = pgTimestamptzToTimePtr(appointmentDate)
	lead.LastQuoteDate = pgTimestamptzToTimePtr(lastQuoteDate)
	lead.InvoiceDate = pgTimestamptzToTimePtr(invoiceDate)
	return &lead, nil
}
