package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siblingk/chatbot-sub001/internal/domain"
)

type DashboardOptions struct {
	pool *pgxpool.Pool
}

func NewDashboardOptions(pool *pgxpool.Pool) *DashboardOptions {
	return &DashboardOptions{pool: pool}
}

func (r *DashboardOptions) ListActive(ctx context.Context) ([]domain.DashboardOption, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, label, response, active, sort_order
		 FROM dashboard_options WHERE active ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list dashboard options: %w", err)
	}
	defer rows.Close()

	var options []domain.DashboardOption
	for rows.Next() {
		var o domain.DashboardOption
		if err := rows.Scan(&o.ID, &o.Label, &o.Response, &o.Active, &o.SortOrder); err != nil {
			return nil, fmt.Errorf("scan dashboard option: %w", err)
		}
		options = append(options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dashboard options: %w", err)
	}
	return options, nil
}

func (r *DashboardOptions) GetByID(ctx context.Context, id int64) (*domain.DashboardOption, error) {
	var o domain.DashboardOption
	err := r.pool.QueryRow(ctx,
		`SELECT id, label, response, active, sort_order
		 FROM dashboard_options WHERE id = $1`, id).
		Scan(&o.ID, &o.Label, &o.Response, &o.Active, &o.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOptionNotFound
		}
		return nil, fmt.Errorf("get dashboard option: %w", err)
	}
	return &o, nil
}
