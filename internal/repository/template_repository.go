package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lnpeers/tplbot/internal/domain"
)

// TemplateRepository defines persistence operations for order templates.
type TemplateRepository interface {
	ByCreator(ctx context.Context, creatorID int64) ([]*domain.Template, error)
	ByID(ctx context.Context, id string) (*domain.Template, error)
	Create(ctx context.Context, tpl *domain.Template) error
	Delete(ctx context.Context, id string) error
}

type templateRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewTemplateRepository creates a SQL-backed template repository.
func NewTemplateRepository(db *sql.DB, log *slog.Logger) TemplateRepository {
	return &templateRepository{
		db:  db,
		log: log,
	}
}

// ByCreator returns all templates owned by the given user, oldest first.
func (r *templateRepository) ByCreator(ctx context.Context, creatorID int64) ([]*domain.Template, error) {
	const query = `
		SELECT id, creator_id, type, fiat_code, fiat_amount, payment_method, price_from_api, price_margin, created_at, updated_at
		FROM order_templates
		WHERE creator_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("select templates by creator: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, nil
}

// ByID returns a single template, or (nil, nil) when it does not exist.
func (r *templateRepository) ByID(ctx context.Context, id string) (*domain.Template, error) {
	const query = `
		SELECT id, creator_id, type, fiat_code, fiat_amount, payment_method, price_from_api, price_margin, created_at, updated_at
		FROM order_templates
		WHERE id = $1
	`

	tpl, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return tpl, nil
}

// Create persists a new template, assigning its id and timestamps.
func (r *templateRepository) Create(ctx context.Context, tpl *domain.Template) error {
	const query = `
		INSERT INTO order_templates (id, creator_id, type, fiat_code, fiat_amount, payment_method, price_from_api, price_margin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if _, err := r.db.ExecContext(
		ctx,
		query,
		tpl.ID,
		tpl.CreatorID,
		string(tpl.Type),
		tpl.FiatCode,
		pq.Array(tpl.FiatAmount),
		tpl.PaymentMethod,
		tpl.PriceFromAPI,
		tpl.PriceMargin,
		tpl.CreatedAt,
		tpl.UpdatedAt,
	); err != nil {
		if r.log != nil {
			r.log.Error("failed to insert template", slog.Int64("creator_id", tpl.CreatorID), slog.Any("error", err))
		}
		return fmt.Errorf("insert template: %w", err)
	}

	return nil
}

// Delete removes a template by id. Deleting a missing row is not an error.
func (r *templateRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM order_templates WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var (
		tpl     domain.Template
		typ     string
		amounts pq.Float64Array
	)

	if err := row.Scan(
		&tpl.ID,
		&tpl.CreatorID,
		&typ,
		&tpl.FiatCode,
		&amounts,
		&tpl.PaymentMethod,
		&tpl.PriceFromAPI,
		&tpl.PriceMargin,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}

	tpl.Type = domain.OrderType(typ)
	tpl.FiatAmount = []float64(amounts)
	return &tpl, nil
}
