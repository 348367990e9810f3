package database

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/leadgrid/ingestion-api/internal/entity"
)

// createLeadsTable is idempotent and runs before every write.
const createLeadsTable = `
	CREATE TABLE IF NOT EXISTS leads (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		company TEXT NOT NULL,
		website TEXT NOT NULL,
		phone TEXT NOT NULL,
		correlation_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

type LeadRepository struct {
	DB *sql.DB
}

// NewLeadRepository wires a sql.DB. A nil db is valid and puts the
// repository into storeless mode.
func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Available() bool {
	return r.DB != nil
}

// Upsert inserts or updates the row for lead.Email in a single
// statement, so two concurrent ingestions of the same email cannot
// both insert. created_at is absent from the update set and keeps its
// first-insert value; RETURNING hands back the stored identity and
// that original timestamp.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	if _, err := r.DB.ExecContext(ctx, createLeadsTable); err != nil {
		return fmt.Errorf("ensure leads table: %w", err)
	}

	query := `
		INSERT INTO leads (email, name, company, website, phone, correlation_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email)
		DO UPDATE SET
			name = EXCLUDED.name,
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			phone = EXCLUDED.phone,
			correlation_id = EXCLUDED.correlation_id
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.Email,
		lead.Name,
		lead.Company,
		lead.Website,
		lead.Phone,
		lead.CorrelationID,
	).Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}

	return nil
}

// applyFilter translates the filter into squirrel predicates. List and
// Count both go through it, so the page and the total are always
// computed over the same conjunction.
func applyFilter(builder sq.SelectBuilder, filter entity.ListFilter) sq.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"email": pattern},
			sq.ILike{"name": pattern},
			sq.ILike{"company": pattern},
			sq.ILike{"website": pattern},
		})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.DateTo})
	}
	return builder
}

// List returns one page in descending identity order, newest insert
// first.
func (r *LeadRepository) List(ctx context.Context, filter entity.ListFilter, limit, offset int) ([]entity.Lead, error) {
	builder := applyFilter(
		sq.Select("id", "email", "name", "company", "website", "phone", "correlation_id", "created_at").
			From("leads").
			PlaceholderFormat(sq.Dollar),
		filter,
	).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0, limit)
	for rows.Next() {
		var lead entity.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Email,
			&lead.Name,
			&lead.Company,
			&lead.Website,
			&lead.Phone,
			&lead.CorrelationID,
			&lead.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return leads, nil
}

func (r *LeadRepository) Count(ctx context.Context, filter entity.ListFilter) (int64, error) {
	builder := applyFilter(
		sq.Select("COUNT(*)").From("leads").PlaceholderFormat(sq.Dollar),
		filter,
	)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}

	return total, nil
}

// CountBySource groups lead counts per ingestion source. The table
// does not carry a source column yet, so this is a single bucket.
func (r *LeadRepository) CountBySource(ctx context.Context) ([]entity.SourceCount, error) {
	total, err := r.Count(ctx, entity.ListFilter{})
	if err != nil {
		return nil, err
	}
	return []entity.SourceCount{{Source: entity.Source, Count: total}}, nil
}
