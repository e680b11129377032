package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS catalog_audit_log (
    id          UUID PRIMARY KEY,
    action      TEXT NOT NULL,
    outcome     TEXT NOT NULL,
    product_id  INTEGER,
    title       TEXT,
    price       TEXT,
    error_code  TEXT,
    error       TEXT,
    item_count  INTEGER,
    request_id  TEXT,
    ip_address  TEXT,
    user_agent  TEXT,
    duration_ms BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS catalog_audit_log_created_at_idx ON catalog_audit_log (created_at DESC);
`

const insertSQL = `
INSERT INTO catalog_audit_log (
    id, action, outcome, product_id, title, price, error_code, error,
    item_count, request_id, ip_address, user_agent, duration_ms, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const recentSQL = `
SELECT id, action, outcome, product_id, title, price, error_code, error,
       item_count, request_id, ip_address, user_agent, duration_ms, created_at
FROM catalog_audit_log
ORDER BY created_at DESC
LIMIT $1`

// Postgres writes audit entries to the catalog_audit_log table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a recorder backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the audit table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// Record inserts e.
func (p *Postgres) Record(ctx context.Context, e Entry) error {
	e = Stamp(ctx, e)

	_, err := p.pool.Exec(ctx, insertSQL,
		pgtype.UUID{Bytes: e.ID, Valid: true},
		string(e.Action),
		string(e.Outcome),
		toPgInt4(e.ProductID),
		toPgText(e.Title),
		toPgText(e.Price),
		toPgText(e.ErrorCode),
		toPgText(e.Error),
		toPgInt4(e.Count),
		toPgText(e.RequestID),
		toPgText(e.IPAddress),
		toPgText(e.UserAgent),
		e.Duration,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := p.pool.Query(ctx, recentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("scan audit log: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.CollectableRow) (Entry, error) {
	var e Entry
	var id pgtype.UUID
	var action, outcome string
	var productID, count pgtype.Int4
	var title, price, code, msg, reqID, ip, ua pgtype.Text

	err := row.Scan(&id, &action, &outcome, &productID, &title, &price, &code, &msg,
		&count, &reqID, &ip, &ua, &e.Duration, &e.CreatedAt)
	if err != nil {
		return Entry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.Action = Action(action)
	e.Outcome = Outcome(outcome)
	e.ProductID = int(productID.Int32)
	e.Count = int(count.Int32)
	e.Title = title.String
	e.Price = price.String
	e.ErrorCode = code.String
	e.Error = msg.String
	e.RequestID = reqID.String
	e.IPAddress = ip.String
	e.UserAgent = ua.String
	return e, nil
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func toPgInt4(i int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(i), Valid: i != 0}
}
