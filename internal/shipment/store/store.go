package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

const (
	// SQLSTATE unique_violation.
	uniqueViolation = "23505"
	codeConstraint  = "shipments_shipment_code_key"

	// Arbitrary but fixed key serializing bulk imports.
	importLockKey int64 = 0x5348495054524b
)

type Store struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

// New returns a Store whose current-week filter is evaluated in loc.
func New(db *sql.DB, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}

	return &Store{db: db, loc: loc, now: time.Now}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectShipmentColumns.
func scanShipment(s scanner) (*shipment.Shipment, error) {
	var sh shipment.Shipment

	var recipient, source, company sql.NullString

	if err := s.Scan(
		&sh.ID, &sh.Code, &recipient, &sh.TotalAmount, &sh.ShippingFee,
		&source, &company, &sh.Date, &sh.CreatedAt,
	); err != nil {
		return nil, err
	}

	sh.RecipientName = recipient.String
	sh.PaymentSource = shipment.PaymentSource(source.String)
	sh.IssuingCompany = company.String
	sh.Date = shipment.Day(sh.Date)

	return &sh, nil
}

const selectShipmentColumns = `
	id, shipment_code, recipient_name, total_amount, shipping_fee,
	payment_source, issuing_company, shipment_date, created_at
`

const (
	listAllQuery = `SELECT ` + selectShipmentColumns + `
		FROM shipments
		ORDER BY shipment_date DESC, id DESC`

	listWeekQuery = `SELECT ` + selectShipmentColumns + `
		FROM shipments
		WHERE shipment_date BETWEEN $1::date AND $1::date + 6
		ORDER BY shipment_date DESC, id DESC`

	listRangeQuery = `SELECT ` + selectShipmentColumns + `
		FROM shipments
		WHERE shipment_date BETWEEN $1::date AND $2::date
		ORDER BY shipment_date DESC, id DESC`
)

func (s *Store) ListShipments(ctx context.Context, filter shipment.Filter) ([]*shipment.Shipment, error) {
	var (
		query string
		args  []any
	)

	switch filter.Kind {
	case shipment.FilterNone:
		query = listAllQuery
	case shipment.FilterCurrentWeek:
		monday, _, _ := filter.Bounds(s.now().In(s.loc))
		query = listWeekQuery
		args = []any{formatDate(monday)}
	case shipment.FilterRange:
		query = listRangeQuery
		args = []any{formatDate(filter.Start), formatDate(filter.End)}
	default:
		return nil, fmt.Errorf("unknown filter kind %d", filter.Kind)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shipments: %w", err)
	}
	defer rows.Close()

	shipments := make([]*shipment.Shipment, 0)

	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}

		shipments = append(shipments, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shipment rows: %w", err)
	}

	return shipments, nil
}

const insertShipmentQuery = `
	INSERT INTO shipments (
		shipment_code, recipient_name, total_amount, shipping_fee,
		payment_source, issuing_company, shipment_date
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertShipment(ctx context.Context, q execer, sh *shipment.Shipment) error {
	err := q.QueryRowContext(ctx, insertShipmentQuery,
		sh.Code,
		nullString(sh.RecipientName),
		sh.TotalAmount,
		sh.ShippingFee,
		nullString(string(sh.PaymentSource)),
		nullString(sh.IssuingCompany),
		formatDate(sh.Date),
	).Scan(&sh.ID, &sh.CreatedAt)
	if err != nil {
		if isDuplicateCode(err) {
			return fmt.Errorf("%w: %s", shipment.ErrDuplicateCode, sh.Code)
		}

		return fmt.Errorf("creating shipment: %w", err)
	}

	return nil
}

func (s *Store) CreateShipment(ctx context.Context, sh *shipment.Shipment) error {
	return insertShipment(ctx, s.db, sh)
}

func (s *Store) UpdateShipment(ctx context.Context, sh *shipment.Shipment) error {
	query := `
		UPDATE shipments
		SET shipment_code = $1, recipient_name = $2, total_amount = $3, shipping_fee = $4,
			payment_source = $5, issuing_company = $6, shipment_date = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		sh.Code,
		nullString(sh.RecipientName),
		sh.TotalAmount,
		sh.ShippingFee,
		nullString(string(sh.PaymentSource)),
		nullString(sh.IssuingCompany),
		formatDate(sh.Date),
		sh.ID,
	)
	if err != nil {
		if isDuplicateCode(err) {
			return fmt.Errorf("%w: %s", shipment.ErrDuplicateCode, sh.Code)
		}

		return fmt.Errorf("updating shipment: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteShipment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting shipment: %w", err)
	}

	return requireAffected(res)
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding the import advisory lock until it ends.
func (s *Store) BeginImport(ctx context.Context) (shipment.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindExisting(ctx context.Context, codes []string) ([]*shipment.Shipment, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `SELECT ` + selectShipmentColumns + `
		FROM shipments
		WHERE shipment_code = ANY($1)
		ORDER BY shipment_code`

	rows, err := itx.tx.QueryContext(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("finding existing shipments: %w", err)
	}
	defer rows.Close()

	var existing []*shipment.Shipment

	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}

		existing = append(existing, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating existing rows: %w", err)
	}

	return existing, nil
}

func (itx *importTx) CreateShipments(ctx context.Context, shipments []*shipment.Shipment) error {
	for _, sh := range shipments {
		if err := insertShipment(ctx, itx.tx, sh); err != nil {
			return err
		}
	}

	return nil
}

func isDuplicateCode(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == codeConstraint
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return shipment.ErrNotFound
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
