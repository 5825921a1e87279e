/*
Package sqlite provides a SQLite-backed ledger store and snapshot loader.

PURPOSE:
  Persists the six record kinds (properties, units, leases, rent
  payments, expenses, maintenance requests) and assembles one immutable
  ledger.Snapshot per report request. In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  ledger.Loader: Snapshot assembly (the engine's only I/O boundary)

KEY TABLES:
  properties, units, leases, rent_payments, expenses,
  maintenance_requests - all keyed by owner_id.

AMOUNT STORAGE:
  Monetary amounts are stored as TEXT decimal strings and parsed back
  with ledger.MustParseDecimal, so no precision is lost round-tripping.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time.

SEE ALSO:
  - ledger/loader.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// Store implements record persistence and snapshot loading over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_properties_owner ON properties(owner_id);

	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		property_id TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_units_owner ON units(owner_id);

	CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		security_deposit TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_leases_owner ON leases(owner_id);

	CREATE TABLE IF NOT EXISTS rent_payments (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		lease_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		due_date TEXT,
		paid_date TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		late_fee_amount TEXT NOT NULL DEFAULT '0',
		application_fee_amount TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_rent_payments_owner_due ON rent_payments(owner_id, due_date);

	CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		property_id TEXT,
		maintenance_request_id TEXT,
		amount TEXT NOT NULL,
		description TEXT,
		expense_date TEXT,
		created_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_expenses_owner_date ON expenses(owner_id, expense_date);

	CREATE TABLE IF NOT EXISTS maintenance_requests (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		completed_at TEXT,
		created_at TEXT,
		actual_cost TEXT,
		estimated_cost TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_maintenance_owner ON maintenance_requests(owner_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT LOADING - ledger.Loader
// =============================================================================

// LoadSnapshot assembles one immutable snapshot of the owner's ledger.
// An owner with no rows gets an empty snapshot (and therefore zeroed
// statements), not an error.
func (s *Store) LoadSnapshot(ctx context.Context, ownerID string) (*ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &ledger.Snapshot{OwnerID: ownerID}
	var err error

	if snap.Properties, err = s.loadProperties(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Units, err = s.loadUnits(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Leases, err = s.loadLeases(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.RentPayments, err = s.loadRentPayments(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.Expenses, err = s.loadExpenses(ctx, ownerID); err != nil {
		return nil, err
	}
	if snap.MaintenanceRequests, err = s.loadMaintenanceRequests(ctx, ownerID); err != nil {
		return nil, err
	}

	return snap, nil
}

var _ ledger.Loader = (*Store)(nil)

func (s *Store) loadProperties(ctx context.Context, ownerID string) ([]ledger.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(created_at, '') FROM properties WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Property
	for rows.Next() {
		var p ledger.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) loadUnits(ctx context.Context, ownerID string) ([]ledger.Unit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, property_id FROM units WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Unit
	for rows.Next() {
		var u ledger.Unit
		if err := rows.Scan(&u.ID, &u.PropertyID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) loadLeases(ctx context.Context, ownerID string) ([]ledger.Lease, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_id, security_deposit FROM leases WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Lease
	for rows.Next() {
		var l ledger.Lease
		var deposit string
		if err := rows.Scan(&l.ID, &l.UnitID, &deposit); err != nil {
			return nil, err
		}
		l.SecurityDeposit = ledger.MustParseDecimal(deposit)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) loadRentPayments(ctx context.Context, ownerID string) ([]ledger.RentPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lease_id, amount, COALESCE(due_date, ''), COALESCE(paid_date, ''),
		        status, late_fee_amount, application_fee_amount
		   FROM rent_payments WHERE owner_id = ? ORDER BY due_date, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.RentPayment
	for rows.Next() {
		var p ledger.RentPayment
		var amount, lateFee, appFee string
		if err := rows.Scan(&p.ID, &p.LeaseID, &amount, &p.DueDate, &p.PaidDate,
			&p.Status, &lateFee, &appFee); err != nil {
			return nil, err
		}
		p.Amount = ledger.MustParseDecimal(amount)
		p.LateFeeAmount = ledger.MustParseDecimal(lateFee)
		p.ApplicationFeeAmount = ledger.MustParseDecimal(appFee)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) loadExpenses(ctx context.Context, ownerID string) ([]ledger.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(property_id, ''), COALESCE(maintenance_request_id, ''),
		        amount, COALESCE(description, ''), COALESCE(expense_date, ''), COALESCE(created_at, '')
		   FROM expenses WHERE owner_id = ? ORDER BY expense_date, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Expense
	for rows.Next() {
		var e ledger.Expense
		var amount string
		if err := rows.Scan(&e.ID, &e.PropertyID, &e.MaintenanceRequestID,
			&amount, &e.Description, &e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Amount = ledger.MustParseDecimal(amount)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) loadMaintenanceRequests(ctx context.Context, ownerID string) ([]ledger.MaintenanceRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_id, status, COALESCE(completed_at, ''), COALESCE(created_at, ''),
		        actual_cost, estimated_cost
		   FROM maintenance_requests WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.MaintenanceRequest
	for rows.Next() {
		var m ledger.MaintenanceRequest
		var actual, estimated sql.NullString
		if err := rows.Scan(&m.ID, &m.UnitID, &m.Status, &m.CompletedAt, &m.CreatedAt,
			&actual, &estimated); err != nil {
			return nil, err
		}
		m.ActualCost = nullDecimal(actual)
		m.EstimatedCost = nullDecimal(estimated)
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullDecimal(v sql.NullString) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := ledger.MustParseDecimal(v.String)
	return &d
}

// =============================================================================
// RECORD PERSISTENCE - Used by the seeding API and scenario loader
// =============================================================================

// SaveProperty inserts or replaces a property.
func (s *Store) SaveProperty(ctx context.Context, ownerID string, p ledger.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO properties (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, ownerID, p.Name, p.CreatedAt)
	return err
}

// SaveUnit inserts or replaces a unit.
func (s *Store) SaveUnit(ctx context.Context, ownerID string, u ledger.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO units (id, owner_id, property_id) VALUES (?, ?, ?)`,
		u.ID, ownerID, u.PropertyID)
	return err
}

// SaveLease inserts or replaces a lease.
func (s *Store) SaveLease(ctx context.Context, ownerID string, l ledger.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO leases (id, owner_id, unit_id, security_deposit) VALUES (?, ?, ?, ?)`,
		l.ID, ownerID, l.UnitID, l.SecurityDeposit.String())
	return err
}

// SaveRentPayment inserts or replaces a rent payment.
func (s *Store) SaveRentPayment(ctx context.Context, ownerID string, p ledger.RentPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO rent_payments
		 (id, owner_id, lease_id, amount, due_date, paid_date, status, late_fee_amount, application_fee_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, ownerID, p.LeaseID, p.Amount.String(), p.DueDate, p.PaidDate,
		p.Status, p.LateFeeAmount.String(), p.ApplicationFeeAmount.String())
	return err
}

// SaveExpense inserts or replaces an expense.
func (s *Store) SaveExpense(ctx context.Context, ownerID string, e ledger.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO expenses
		 (id, owner_id, property_id, maintenance_request_id, amount, description, expense_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, ownerID, e.PropertyID, e.MaintenanceRequestID, e.Amount.String(),
		e.Description, e.ExpenseDate, e.CreatedAt)
	return err
}

// SaveMaintenanceRequest inserts or replaces a maintenance request.
func (s *Store) SaveMaintenanceRequest(ctx context.Context, ownerID string, m ledger.MaintenanceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO maintenance_requests
		 (id, owner_id, unit_id, status, completed_at, created_at, actual_cost, estimated_cost)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, ownerID, m.UnitID, m.Status, m.CompletedAt, m.CreatedAt,
		decimalString(m.ActualCost), decimalString(m.EstimatedCost))
	return err
}

func decimalString(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// SeedSnapshot persists every row of a snapshot under its owner.
// Used by the scenario loader and tests.
func (s *Store) SeedSnapshot(ctx context.Context, snap *ledger.Snapshot) error {
	for _, p := range snap.Properties {
		if err := s.SaveProperty(ctx, snap.OwnerID, p); err != nil {
			return err
		}
	}
	for _, u := range snap.Units {
		if err := s.SaveUnit(ctx, snap.OwnerID, u); err != nil {
			return err
		}
	}
	for _, l := range snap.Leases {
		if err := s.SaveLease(ctx, snap.OwnerID, l); err != nil {
			return err
		}
	}
	for _, m := range snap.MaintenanceRequests {
		if err := s.SaveMaintenanceRequest(ctx, snap.OwnerID, m); err != nil {
			return err
		}
	}
	for _, p := range snap.RentPayments {
		if err := s.SaveRentPayment(ctx, snap.OwnerID, p); err != nil {
			return err
		}
	}
	for _, e := range snap.Expenses {
		if err := s.SaveExpense(ctx, snap.OwnerID, e); err != nil {
			return err
		}
	}
	return nil
}

// Reset deletes every row in every table. Dev/demo only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, table := range []string{
		"rent_payments", "expenses", "maintenance_requests", "leases", "units", "properties",
	} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
