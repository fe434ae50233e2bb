// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
// The snapshot is spread over one table per entity and rewritten in full on
// every save, inside a single transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	migrated bool
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories; the schema is set up lazily on first
// use so that a corrupt database surfaces as a load error, not a startup one.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the pragma and the transaction on the same handle.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Location returns the database file path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	if s.migrated {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := runMigrations(s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.migrated = true
	return nil
}

// Load reads every table into a snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return snapshot, nil
}

func (s *SQLiteStore) load(ctx context.Context) (*models.Snapshot, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	snapshot := models.NewSnapshot()
	if err := s.loadProducts(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := s.loadCustomers(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := s.loadBills(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := s.loadSequences(ctx, snapshot); err != nil {
		return nil, err
	}

	snapshot.Normalize()
	return snapshot, nil
}

func (s *SQLiteStore) loadProducts(ctx context.Context, snapshot *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, name, category, price, stock, mfg_date, expiry_date, gst_rate
		 FROM products ORDER BY product_id`,
	)
	if err != nil {
		return fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock,
			&p.MfgDate, &p.ExpiryDate, &p.GSTRate); err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}
		snapshot.Products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate products: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadCustomers(ctx context.Context, snapshot *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT customer_id, name, phone, address, credit_balance, is_regular
		 FROM customers ORDER BY customer_id`,
	)
	if err != nil {
		return fmt.Errorf("failed to get customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreditBalance, &c.IsRegular); err != nil {
			return fmt.Errorf("failed to scan customer: %w", err)
		}
		snapshot.Customers[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate customers: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadBills(ctx context.Context, snapshot *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, customer_id, date, total, gst, discount FROM bills ORDER BY bill_id",
	)
	if err != nil {
		return fmt.Errorf("failed to get bills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.Date, &b.Total, &b.GST, &b.Discount); err != nil {
			return fmt.Errorf("failed to scan bill: %w", err)
		}
		b.Items = []models.LineItem{}
		snapshot.Bills[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate bills: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, product_id, quantity FROM bill_items ORDER BY bill_id, position",
	)
	if err != nil {
		return fmt.Errorf("failed to get bill items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var billID string
		var item models.LineItem
		if err := itemRows.Scan(&billID, &item.ProductID, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan bill item: %w", err)
		}
		bill, ok := snapshot.Bills[billID]
		if !ok {
			return fmt.Errorf("bill item references missing bill %s", billID)
		}
		bill.Items = append(bill.Items, item)
		snapshot.Bills[billID] = bill
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate bill items: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadSequences(ctx context.Context, snapshot *models.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, "SELECT entity, value FROM sequences")
	if err != nil {
		return fmt.Errorf("failed to get sequences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entity string
		var value int
		if err := rows.Scan(&entity, &value); err != nil {
			return fmt.Errorf("failed to scan sequence: %w", err)
		}
		switch entity {
		case "products":
			snapshot.Sequences.Products = value
		case "customers":
			snapshot.Sequences.Customers = value
		case "bills":
			snapshot.Sequences.Bills = value
		default:
			return fmt.Errorf("unknown sequence %q", entity)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate sequences: %w", err)
	}
	return nil
}

// Save replaces every table's contents with the snapshot in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if err := s.save(ctx, snapshot); err != nil {
		return &models.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, snapshot *models.Snapshot) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"bill_items", "bills", "customers", "products", "sequences"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(snapshot.Products)) {
		p := snapshot.Products[id]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO products (product_id, name, category, price, stock, mfg_date, expiry_date, gst_rate)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Name, p.Category, p.Price.String(), p.Stock, p.MfgDate, p.ExpiryDate, p.GSTRate.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(snapshot.Customers)) {
		c := snapshot.Customers[id]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO customers (customer_id, name, phone, address, credit_balance, is_regular)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, c.Name, c.Phone, c.Address, c.CreditBalance.String(), c.IsRegular,
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer: %w", err)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(snapshot.Bills)) {
		b := snapshot.Bills[id]
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bills (bill_id, customer_id, date, total, gst, discount) VALUES (?, ?, ?, ?, ?, ?)",
			id, b.CustomerID, b.Date, b.Total.String(), b.GST.String(), b.Discount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		for pos, item := range b.Items {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO bill_items (bill_id, position, product_id, quantity) VALUES (?, ?, ?, ?)",
				id, pos, item.ProductID, item.Quantity.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert bill item: %w", err)
			}
		}
	}

	sequences := map[string]int{
		"products":  snapshot.Sequences.Products,
		"customers": snapshot.Sequences.Customers,
		"bills":     snapshot.Sequences.Bills,
	}
	for entity, value := range sequences {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sequences (entity, value) VALUES (?, ?)", entity, value,
		); err != nil {
			return fmt.Errorf("failed to insert sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
