package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/models"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the production Store backed by a single SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	amount REAL NOT NULL,
	account TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL
);
CREATE TABLE IF NOT EXISTS merchant_mappings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	merchant_pattern TEXT UNIQUE NOT NULL,
	category TEXT NOT NULL,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	last_used TEXT DEFAULT CURRENT_TIMESTAMP
);
`

// OpenSQLite opens (and if needed initializes) the database at path.
// WAL mode and a busy timeout keep concurrent CLI invocations from tripping
// over SQLite locking.
func OpenSQLite(path string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count == 0 {
		s.logger.Info("Seeding default categories",
			logging.Field{Key: "count", Value: len(models.DefaultCategories)})
		for _, name := range models.DefaultCategories {
			if _, err := s.db.Exec("INSERT INTO categories (name) VALUES (?)", name); err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Categories returns all category names in alphabetical order.
func (s *SQLiteStore) Categories() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close rows")
		}
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ensureUncategorized(names), nil
}

// ensureUncategorized guarantees the Uncategorized sentinel is always part
// of a category listing even though it is never stored as a row.
func ensureUncategorized(names []string) []string {
	for _, name := range names {
		if name == models.CategoryUncategorized {
			return names
		}
	}
	return append([]string{models.CategoryUncategorized}, names...)
}

// AddCategory inserts a new category. Inserting an existing name is a no-op.
func (s *SQLiteStore) AddCategory(name string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO categories (name) VALUES (?)", name)
	if err != nil {
		return fmt.Errorf("failed to add category %q: %w", name, err)
	}
	return nil
}

// RenameCategory renames a category and moves its transactions along.
func (s *SQLiteStore) RenameCategory(oldName, newName string) error {
	res, err := s.db.Exec("UPDATE categories SET name = ? WHERE name = ?", newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %q not found", oldName)
	}
	_, err = s.db.Exec("UPDATE transactions SET category = ? WHERE category = ?", newName, oldName)
	return err
}

// DeleteCategory removes a category and reassigns its transactions to the
// Uncategorized sentinel, which itself can never be deleted.
func (s *SQLiteStore) DeleteCategory(name string) error {
	if strings.EqualFold(name, models.CategoryUncategorized) {
		return fmt.Errorf("the %s category cannot be deleted", models.CategoryUncategorized)
	}
	res, err := s.db.Exec("DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %q not found", name)
	}
	_, err = s.db.Exec("UPDATE transactions SET category = ? WHERE category = ?",
		models.CategoryUncategorized, name)
	return err
}

// Transactions returns the full transaction history.
func (s *SQLiteStore) Transactions() ([]models.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, date, description, category, amount, account, source, created_at
		FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close rows")
		}
	}()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amount float64
		var created string
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Description, &tx.Category,
			&amount, &tx.Account, &tx.Source, &created); err != nil {
			return nil, err
		}
		tx.Amount = decimal.NewFromFloat(amount)
		tx.CreatedAt = parseSQLiteTime(created)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// AddTransaction inserts a transaction row and returns its id.
func (s *SQLiteStore) AddTransaction(tx models.Transaction) (int64, error) {
	amount, _ := tx.Amount.Float64()
	res, err := s.db.Exec(`INSERT INTO transactions (date, description, category, amount, account, source)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Date, tx.Description, tx.Category, amount, tx.Account, tx.Source)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return res.LastInsertId()
}

// UpdateTransactionCategory sets the category of a single transaction.
func (s *SQLiteStore) UpdateTransactionCategory(id int64, category string) (bool, error) {
	res, err := s.db.Exec("UPDATE transactions SET category = ? WHERE id = ?", category, id)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Mappings returns all merchant mappings ordered by most recently used.
func (s *SQLiteStore) Mappings() ([]models.MerchantMapping, error) {
	rows, err := s.db.Query(`SELECT id, merchant_pattern, category, created_at, last_used
		FROM merchant_mappings ORDER BY last_used DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchant mappings: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close rows")
		}
	}()

	var mappings []models.MerchantMapping
	for rows.Next() {
		var m models.MerchantMapping
		var created, used string
		if err := rows.Scan(&m.ID, &m.Pattern, &m.Category, &created, &used); err != nil {
			return nil, err
		}
		m.CreatedAt = parseSQLiteTime(created)
		m.LastUsed = parseSQLiteTime(used)
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// UpsertMapping inserts a pattern or updates the category of an existing one.
// Patterns are normalized to uppercase before storage.
func (s *SQLiteStore) UpsertMapping(pattern, category string) error {
	_, err := s.db.Exec(`INSERT INTO merchant_mappings (merchant_pattern, category)
		VALUES (?, ?)
		ON CONFLICT(merchant_pattern) DO UPDATE SET category = excluded.category`,
		strings.ToUpper(pattern), category)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping %q: %w", pattern, err)
	}
	return nil
}

// DeleteMapping removes a mapping by pattern.
func (s *SQLiteStore) DeleteMapping(pattern string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM merchant_mappings WHERE merchant_pattern = ?",
		strings.ToUpper(pattern))
	if err != nil {
		return false, fmt.Errorf("failed to delete mapping %q: %w", pattern, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RenameMapping changes a mapping's pattern and category in one step.
func (s *SQLiteStore) RenameMapping(oldPattern, newPattern, category string) (bool, error) {
	res, err := s.db.Exec(`UPDATE merchant_mappings SET merchant_pattern = ?, category = ?
		WHERE merchant_pattern = ?`,
		strings.ToUpper(newPattern), category, strings.ToUpper(oldPattern))
	if err != nil {
		return false, fmt.Errorf("failed to rename mapping %q: %w", oldPattern, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// TouchMapping refreshes the last_used timestamp of a pattern.
func (s *SQLiteStore) TouchMapping(pattern string) error {
	_, err := s.db.Exec(`UPDATE merchant_mappings SET last_used = CURRENT_TIMESTAMP
		WHERE merchant_pattern = ?`, strings.ToUpper(pattern))
	return err
}

func parseSQLiteTime(v string) (t time.Time) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if parsed, err := time.Parse(layout, v); err == nil {
			return parsed
		}
	}
	return t
}
