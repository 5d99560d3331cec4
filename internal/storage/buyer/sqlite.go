package buyer

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// SQLiteStore persists buyers in a sqlite database. List fields are
// stored as JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) ensureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS buyers (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL DEFAULT '',
  contact TEXT NOT NULL DEFAULT '',
  property_types_json TEXT NOT NULL DEFAULT '[]',
  price_floor INTEGER NOT NULL DEFAULT 0,
  price_ceiling INTEGER NOT NULL DEFAULT 0,
  target_states_json TEXT NOT NULL DEFAULT '[]',
  target_cities_json TEXT NOT NULL DEFAULT '[]',
  deal_types_json TEXT NOT NULL DEFAULT '[]',
  verified INTEGER NOT NULL DEFAULT 0,
  proof_of_funds INTEGER NOT NULL DEFAULT 0,
  rating REAL,
  closed_deals INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_buyers_verified ON buyers(verified);`); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

// Save inserts or replaces a buyer by ID.
func (s *SQLiteStore) Save(ctx context.Context, b core.Buyer) error {
	if b.ID == "" {
		return core.WrapError(core.ErrStorageFailed, errEmptyID)
	}

	types, _ := json.Marshal(b.PropertyTypes)
	states, _ := json.Marshal(b.TargetStates)
	cities, _ := json.Marshal(b.TargetCities)
	deals, _ := json.Marshal(b.DealTypes)

	_, err := s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO buyers
(id, display_name, contact, property_types_json, price_floor, price_ceiling,
 target_states_json, target_cities_json, deal_types_json, verified, proof_of_funds, rating, closed_deals)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		b.ID, b.DisplayName, b.Contact, string(types), int64(b.PriceFloor), int64(b.PriceCeiling),
		string(states), string(cities), string(deals), b.Verified, b.ProofOfFunds, b.Rating, b.ClosedDeals,
	)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

const buyerColumns = `id, display_name, contact, property_types_json, price_floor, price_ceiling,
 target_states_json, target_cities_json, deal_types_json, verified, proof_of_funds, rating, closed_deals`

// GetByID retrieves a buyer by ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*core.Buyer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+buyerColumns+` FROM buyers WHERE id = ?`, id)
	b, err := scanBuyer(row.Scan)
	if err == sql.ErrNoRows {
		return nil, core.ErrBuyerNotFound
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return &b, nil
}

// List returns buyers matching the filter in ascending ID order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]core.Buyer, error) {
	whereSQL, args := filterSQL(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+buyerColumns+` FROM buyers `+whereSQL+` ORDER BY id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	defer rows.Close()

	var out []core.Buyer
	for rows.Next() {
		b, err := scanBuyer(rows.Scan)
		if err != nil {
			return nil, core.WrapError(core.ErrStorageFailed, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return out, nil
}

// Count returns the number of buyers matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	whereSQL, args := filterSQL(filter)
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM buyers `+whereSQL, args...).Scan(&n)
	if err != nil {
		return 0, core.WrapError(core.ErrStorageFailed, err)
	}
	return n, nil
}

// Delete removes a buyer by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM buyers WHERE id = ?`, id); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

// filterSQL builds the WHERE clause. JSON list columns are matched with
// LIKE on the quoted element, which is exact for the uppercase state and
// lowercase city canonical forms.
func filterSQL(filter ListFilter) (string, []any) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.State != "" {
		where = append(where, `target_states_json LIKE '%"' || ? || '"%'`)
		args = append(args, strings.ToUpper(filter.State))
	}
	if filter.City != "" {
		where = append(where, `(target_cities_json = '[]' OR target_cities_json IS NULL OR target_cities_json LIKE '%"' || ? || '"%')`)
		args = append(args, strings.ToLower(filter.City))
	}
	if filter.PropertyType != "" {
		where = append(where, `property_types_json LIKE '%"' || ? || '"%'`)
		args = append(args, string(filter.PropertyType))
	}
	if filter.Verified != nil {
		where = append(where, `verified = ?`)
		args = append(args, *filter.Verified)
	}

	if len(where) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

func scanBuyer(scan func(dest ...any) error) (core.Buyer, error) {
	var b core.Buyer
	var types, states, cities, deals string
	var floor, ceiling int64

	err := scan(
		&b.ID, &b.DisplayName, &b.Contact, &types, &floor, &ceiling,
		&states, &cities, &deals, &b.Verified, &b.ProofOfFunds, &b.Rating, &b.ClosedDeals,
	)
	if err != nil {
		return core.Buyer{}, err
	}

	b.PriceFloor = core.Money(floor)
	b.PriceCeiling = core.Money(ceiling)
	_ = json.Unmarshal([]byte(types), &b.PropertyTypes)
	_ = json.Unmarshal([]byte(states), &b.TargetStates)
	_ = json.Unmarshal([]byte(cities), &b.TargetCities)
	_ = json.Unmarshal([]byte(deals), &b.DealTypes)
	return b, nil
}
