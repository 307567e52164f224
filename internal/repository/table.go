package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
	"github.com/noah-isme/sma-clubs/pkg/database"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// QueryObserver receives the outcome of every statement a Table runs.
type QueryObserver interface {
	ObserveQuery(table, operation string, err error, duration time.Duration)
}

// TableOption customises a Table at construction.
type TableOption func(*Table)

// WithLogger sets the logger used for query and failure logs.
func WithLogger(logger *zap.Logger) TableOption {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(observer QueryObserver) TableOption {
	return func(t *Table) {
		t.observer = observer
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Table provides column-agnostic CRUD primitives against one named table.
// Values are always bound as parameters; column names are checked against the
// introspected column list before they reach a statement.
type Table struct {
	db       *sqlx.DB
	name     string
	idColumn string
	columns  []string
	logger   *zap.Logger
	observer QueryObserver
}

// NewTable binds a Table to name and captures its column list. A failed
// introspection is logged and leaves the column list empty.
func NewTable(ctx context.Context, db *sqlx.DB, name, idColumn string, opts ...TableOption) *Table {
	t := &Table{db: db, name: name, idColumn: idColumn, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(zap.String("table", name))

	query := fmt.Sprintf("SELECT * FROM %s WHERE 1=0", name)
	_ = t.run("describe", query, func() error {
		rows, err := db.QueryxContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close() //nolint:errcheck
		columns, err := rows.Columns()
		if err != nil {
			return err
		}
		t.columns = columns
		return rows.Err()
	})
	return t
}

// Name returns the bound table name.
func (t *Table) Name() string { return t.name }

// Columns returns the introspected column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Insert adds one row and returns its generated id, or 0 when the table has no
// generated key.
func (t *Table) Insert(ctx context.Context, attrs models.Attributes) (int64, error) {
	if len(attrs) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("insert into %s requires at least one attribute", t.name))
	}
	keys, err := t.sortedColumns(attrs)
	if err != nil {
		return 0, err
	}
	args := make([]interface{}, len(keys))
	placeholders := make([]string, len(keys))
	for i, k := range keys {
		args[i] = attrs[k]
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(keys, ", "), strings.Join(placeholders, ", "))

	var id int64
	if t.db.DriverName() == "postgres" && t.idColumn != "" {
		query += " RETURNING " + t.idColumn
		err = t.run("insert", query, func() error {
			return t.db.QueryRowxContext(ctx, t.db.Rebind(query), args...).Scan(&id)
		})
		return id, err
	}

	err = t.run("insert", query, func() error {
		res, err := t.db.ExecContext(ctx, t.db.Rebind(query), args...)
		if err != nil {
			return err
		}
		if t.idColumn != "" {
			if lastID, idErr := res.LastInsertId(); idErr == nil {
				id = lastID
			}
		}
		return nil
	})
	return id, err
}

// Select returns rows whose columns equal every condition.
func (t *Table) Select(ctx context.Context, conds models.Attributes) (*models.ResultSet, error) {
	where, args, err := t.where(conds, false)
	if err != nil {
		return nil, err
	}
	return t.Query(ctx, "select", fmt.Sprintf("SELECT * FROM %s WHERE %s", t.name, where), args...)
}

// StringSelect returns rows whose columns contain every condition value as a substring.
func (t *Table) StringSelect(ctx context.Context, conds models.Attributes) (*models.ResultSet, error) {
	where, args, err := t.where(conds, true)
	if err != nil {
		return nil, err
	}
	return t.Query(ctx, "string_select", fmt.Sprintf("SELECT * FROM %s WHERE %s", t.name, where), args...)
}

// SelectAll returns every row of the table.
func (t *Table) SelectAll(ctx context.Context) (*models.ResultSet, error) {
	return t.Query(ctx, "select_all", fmt.Sprintf("SELECT * FROM %s", t.name))
}

// Count returns how many rows match conds exactly.
func (t *Table) Count(ctx context.Context, conds models.Attributes) (int, error) {
	return t.count(ctx, t.db, conds)
}

// CountTx is Count inside a caller-managed transaction.
func (t *Table) CountTx(ctx context.Context, tx *sqlx.Tx, conds models.Attributes) (int, error) {
	return t.count(ctx, tx, conds)
}

func (t *Table) count(ctx context.Context, q sqlx.QueryerContext, conds models.Attributes) (int, error) {
	where, args, err := t.where(conds, false)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", t.name, where)
	var total int
	err = t.run("count", query, func() error {
		return sqlx.GetContext(ctx, q, &total, t.db.Rebind(query), args...)
	})
	return total, err
}

// Update changes exactly one row. Any other match count rolls back and fails.
func (t *Table) Update(ctx context.Context, conds, values models.Attributes) error {
	return t.InTx(ctx, func(tx *sqlx.Tx) error {
		return t.UpdateTx(ctx, tx, conds, values)
	})
}

// UpdateTx is Update inside a caller-managed transaction.
func (t *Table) UpdateTx(ctx context.Context, tx *sqlx.Tx, conds, values models.Attributes) error {
	if len(values) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("update of %s requires at least one new value", t.name))
	}
	keys, err := t.sortedColumns(values)
	if err != nil {
		return err
	}
	sets := make([]string, len(keys))
	args := make([]interface{}, 0, len(keys)+len(conds))
	for i, k := range keys {
		sets[i] = k + " = ?"
		args = append(args, values[k])
	}
	where, whereArgs, err := t.where(conds, false)
	if err != nil {
		return err
	}
	args = append(args, whereArgs...)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", t.name, strings.Join(sets, ", "), where)
	return t.execOne(ctx, tx, "update", query, args)
}

// Delete removes exactly one row. Any other match count rolls back and fails.
func (t *Table) Delete(ctx context.Context, conds models.Attributes) error {
	return t.InTx(ctx, func(tx *sqlx.Tx) error {
		return t.DeleteTx(ctx, tx, conds)
	})
}

// DeleteTx is Delete inside a caller-managed transaction.
func (t *Table) DeleteTx(ctx context.Context, tx *sqlx.Tx, conds models.Attributes) error {
	where, args, err := t.where(conds, false)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", t.name, where)
	return t.execOne(ctx, tx, "delete", query, args)
}

// DeleteWhereTx removes every matching row and reports how many were removed.
// It is meant for cascading association rows, where any count is valid.
func (t *Table) DeleteWhereTx(ctx context.Context, tx *sqlx.Tx, conds models.Attributes) (int64, error) {
	where, args, err := t.where(conds, false)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", t.name, where)
	var affected int64
	err = t.run("cascade_delete", query, func() error {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// Describe returns the column name, engine type and nullability of the table.
func (t *Table) Describe(ctx context.Context) (*models.ResultSet, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE 1=0", t.name)
	result := &models.ResultSet{Columns: []string{"Field", "Type", "Null"}}
	err := t.run("show", query, func() error {
		rows, err := t.db.QueryxContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close() //nolint:errcheck
		types, err := rows.ColumnTypes()
		if err != nil {
			return err
		}
		for _, ct := range types {
			nullable := "UNKNOWN"
			if n, ok := ct.Nullable(); ok {
				nullable = "NO"
				if n {
					nullable = "YES"
				}
			}
			result.Rows = append(result.Rows, []string{ct.Name(), ct.DatabaseTypeName(), nullable})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Query runs a read statement written with ? placeholders and buffers the result.
func (t *Table) Query(ctx context.Context, op, query string, args ...interface{}) (*models.ResultSet, error) {
	var result *models.ResultSet
	err := t.run(op, query, func() error {
		rows, err := t.db.QueryxContext(ctx, t.db.Rebind(query), args...)
		if err != nil {
			return err
		}
		defer rows.Close() //nolint:errcheck
		result, err = scanResultSet(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get loads a single row into dest. A missing row yields a not_found error.
func (t *Table) Get(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	return t.run(op, query, func() error {
		return t.db.GetContext(ctx, dest, t.db.Rebind(query), args...)
	})
}

// Exec runs a write statement written with ? placeholders.
func (t *Table) Exec(ctx context.Context, op, query string, args ...interface{}) (sql.Result, error) {
	var res sql.Result
	err := t.run(op, query, func() error {
		var err error
		res, err = t.db.ExecContext(ctx, t.db.Rebind(query), args...)
		return err
	})
	return res, err
}

// InTx runs fn inside a transaction, committing only when fn succeeds.
func (t *Table) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return t.fail("begin", "BEGIN", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return t.fail("commit", "COMMIT", err)
	}
	return nil
}

func (t *Table) execOne(ctx context.Context, tx *sqlx.Tx, op, query string, args []interface{}) error {
	var affected int64
	err := t.run(op, query, func() error {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	switch {
	case affected == 0:
		t.logger.Info("a single matching row was not found", zap.String("operation", op))
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s: no matching row in %s", op, t.name))
	case affected > 1:
		t.logger.Info("more than one row matched", zap.String("operation", op), zap.Int64("rows", affected))
		return appErrors.Clone(appErrors.ErrCardinality, fmt.Sprintf("%s: %d rows matched in %s", op, affected, t.name))
	}
	return nil
}

func (t *Table) where(conds models.Attributes, like bool) (string, []interface{}, error) {
	if len(conds) == 0 {
		return "", nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("query on %s requires at least one condition", t.name))
	}
	keys, err := t.sortedColumns(conds)
	if err != nil {
		return "", nil, err
	}
	clauses := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		if like {
			clauses[i] = k + " LIKE ?"
			args[i] = containsPattern(fmt.Sprint(conds[k]))
			continue
		}
		clauses[i] = k + " = ?"
		args[i] = conds[k]
	}
	return strings.Join(clauses, " AND "), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern turns s into a LIKE pattern matching any value that contains
// s literally. Backslash is the default LIKE escape on MySQL and Postgres.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (t *Table) sortedColumns(attrs models.Attributes) ([]string, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if err := t.checkColumn(k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (t *Table) checkColumn(column string) error {
	if len(t.columns) > 0 {
		for _, c := range t.columns {
			if strings.EqualFold(c, column) {
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown column %q for %s", column, t.name))
	}
	if !identifierPattern.MatchString(column) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid column name %q", column))
	}
	return nil
}

func (t *Table) run(op, query string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	if err != nil {
		err = t.fail(op, query, err)
	} else {
		t.logger.Debug("query executed", zap.String("operation", op), zap.String("query", query), zap.Duration("duration", elapsed))
	}
	if t.observer != nil {
		t.observer.ObserveQuery(t.name, op, err, elapsed)
	}
	return err
}

func (t *Table) fail(op, query string, err error) error {
	classified := database.Classify(err, fmt.Sprintf("%s on %s failed", op, t.name))
	if classified.Kind == appErrors.KindNotFound {
		t.logger.Info("no row found", zap.String("operation", op))
		return classified
	}
	t.logger.Error("query failed",
		zap.String("operation", op),
		zap.String("kind", string(classified.Kind)),
		zap.String("query", query),
		zap.Error(err),
	)
	return classified
}

func scanResultSet(rows *sqlx.Rows) (*models.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := &models.ResultSet{Columns: columns, Rows: [][]string{}}
	values := make([]sql.NullString, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}
