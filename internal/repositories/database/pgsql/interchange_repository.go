package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/famledger/famledger/internal/apperrors"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/famledger/famledger/internal/interchange"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInterchangeRepository struct {
	db *pgxpool.Pool
}

func newPgxInterchangeRepository(db *pgxpool.Pool) portsrepo.InterchangeRepository {
	return &PgxInterchangeRepository{db: db}
}

var _ portsrepo.InterchangeRepository = (*PgxInterchangeRepository)(nil)

type exportColumn struct {
	name string
	// SQL type the text value is cast back to on restore.
	cast string
}

type exportTable struct {
	name    string
	order   string
	columns []exportColumn
	// serial names the identity column whose sequence must be advanced past
	// restored ids, or is empty for tables keyed externally.
	serial string
}

// exportTables mirrors interchange.TableNames: same tables, same declaration
// order, so restore can insert in a foreign-key-safe sequence.
var exportTables = []exportTable{
	{
		name:  "account_types",
		order: "id",
		columns: []exportColumn{
			{"id", "bigint"}, {"name", "text"},
		},
		serial: "id",
	},
	{
		name:  "account_groups",
		order: "id",
		columns: []exportColumn{
			{"id", "bigint"}, {"owner_id", "bigint"}, {"type_id", "bigint"},
			{"name", "text"}, {"archived", "boolean"},
		},
		serial: "id",
	},
	{
		name:  "accounts",
		order: "id",
		columns: []exportColumn{
			{"id", "bigint"}, {"owner_id", "bigint"}, {"group_id", "bigint"},
			{"name", "text"}, {"archived", "boolean"},
		},
		serial: "id",
	},
	{
		name:  "transactions",
		order: "id",
		columns: []exportColumn{
			{"id", "bigint"}, {"owner_id", "bigint"}, {"from_account", "bigint"},
			{"to_account", "bigint"}, {"amount", "numeric"}, {"ts", "timestamp"},
		},
		serial: "id",
	},
	{
		name:  "settings",
		order: "id",
		columns: []exportColumn{
			{"id", "bigint"}, {"owner_id", "bigint"}, {"key", "text"}, {"value", "text"},
		},
		serial: "id",
	},
	{
		name:  "tenancy",
		order: "identity_id",
		columns: []exportColumn{
			{"identity_id", "bigint"}, {"family_id", "bigint"},
		},
	},
	{
		name:  "invites",
		order: "token",
		columns: []exportColumn{
			{"token", "text"}, {"family_id", "bigint"},
		},
	},
}

func (r *PgxInterchangeRepository) Dump(ctx context.Context) (*interchange.Snapshot, error) {
	snap := &interchange.Snapshot{}
	for _, table := range exportTables {
		cols := make([]string, len(table.columns))
		selects := make([]string, len(table.columns))
		for i, c := range table.columns {
			cols[i] = c.name
			selects[i] = c.name + "::text"
		}
		query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s;",
			strings.Join(selects, ", "), table.name, table.order)

		rows, err := r.db.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to dump table %s: %w", table.name, err)
		}
		t := interchange.Table{Name: table.name, Columns: cols}
		for rows.Next() {
			values := make([]string, len(cols))
			dest := make([]interface{}, len(cols))
			for i := range values {
				dest[i] = &values[i]
			}
			if err := rows.Scan(dest...); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan %s row: %w", table.name, err)
			}
			t.Rows = append(t.Rows, values)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating %s rows: %w", table.name, err)
		}
		snap.Tables = append(snap.Tables, t)
	}
	return snap, nil
}

// Restore replaces the entire store with the snapshot inside one transaction.
// Tables absent from the snapshot are simply left empty.
func (r *PgxInterchangeRepository) Restore(ctx context.Context, snap *interchange.Snapshot) error {
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		names := make([]string, len(exportTables))
		for i, t := range exportTables {
			names[i] = t.name
		}
		truncate := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE;", strings.Join(names, ", "))
		if _, err := tx.Exec(ctx, truncate); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}

		for _, table := range exportTables {
			src := snap.Table(table.name)
			if src == nil || len(src.Rows) == 0 {
				continue
			}
			if err := restoreTable(ctx, tx, table, src); err != nil {
				return err
			}
			if table.serial != "" {
				seq := fmt.Sprintf(
					"SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s;",
					table.name, table.serial, table.serial, table.name)
				if _, err := tx.Exec(ctx, seq); err != nil {
					return fmt.Errorf("failed to advance %s sequence: %w", table.name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	return nil
}

func restoreTable(ctx context.Context, tx pgx.Tx, table exportTable, src *interchange.Table) error {
	casts := make(map[string]string, len(table.columns))
	for _, c := range table.columns {
		casts[c.name] = c.cast
	}

	// Columns are matched by header name, so files may omit or reorder
	// columns relative to the schema.
	placeholders := make([]string, len(src.Columns))
	for i, col := range src.Columns {
		cast, ok := casts[col]
		if !ok {
			return fmt.Errorf("%w: table %s has no column %q", apperrors.ErrValidation, table.name, col)
		}
		placeholders[i] = fmt.Sprintf("$%d::%s", i+1, cast)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		table.name, strings.Join(src.Columns, ", "), strings.Join(placeholders, ", "))

	batch := &pgx.Batch{}
	for _, row := range src.Rows {
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v
		}
		batch.Queue(query, args...)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := range src.Rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to restore %s row %d: %w", table.name, i+1, err)
		}
	}
	return nil
}
