package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGroupRepository struct {
	db *pgxpool.Pool
}

func newPgxGroupRepository(db *pgxpool.Pool) portsrepo.GroupRepository {
	return &PgxGroupRepository{db: db}
}

var _ portsrepo.GroupRepository = (*PgxGroupRepository)(nil)

const groupColumns = `g.id, g.owner_id, g.type_id, t.name, g.name, g.archived`

func scanGroup(row pgx.Row) (*domain.AccountGroup, error) {
	var g domain.AccountGroup
	var typeName string
	if err := row.Scan(&g.ID, &g.OwnerID, &g.TypeID, &typeName, &g.Name, &g.Archived); err != nil {
		return nil, err
	}
	g.TypeName = domain.AccountTypeName(typeName)
	return &g, nil
}

func (r *PgxGroupRepository) SaveGroup(ctx context.Context, ownerID, typeID int64, name string) (int64, error) {
	query := `
		INSERT INTO account_groups (owner_id, type_id, name)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query, ownerID, typeID, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: active group %q already exists for this type", apperrors.ErrDuplicate, name)
		}
		return 0, fmt.Errorf("failed to insert account group: %w", err)
	}
	return id, nil
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, ownerID, groupID int64) (*domain.AccountGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account_groups g
		JOIN account_types t ON t.id = g.type_id
		WHERE g.owner_id = $1 AND g.id = $2;
	`, groupColumns)
	g, err := scanGroup(r.db.QueryRow(ctx, query, ownerID, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account group %d: %w", groupID, err)
	}
	return g, nil
}

func (r *PgxGroupRepository) FindGroupByName(ctx context.Context, ownerID, typeID int64, name string) (*domain.AccountGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account_groups g
		JOIN account_types t ON t.id = g.type_id
		WHERE g.owner_id = $1 AND g.type_id = $2 AND g.name = $3 AND NOT g.archived;
	`, groupColumns)
	g, err := scanGroup(r.db.QueryRow(ctx, query, ownerID, typeID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account group %q: %w", name, err)
	}
	return g, nil
}

func (r *PgxGroupRepository) ListGroups(ctx context.Context, ownerID, typeID int64) ([]domain.AccountGroup, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account_groups g
		JOIN account_types t ON t.id = g.type_id
		WHERE g.owner_id = $1 AND g.type_id = $2 AND NOT g.archived
		ORDER BY g.name, g.id;
	`, groupColumns)
	rows, err := r.db.Query(ctx, query, ownerID, typeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.AccountGroup{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account group row: %w", err)
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account group rows: %w", err)
	}
	return groups, nil
}

func (r *PgxGroupRepository) RenameGroup(ctx context.Context, ownerID, groupID int64, name string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE account_groups SET name = $3
		WHERE owner_id = $1 AND id = $2;
	`, ownerID, groupID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to rename account group %d: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGroupRepository) ArchiveGroup(ctx context.Context, ownerID, groupID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE account_groups SET archived = TRUE
		WHERE owner_id = $1 AND id = $2 AND NOT archived;
	`, ownerID, groupID)
	if err != nil {
		return fmt.Errorf("failed to archive account group %d: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
