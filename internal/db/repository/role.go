package repository

import (
	"context"
	"database/sql"

	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/domain"
)

var (
	rolesTable = table{name: "roles", alias: "r", columns: "r.id, r.name"}

	permissionsTable = table{name: "permissions", alias: "pm", columns: "pm.id, pm.name"}
)

// namedRepo stores a kind that is nothing but a unique name.
type namedRepo struct {
	s    sqlStore
	t    table
	kind string
}

func (r namedRepo) save(ctx context.Context, id int64, name string) (int64, error) {
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if id == 0 {
			id, err = r.s.insertReturningID(ctx, tx,
				"INSERT INTO "+r.t.name+" (name) VALUES (?) RETURNING id", name)
		} else {
			err = r.s.updateByID(ctx, tx, r.kind, id,
				"UPDATE "+r.t.name+" SET name = ? WHERE id = ?", name, id)
		}
		if err != nil {
			return mapNameConflict(err, r.kind, name)
		}
		return nil
	})
	return id, err
}

// RoleRepo implements domain.RoleRepository.
type RoleRepo struct {
	namedRepo
}

// NewRoleRepo creates a RoleRepo over the given pools.
func NewRoleRepo(p *internaldb.Pools) *RoleRepo {
	return &RoleRepo{namedRepo{s: newSQLStore(p), t: rolesTable, kind: "role"}}
}

var _ domain.RoleRepository = (*RoleRepo)(nil)

func scanRole(row rowScanner) (domain.Role, error) {
	var v domain.Role
	err := row.Scan(&v.ID, &v.Name)
	return v, err
}

func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	v, err := getByID(ctx, r.s, r.t, r.kind, id, scanRole)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *RoleRepo) Save(ctx context.Context, v *domain.Role) (*domain.Role, error) {
	id, err := r.save(ctx, v.ID, v.Name)
	if err != nil {
		return nil, err
	}
	return &domain.Role{ID: id, Name: v.Name}, nil
}

func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteByID(ctx, r.t.name, id)
}

func (r *RoleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.s.exists(ctx, r.t.name, id)
}

func (r *RoleRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Role, error) {
	return listByIDs(ctx, r.s, r.t, ids, scanRole)
}

func (r *RoleRepo) Query(ctx context.Context, pred domain.Predicate[domain.Role], page domain.PageRequest) ([]domain.Role, int64, error) {
	return queryPage(ctx, r.s, r.t, pred, page, scanRole)
}

// PermissionRepo implements domain.PermissionRepository.
type PermissionRepo struct {
	namedRepo
}

// NewPermissionRepo creates a PermissionRepo over the given pools.
func NewPermissionRepo(p *internaldb.Pools) *PermissionRepo {
	return &PermissionRepo{namedRepo{s: newSQLStore(p), t: permissionsTable, kind: "permission"}}
}

var _ domain.PermissionRepository = (*PermissionRepo)(nil)

func scanPermission(row rowScanner) (domain.Permission, error) {
	var v domain.Permission
	err := row.Scan(&v.ID, &v.Name)
	return v, err
}

func (r *PermissionRepo) GetByID(ctx context.Context, id int64) (*domain.Permission, error) {
	v, err := getByID(ctx, r.s, r.t, r.kind, id, scanPermission)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PermissionRepo) Save(ctx context.Context, v *domain.Permission) (*domain.Permission, error) {
	id, err := r.save(ctx, v.ID, v.Name)
	if err != nil {
		return nil, err
	}
	return &domain.Permission{ID: id, Name: v.Name}, nil
}

func (r *PermissionRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteByID(ctx, r.t.name, id)
}

func (r *PermissionRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.s.exists(ctx, r.t.name, id)
}

func (r *PermissionRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Permission, error) {
	return listByIDs(ctx, r.s, r.t, ids, scanPermission)
}

func (r *PermissionRepo) Query(ctx context.Context, pred domain.Predicate[domain.Permission], page domain.PageRequest) ([]domain.Permission, int64, error) {
	return queryPage(ctx, r.s, r.t, pred, page, scanPermission)
}
