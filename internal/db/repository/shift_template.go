package repository

import (
	"context"
	"database/sql"

	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/domain"
)

var shiftTemplatesTable = table{
	name:    "shift_templates",
	alias:   "st",
	columns: "st.id, st.name, st.required_role_id",
}

// ShiftTemplateRepo implements domain.ShiftTemplateRepository.
type ShiftTemplateRepo struct {
	s sqlStore
}

// NewShiftTemplateRepo creates a ShiftTemplateRepo over the given pools.
func NewShiftTemplateRepo(p *internaldb.Pools) *ShiftTemplateRepo {
	return &ShiftTemplateRepo{s: newSQLStore(p)}
}

var _ domain.ShiftTemplateRepository = (*ShiftTemplateRepo)(nil)

func scanShiftTemplate(row rowScanner) (domain.ShiftTemplate, error) {
	var (
		st   domain.ShiftTemplate
		role sql.NullInt64
	)
	if err := row.Scan(&st.ID, &st.Name, &role); err != nil {
		return domain.ShiftTemplate{}, err
	}
	st.RequiredRoleID = int64Ptr(role)
	return st, nil
}

func (r *ShiftTemplateRepo) GetByID(ctx context.Context, id int64) (*domain.ShiftTemplate, error) {
	st, err := getByID(ctx, r.s, shiftTemplatesTable, "shift template", id, scanShiftTemplate)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *ShiftTemplateRepo) Save(ctx context.Context, st *domain.ShiftTemplate) (*domain.ShiftTemplate, error) {
	id := st.ID
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if id == 0 {
			id, err = r.s.insertReturningID(ctx, tx,
				`INSERT INTO shift_templates (name, required_role_id) VALUES (?, ?) RETURNING id`,
				st.Name, nullInt64(st.RequiredRoleID))
		} else {
			err = r.s.updateByID(ctx, tx, "shift template", id,
				`UPDATE shift_templates SET name = ?, required_role_id = ? WHERE id = ?`,
				st.Name, nullInt64(st.RequiredRoleID), id)
		}
		return mapDBError(err)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ShiftTemplateRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteByID(ctx, shiftTemplatesTable.name, id)
}

func (r *ShiftTemplateRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.s.exists(ctx, shiftTemplatesTable.name, id)
}

func (r *ShiftTemplateRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.ShiftTemplate, error) {
	return listByIDs(ctx, r.s, shiftTemplatesTable, ids, scanShiftTemplate)
}

func (r *ShiftTemplateRepo) Query(ctx context.Context, pred domain.Predicate[domain.ShiftTemplate], page domain.PageRequest) ([]domain.ShiftTemplate, int64, error) {
	return queryPage(ctx, r.s, shiftTemplatesTable, pred, page, scanShiftTemplate)
}
