package repository

import (
	"context"
	"database/sql"

	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/domain"
)

var groupsTable = table{
	name:    "volunteer_groups",
	alias:   "g",
	columns: "g.id, g.name",
	sets: map[domain.Field]association{
		domain.FieldPermissions: groupPermissions,
		domain.FieldPeople:      groupMembers,
	},
}

// GroupRepo implements domain.GroupRepository. Membership is owned by people,
// so Save never writes person_groups.
type GroupRepo struct {
	s sqlStore
}

// NewGroupRepo creates a GroupRepo over the given pools.
func NewGroupRepo(p *internaldb.Pools) *GroupRepo {
	return &GroupRepo{s: newSQLStore(p)}
}

var _ domain.GroupRepository = (*GroupRepo)(nil)

func scanGroup(row rowScanner) (domain.Group, error) {
	var g domain.Group
	if err := row.Scan(&g.ID, &g.Name); err != nil {
		return domain.Group{}, err
	}
	return g, nil
}

func (r *GroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	g, err := getByID(ctx, r.s, groupsTable, "group", id, scanGroup)
	if err != nil {
		return nil, err
	}
	groups := []domain.Group{g}
	if err := r.attach(ctx, groups); err != nil {
		return nil, err
	}
	return &groups[0], nil
}

func (r *GroupRepo) Save(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	id := g.ID
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if id == 0 {
			id, err = r.s.insertReturningID(ctx, tx,
				`INSERT INTO volunteer_groups (name) VALUES (?) RETURNING id`, g.Name)
		} else {
			err = r.s.updateByID(ctx, tx, "group", id,
				`UPDATE volunteer_groups SET name = ? WHERE id = ?`, g.Name, id)
		}
		if err != nil {
			return mapNameConflict(err, "group", g.Name)
		}
		return replaceAssociations(ctx, r.s, tx, groupPermissions, id, g.PermissionIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GroupRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteByID(ctx, groupsTable.name, id)
}

func (r *GroupRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.s.exists(ctx, groupsTable.name, id)
}

func (r *GroupRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Group, error) {
	groups, err := listByIDs(ctx, r.s, groupsTable, ids, scanGroup)
	if err != nil {
		return nil, err
	}
	return groups, r.attach(ctx, groups)
}

func (r *GroupRepo) Query(ctx context.Context, pred domain.Predicate[domain.Group], page domain.PageRequest) ([]domain.Group, int64, error) {
	groups, total, err := queryPage(ctx, r.s, groupsTable, pred, page, scanGroup)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, r.attach(ctx, groups)
}

// attach fills permissions, members and the derived member counts.
func (r *GroupRepo) attach(ctx context.Context, groups []domain.Group) error {
	ids := make([]int64, len(groups))
	for i := range groups {
		ids[i] = groups[i].ID
	}
	perms, err := loadAssociations(ctx, r.s, groupPermissions, ids)
	if err != nil {
		return err
	}
	members, err := loadAssociations(ctx, r.s, groupMembers, ids)
	if err != nil {
		return err
	}
	active, err := r.activeMemberCounts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range groups {
		g := &groups[i]
		g.PermissionIDs = idsOrEmpty(perms, g.ID)
		g.PersonIDs = idsOrEmpty(members, g.ID)
		g.MemberCount = int64(len(g.PersonIDs))
		g.ActiveMemberCount = active[g.ID]
	}
	return nil
}

func (r *GroupRepo) activeMemberCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT pg.group_id, COUNT(*) FROM person_groups pg
		JOIN people p ON p.id = pg.person_id
		WHERE p.active = ? AND pg.group_id IN (?)
		GROUP BY pg.group_id`
	query, args, err := expandIn(query, true, ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.s.read.QueryContext(ctx, r.s.bind(query), args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}
