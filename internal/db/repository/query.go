package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/domain"
)

// association describes a join table linking an owner row to member ids.
type association struct {
	table  string
	owner  string
	member string
}

var (
	personRoles      = association{table: "person_roles", owner: "person_id", member: "role_id"}
	personGroups     = association{table: "person_groups", owner: "person_id", member: "group_id"}
	groupMembers     = association{table: "person_groups", owner: "group_id", member: "person_id"}
	groupPermissions = association{table: "group_permissions", owner: "group_id", member: "permission_id"}
)

// table describes how an entity kind is selected and how each filterable
// field maps onto SQL.
type table struct {
	name    string
	alias   string
	columns string
	scalars map[domain.Field]string
	sets    map[domain.Field]association
}

func (t table) selectFrom() string {
	return "SELECT " + t.columns + " FROM " + t.name + " " + t.alias
}

// whereClause translates a predicate into a SQL condition. Every criterion
// becomes one conjunct; a Contains criterion becomes its own EXISTS subquery,
// so several ids on the same field require the row to be linked to all of
// them.
func whereClause[T any](d internaldb.Dialect, t table, pred domain.Predicate[T]) (string, []any, error) {
	criteria := pred.Criteria()
	if len(criteria) == 0 {
		return "", nil, nil
	}

	conds := make([]string, 0, len(criteria))
	args := make([]any, 0, len(criteria))
	for _, c := range criteria {
		switch c.Op {
		case domain.OpNameLike:
			pattern, ok := c.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("name filter value %T is not a string", c.Value)
			}
			conds = append(conds, d.Lower(t.alias+".name")+" LIKE ? ESCAPE '\\'")
			args = append(args, likeContains(pattern))
		case domain.OpEquals:
			col, ok := t.scalars[c.Field]
			if !ok {
				return "", nil, fmt.Errorf("%s cannot be filtered by %s", t.name, c.Field)
			}
			conds = append(conds, t.alias+"."+col+" = ?")
			args = append(args, c.Value)
		case domain.OpContains:
			a, ok := t.sets[c.Field]
			if !ok {
				return "", nil, fmt.Errorf("%s cannot be filtered by %s", t.name, c.Field)
			}
			conds = append(conds, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM %s x WHERE x.%s = %s.id AND x.%s = ?)",
				a.table, a.owner, t.alias, a.member))
			args = append(args, c.Value)
		default:
			return "", nil, fmt.Errorf("unsupported filter operation %q", c.Op)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// likeContains lower-cases pattern, escapes LIKE metacharacters and wraps it
// for a substring match.
func likeContains(pattern string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(pattern)) + "%"
}

func orderBy(t table, page domain.PageRequest) string {
	dir := "ASC"
	if page.Descending() {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s.name %s, %s.id ASC", t.alias, dir, t.alias)
}

// queryPage counts every row matching pred and returns the requested page of
// them, ordered by name in the page's direction with id as tie-breaker.
func queryPage[T any](
	ctx context.Context, s sqlStore, t table, pred domain.Predicate[T], page domain.PageRequest,
	scan func(rowScanner) (T, error),
) ([]T, int64, error) {
	where, args, err := whereClause(s.dialect, t, pred)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM " + t.name + " " + t.alias + where
	if err := s.read.QueryRowContext(ctx, s.bind(countSQL), args...).Scan(&total); err != nil {
		return nil, 0, mapDBError(err)
	}
	if int64(page.Offset()) >= total {
		return []T{}, total, nil
	}

	pageSQL := t.selectFrom() + where + orderBy(t, page) + " LIMIT ? OFFSET ?"
	pageArgs := append(args, page.Size, page.Offset())
	items, err := queryRows(ctx, s, pageSQL, pageArgs, scan)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// getByID loads the single row with id or returns NotFoundError.
func getByID[T any](ctx context.Context, s sqlStore, t table, kind string, id int64, scan func(rowScanner) (T, error)) (T, error) {
	row := s.read.QueryRowContext(ctx, s.bind(t.selectFrom()+" WHERE "+t.alias+".id = ?"), id)
	v, err := scan(row)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrNotFound("%s %d not found", kind, id)
		}
		return zero, mapDBError(err)
	}
	return v, nil
}

// listByIDs returns the rows whose id is in ids, ordered by id. Unknown ids
// are skipped.
func listByIDs[T any](ctx context.Context, s sqlStore, t table, ids []int64, scan func(rowScanner) (T, error)) ([]T, error) {
	ids = domain.UniqueIDs(ids)
	if len(ids) == 0 {
		return []T{}, nil
	}
	query, args, err := expandIn(t.selectFrom()+" WHERE "+t.alias+".id IN (?) ORDER BY "+t.alias+".id", ids)
	if err != nil {
		return nil, err
	}
	return queryRows(ctx, s, query, args, scan)
}

func queryRows[T any](ctx context.Context, s sqlStore, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := s.read.QueryContext(ctx, s.bind(query), args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// loadAssociations returns the member ids of a for each owner, sorted.
// Owners without members are absent from the map.
func loadAssociations(ctx context.Context, s sqlStore, a association, owners []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(owners))
	if len(owners) == 0 {
		return out, nil
	}
	query, args, err := expandIn(fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s IN (?) ORDER BY %s, %s",
		a.owner, a.member, a.table, a.owner, a.owner, a.member), owners)
	if err != nil {
		return nil, err
	}

	rows, err := s.read.QueryContext(ctx, s.bind(query), args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner, member int64
		if err := rows.Scan(&owner, &member); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], member)
	}
	return out, rows.Err()
}

// replaceAssociations overwrites the member set of owner inside tx.
func replaceAssociations(ctx context.Context, s sqlStore, tx *sql.Tx, a association, owner int64, members []int64) error {
	del := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", a.table, a.owner)
	if _, err := tx.ExecContext(ctx, s.bind(del), owner); err != nil {
		return mapDBError(err)
	}
	ins := s.bind(fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", a.table, a.owner, a.member))
	for _, m := range domain.UniqueIDs(members) {
		if _, err := tx.ExecContext(ctx, ins, owner, m); err != nil {
			return mapDBError(err)
		}
	}
	return nil
}

// idsOrEmpty returns the map entry for id, never nil.
func idsOrEmpty(m map[int64][]int64, id int64) []int64 {
	if ids, ok := m[id]; ok {
		return ids
	}
	return []int64{}
}
