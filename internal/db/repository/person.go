package repository

import (
	"context"
	"database/sql"

	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/domain"
)

var peopleTable = table{
	name:    "people",
	alias:   "p",
	columns: "p.id, p.name, p.email_address, p.phone, p.active",
	scalars: map[domain.Field]string{domain.FieldActive: "active"},
	sets: map[domain.Field]association{
		domain.FieldRoles:  personRoles,
		domain.FieldGroups: personGroups,
	},
}

// PersonRepo implements domain.PersonRepository.
type PersonRepo struct {
	s sqlStore
}

// NewPersonRepo creates a PersonRepo over the given pools.
func NewPersonRepo(p *internaldb.Pools) *PersonRepo {
	return &PersonRepo{s: newSQLStore(p)}
}

var _ domain.PersonRepository = (*PersonRepo)(nil)

func scanPerson(row rowScanner) (domain.Person, error) {
	var (
		p     domain.Person
		phone sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.EmailAddress, &phone, &p.Active); err != nil {
		return domain.Person{}, err
	}
	p.Phone = stringPtr(phone)
	return p, nil
}

// GetByID returns the person with id and their role and group ids.
func (r *PersonRepo) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	p, err := getByID(ctx, r.s, peopleTable, "person", id, scanPerson)
	if err != nil {
		return nil, err
	}
	people := []domain.Person{p}
	if err := r.attach(ctx, people); err != nil {
		return nil, err
	}
	return &people[0], nil
}

// Save inserts a new person when p.ID is zero, otherwise overwrites the
// stored person including both association sets.
func (r *PersonRepo) Save(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	id := p.ID
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if id == 0 {
			id, err = r.s.insertReturningID(ctx, tx,
				`INSERT INTO people (name, email_address, phone, active) VALUES (?, ?, ?, ?) RETURNING id`,
				p.Name, p.EmailAddress, nullString(p.Phone), p.Active)
		} else {
			err = r.s.updateByID(ctx, tx, "person", id,
				`UPDATE people SET name = ?, email_address = ?, phone = ?, active = ? WHERE id = ?`,
				p.Name, p.EmailAddress, nullString(p.Phone), p.Active, id)
		}
		if err != nil {
			return mapDBError(err)
		}
		if err := replaceAssociations(ctx, r.s, tx, personRoles, id, p.RoleIDs); err != nil {
			return err
		}
		return replaceAssociations(ctx, r.s, tx, personGroups, id, p.GroupIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the person; their associations cascade.
func (r *PersonRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteByID(ctx, peopleTable.name, id)
}

// Exists reports whether a person with id is stored.
func (r *PersonRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.s.exists(ctx, peopleTable.name, id)
}

// ListByIDs returns the stored people among ids.
func (r *PersonRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Person, error) {
	people, err := listByIDs(ctx, r.s, peopleTable, ids, scanPerson)
	if err != nil {
		return nil, err
	}
	return people, r.attach(ctx, people)
}

// Query returns one page of people matching pred and the total match count.
func (r *PersonRepo) Query(ctx context.Context, pred domain.Predicate[domain.Person], page domain.PageRequest) ([]domain.Person, int64, error) {
	people, total, err := queryPage(ctx, r.s, peopleTable, pred, page, scanPerson)
	if err != nil {
		return nil, 0, err
	}
	return people, total, r.attach(ctx, people)
}

func (r *PersonRepo) attach(ctx context.Context, people []domain.Person) error {
	ids := make([]int64, len(people))
	for i := range people {
		ids[i] = people[i].ID
	}
	roles, err := loadAssociations(ctx, r.s, personRoles, ids)
	if err != nil {
		return err
	}
	groups, err := loadAssociations(ctx, r.s, personGroups, ids)
	if err != nil {
		return err
	}
	for i := range people {
		people[i].RoleIDs = idsOrEmpty(roles, people[i].ID)
		people[i].GroupIDs = idsOrEmpty(groups, people[i].ID)
	}
	return nil
}
