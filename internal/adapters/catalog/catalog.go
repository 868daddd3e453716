// Package catalog supplies the set of guessable employees for a day.
//
// Providers guarantee a stable, ID-sorted ordering: daily target selection
// is only deterministic if repeated fetches of the same roster agree on
// order, so the ordering precondition is enforced here rather than assumed.
package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// Provider lists the employees guessable on a given day.
type Provider interface {
	ListEmployees(ctx context.Context, date time.Time) ([]model.Employee, error)
}

// Snapshot is an immutable, ID-sorted view of one day's roster with O(1)
// lookup by employee ID. It satisfies the session package's Roster.
type Snapshot struct {
	employees []model.Employee
	byID      map[string]model.Employee
}

// NewSnapshot builds a snapshot, sorting by ID. A duplicate ID keeps the
// first occurrence; the catalog invariant says IDs are unique per day, so
// dropping later duplicates is the safe reading of bad input.
func NewSnapshot(employees []model.Employee) Snapshot {
	byID := make(map[string]model.Employee, len(employees))
	unique := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if _, seen := byID[e.ID]; seen {
			continue
		}
		byID[e.ID] = e
		unique = append(unique, e)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].ID < unique[j].ID })
	return Snapshot{employees: unique, byID: byID}
}

// Employee looks up a roster member by ID.
func (s Snapshot) Employee(id string) (model.Employee, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Employees returns the ID-sorted roster.
func (s Snapshot) Employees() []model.Employee {
	return s.employees
}

// Size reports the roster size.
func (s Snapshot) Size() int {
	return len(s.employees)
}
