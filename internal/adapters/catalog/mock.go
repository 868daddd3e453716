package catalog

import (
	"context"
	"time"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// MockProvider serves a fixed roster without touching the network. It backs
// the offline data source toggle and the test suites.
type MockProvider struct {
	employees []model.Employee
}

// NewMockProvider returns a provider over the built-in roster.
func NewMockProvider() *MockProvider {
	return &MockProvider{employees: mockRoster()}
}

// NewMockProviderWith returns a provider over a caller-supplied roster.
func NewMockProviderWith(employees []model.Employee) *MockProvider {
	return &MockProvider{employees: employees}
}

// ListEmployees returns the fixed roster. The date is ignored; the mock
// roster does not change day to day.
func (p *MockProvider) ListEmployees(_ context.Context, _ time.Time) ([]model.Employee, error) {
	out := make([]model.Employee, len(p.employees))
	copy(out, p.employees)
	return out, nil
}

func mockRoster() []model.Employee {
	return []model.Employee{
		{ID: "emp-001", Name: "Astrid Berge", FirstName: "Astrid", Surname: "Berge", Department: "Technology", Office: "Oslo", Teams: []string{"Technology", "Cloud Platform"}, Age: "34", Supervisor: "Henrik Foss"},
		{ID: "emp-002", Name: "Jonas Lie", FirstName: "Jonas", Surname: "Lie", Department: "Technology", Office: "Bergen", Teams: []string{"Technology", "Experience Platform"}, Age: "29", Supervisor: "Henrik Foss"},
		{ID: "emp-003", Name: "Maja Holm", FirstName: "Maja", Surname: "Holm", Department: "Design", Office: "Oslo", Teams: []string{"Experience Design"}, Age: "31", Supervisor: "Sofie Dahl"},
		{ID: "emp-004", Name: "Henrik Foss", FirstName: "Henrik", Surname: "Foss", Department: "Technology", Office: "Oslo", Teams: []string{"Technology"}, Age: "45", Supervisor: model.Unknown},
		{ID: "emp-005", Name: "Sofie Dahl", FirstName: "Sofie", Surname: "Dahl", Department: "Design", Office: "Stockholm", Teams: []string{"Experience Design", "Brand"}, Age: "41", Supervisor: model.Unknown},
		{ID: "emp-006", Name: "Emil Strand", FirstName: "Emil", Surname: "Strand", Department: "Product", Office: "Oslo", Teams: []string{"Product"}, Age: "37", Supervisor: "Sofie Dahl"},
		{ID: "emp-007", Name: "Nora Viken", FirstName: "Nora", Surname: "Viken", Department: "Product", Office: "Copenhagen", Teams: []string{"Product", "Analytics"}, Age: model.Unknown, Supervisor: "Emil Strand"},
		{ID: "emp-008", Name: "Oskar Lund", FirstName: "Oskar", Surname: "Lund", Department: "Technology", Office: "Bergen", Teams: []string{"Cloud Platform"}, Age: "27", Supervisor: "Astrid Berge"},
		{ID: "emp-009", Name: "Ingrid Moe", FirstName: "Ingrid", Surname: "Moe", Department: "People", Office: "Oslo", Teams: []string{"People Operations"}, Age: "39", Supervisor: "Henrik Foss"},
		{ID: "emp-010", Name: "Liam Haug", FirstName: "Liam", Surname: "Haug", Department: "Technology", Office: "Stockholm", Teams: []string{"Technology", "Dynamics"}, Age: "33", Supervisor: "Astrid Berge"},
		{ID: "emp-011", Name: "Thea Aas", FirstName: "Thea", Surname: "Aas", Department: "Business Design", Office: "Oslo", Teams: []string{"Business Design"}, Age: "30", Supervisor: "Sofie Dahl"},
		{ID: "emp-012", Name: "Magnus Eide", FirstName: "Magnus", Surname: "Eide", Department: "Technology", Office: "Copenhagen", Teams: []string{"Experience Platform", "Cloud Platform"}, Age: model.Unknown, Supervisor: "Henrik Foss"},
	}
}
