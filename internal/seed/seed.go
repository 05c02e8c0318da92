// Package seed loads demo users, departments, employees and salaries from a
// YAML fixture through the service layer.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/service"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is the seed file format.
type Fixture struct {
	Users       []User       `yaml:"users"`
	Departments []Department `yaml:"departments"`
	Employees   []Employee   `yaml:"employees"`
}

type User struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
}

type Department struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	GrossSalary string `yaml:"gross_salary"`
}

type Employee struct {
	FirstName  string   `yaml:"first_name"`
	LastName   string   `yaml:"last_name"`
	Email      string   `yaml:"email"`
	Phone      string   `yaml:"phone"`
	Address    string   `yaml:"address"`
	Position   string   `yaml:"position"`
	Department string   `yaml:"department"`
	HireDate   string   `yaml:"hire_date"`
	Salaries   []Salary `yaml:"salaries"`
}

type Salary struct {
	Amount        string `yaml:"amount"`
	EffectiveDate string `yaml:"effective_date"`
	EndDate       string `yaml:"end_date"`
}

// Load decodes a fixture.
func Load(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the fixture at path, or the built-in one when path is
// empty.
func LoadFile(path string) (*Fixture, error) {
	if path == "" {
		return Load(bytes.NewReader(defaultFixture))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Result counts what a run created and skipped.
type Result struct {
	Users       int
	Departments int
	Employees   int
	Salaries    int
	Skipped     int
}

// Seeder writes fixtures through the services so every row passes the
// same validation as API input.
type Seeder struct {
	auth        service.AuthService
	departments service.DepartmentService
	employees   service.EmployeeService
	salaries    service.SalaryService
	log         *zap.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(
	auth service.AuthService,
	departments service.DepartmentService,
	employees service.EmployeeService,
	salaries service.SalaryService,
	log *zap.Logger,
) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{auth: auth, departments: departments, employees: employees, salaries: salaries, log: log}
}

// Run inserts the fixture. Rows that already exist are skipped, so running
// twice is safe. An employee that already exists keeps its salaries.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Result, error) {
	var res Result

	for _, u := range f.Users {
		_, err := s.auth.Register(ctx, service.RegisterInput{
			Username:  u.Username,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
		ok, err := s.outcome(err, &res, "user", u.Username)
		if err != nil {
			return res, err
		}
		if ok {
			res.Users++
		}
	}

	for _, d := range f.Departments {
		_, err := s.departments.Create(ctx, service.DepartmentInput{
			Code:        d.Code,
			Name:        d.Name,
			GrossSalary: d.GrossSalary,
		})
		ok, err := s.outcome(err, &res, "department", d.Code)
		if err != nil {
			return res, err
		}
		if ok {
			res.Departments++
		}
	}

	for _, e := range f.Employees {
		id, err := s.employees.Create(ctx, service.EmployeeInput{
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			Email:      e.Email,
			Phone:      e.Phone,
			Address:    e.Address,
			Position:   e.Position,
			Department: e.Department,
			HireDate:   e.HireDate,
		})
		ok, err := s.outcome(err, &res, "employee", e.Email)
		if err != nil {
			return res, err
		}
		if !ok {
			continue
		}
		res.Employees++

		for _, sal := range e.Salaries {
			if _, err := s.salaries.Create(ctx, service.SalaryInput{
				EmployeeID:    id,
				Amount:        sal.Amount,
				EffectiveDate: sal.EffectiveDate,
				EndDate:       sal.EndDate,
			}); err != nil {
				return res, fmt.Errorf("salary for %s: %w", e.Email, err)
			}
			res.Salaries++
		}
	}

	return res, nil
}

// outcome reports whether the row was created. Conflicts are counted as
// skipped; any other error aborts the run.
func (s *Seeder) outcome(err error, res *Result, kind, key string) (bool, error) {
	if err == nil {
		return true, nil
	}
	if apperrors.KindOf(err) == apperrors.KindConflict {
		s.log.Info("seed: already exists, skipping", zap.String("kind", kind), zap.String("key", key))
		res.Skipped++
		return false, nil
	}
	return false, fmt.Errorf("%s %s: %w", kind, key, err)
}
