package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emsapi/internal/app"
	"emsapi/internal/config"
	"emsapi/internal/db"
	"emsapi/internal/db/dbtest"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 5000, CORSOrigins: []string{"http://localhost:5173"}},
		Session: config.SessionConfig{Store: "memory", Secret: "app-test-secret-0123456789", CookieName: "ems_session", TTL: time.Hour},
		Auth:    config.AuthConfig{BcryptCost: 4},
		Payroll: config.PayrollConfig{DeductionRate: "0.10"},
	}
}

type client struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	e := app.NewServer(app.Deps{
		Config: testConfig(),
		Log:    zap.NewNop(),
		DB:     dbtest.New(t),
	})
	return &client{t: t, e: e}
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (c *client) login() {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/register", map[string]string{
		"username": "admin", "password": "secret123", "firstName": "Ada", "lastName": "Min", "email": "admin@x.com",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "secret123"})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "ems_session" {
			c.cookie = ck
		}
	}
	require.NotNil(c.t, c.cookie)
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized","code":"UNAUTHORIZED"}`, rec.Body.String())

	c.login()
	assert.True(t, c.cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.cookie.SameSite)

	rec = c.do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"admin","firstName":"Ada","lastName":"Min","email":"admin@x.com"}`, rec.Body.String())

	// Registering the same user again is a conflict, reported as 400.
	rec = c.do(http.MethodPost, "/api/register", map[string]string{
		"username": "admin", "password": "x", "firstName": "A", "lastName": "B", "email": "other@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username or email already exists", decode(t, rec)["message"])

	rec = c.do(http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])

	rec = c.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", decode(t, rec)["message"])

	// The old cookie no longer resolves to a session.
	rec = c.do(http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeeSalaryLifecycle(t *testing.T) {
	c := newClient(t)
	c.login()

	rec := c.do(http.MethodPost, "/api/employees", map[string]string{"firstName": "Ann", "lastName": "Lee", "email": "a@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Employee created successfully", body["message"])
	id := int(body["employeeId"].(float64))

	rec = c.do(http.MethodPost, "/api/employees", map[string]string{"firstName": "Dup", "lastName": "Lee", "email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decode(t, rec)["message"])

	rec = c.do(http.MethodPost, "/api/salaries", map[string]interface{}{"employeeId": id, "amount": 50000, "effectiveDate": "2024-01-01"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Salary created successfully", decode(t, rec)["message"])

	rec = c.do(http.MethodPost, "/api/salaries", map[string]interface{}{"employeeId": "999", "amount": "10", "effectiveDate": "2024-01-01"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	salariesPath := fmt.Sprintf("/api/employees/%d/salaries", id)
	rec = c.do(http.MethodGet, salariesPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var salaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &salaries))
	require.Len(t, salaries, 1)
	assert.Equal(t, "50000", salaries[0]["amount"])
	assert.Equal(t, "2024-01-01", salaries[0]["effective_date"])
	assert.Nil(t, salaries[0]["end_date"])

	rec = c.do(http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, salariesPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/employees/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/employees/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id", decode(t, rec)["message"])
}

func TestDepartmentGuardAndSummary(t *testing.T) {
	c := newClient(t)
	c.login()

	rec := c.do(http.MethodPost, "/api/departments", map[string]interface{}{
		"department_code": "ENG", "department_name": "Engineering", "gross_salary": 90000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ENG", decode(t, rec)["departmentCode"])

	rec = c.do(http.MethodPost, "/api/employees", map[string]string{"firstName": "Ann", "lastName": "Lee", "email": "a@x.com", "department": "ENG"})
	require.Equal(t, http.StatusCreated, rec.Code)
	annID := int(decode(t, rec)["employeeId"].(float64))

	rec = c.do(http.MethodPost, "/api/employees", map[string]string{"firstName": "Bob", "lastName": "Moe", "email": "b@x.com", "department": "OPS"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodPost, "/api/salaries", map[string]interface{}{"employeeId": annID, "amount": "5000", "effectiveDate": "2020-01-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodDelete, "/api/departments/ENG", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Cannot delete department that has employees assigned to it","code":"CONFLICT"}`, rec.Body.String())

	rec = c.do(http.MethodPut, "/api/departments/NOPE", map[string]string{"department_name": "Nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/reports/departments", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "department_summary", rec.Body.Bytes())

	rec = c.do(http.MethodGet, "/api/reports/monthly-payroll?month=2024-02-01", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var employees []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &employees), "payroll is an array of employee rows")
	require.Len(t, employees, 1)
	assert.Equal(t, "Ann", employees[0]["first_name"])
	assert.Equal(t, "Engineering", employees[0]["department_name"])
	assert.Equal(t, "5000", employees[0]["gross_salary"])
	assert.Equal(t, "500", employees[0]["deduction"])
	assert.Equal(t, "4500", employees[0]["net_salary"])

	rec = c.do(http.MethodGet, "/api/reports/monthly-payroll/departments?month=2024-02-01", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var departments []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &departments))
	require.Len(t, departments, 1, "OPS is unregistered and nobody there was paid")
	assert.Equal(t, "ENG", departments[0]["department_code"])
	assert.Equal(t, float64(1), departments[0]["employee_count"])
	assert.Equal(t, "90000", departments[0]["base_salary"])
	assert.Equal(t, "5000", departments[0]["average_gross_salary"])
	assert.Equal(t, "4500", departments[0]["average_net_salary"])

	rec = c.do(http.MethodGet, "/api/reports/monthly-payroll?month=February", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodGet, "/api/reports/monthly-payroll/departments?month=February", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/api/reports/monthly-payroll/export?month=2024-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "payroll-2024-02.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestRequestsLongerThanColumnsAreRejected(t *testing.T) {
	c := newClient(t)
	c.login()

	tests := []struct {
		name    string
		path    string
		body    interface{}
		wantMsg string
	}{
		{
			name:    "employee department",
			path:    "/api/employees",
			body:    map[string]string{"firstName": "Ann", "lastName": "Lee", "email": "a@x.com", "department": strings.Repeat("D", 51)},
			wantMsg: "department must be at most 50 characters",
		},
		{
			name:    "department code",
			path:    "/api/departments",
			body:    map[string]interface{}{"department_code": strings.Repeat("C", 21), "department_name": "Long", "gross_salary": 1},
			wantMsg: "department_code must be at most 20 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decode(t, rec)["message"])
		})
	}

	rec := c.do(http.MethodPost, "/api/employees", map[string]string{"firstName": "Ann", "lastName": "Lee", "email": "a@x.com", "department": strings.Repeat("D", 50)})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestReadinessGate(t *testing.T) {
	cfg := testConfig()
	client, err := db.Open(config.DatabaseConfig{Dialect: "sqlite", DSN: "file::memory:", MaxOpenConns: 1}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	e := app.NewServer(app.Deps{Config: cfg, Log: zap.NewNop(), DB: client})

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", decode(t, rec)["code"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, client.Init(context.Background()))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
