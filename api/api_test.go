package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/finance"
	"github.com/webiquedev/opsboard-backend/models"
)

const (
	testUsername        = "owner"
	testPassword        = "owner-pass"
	testManagerPassword = "manager-pass"
)

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

type testAPI struct {
	t      *testing.T
	router *chi.Mux
	db     database.Database
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	gdb, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	db := database.New(gdb)

	authService, err := auth.NewService(auth.Config{
		Secret:                    "test-secret",
		DashboardUsername:         testUsername,
		DashboardPassword:         testPassword,
		FreelancerManagerPassword: testManagerPassword,
		HashCost:                  bcrypt.MinCost,
		Now:                       func() time.Time { return testNow },
	}, nil)
	require.NoError(t, err)

	router := newRouter(db,
		withConfig(map[string]string{}),
		withAuth(authService),
		withClock(func() time.Time { return testNow }),
		withStartupTime(testNow),
	)
	return &testAPI{t: t, router: router, db: db}
}

type testResponse struct {
	Status     int
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Details    string          `json:"details"`
}

func (a *testAPI) do(method, path string, body any, headers map[string]string) testResponse {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	resp.Status = rec.Code
	return resp
}

func (a *testAPI) dashboard() map[string]string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/dashboard/login",
		map[string]string{"username": testUsername, "password": testPassword}, nil)
	require.Equal(a.t, http.StatusOK, resp.Status)

	var token auth.Token
	require.NoError(a.t, json.Unmarshal(resp.Data, &token))
	return map[string]string{dashboardSessionHeader: token.Value}
}

func (a *testAPI) manager() map[string]string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/freelancer-manager/login",
		map[string]string{"password": testManagerPassword}, nil)
	require.Equal(a.t, http.StatusOK, resp.Status)

	var token auth.Token
	require.NoError(a.t, json.Unmarshal(resp.Data, &token))
	assert.Equal(a.t, testNow.Add(auth.FreelancerManagerTTL), token.Session.ExpiresAt.UTC())
	return map[string]string{freelancerManagerSessionHeader: token.Value}
}

func decodeData[T any](t *testing.T, resp testResponse) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}

func TestProjects_CreateDerivesRemainingAmount(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	resp := api.do(http.MethodPost, "/api/projects", map[string]any{
		"name":           "Bakery site",
		"phoneNumber":    "0501234567",
		"totalAmount":    1000,
		"amountReceived": 400,
	}, session)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Error)
	created := decodeData[models.Project](t, resp)
	require.NotNil(t, created.RemainingAmount)
	assert.Equal(t, 600.0, *created.RemainingAmount)
	assert.Equal(t, models.LabelInHouse, created.Label)
	assert.Equal(t, models.StatusActive, created.Status)

	resp = api.do(http.MethodGet, "/api/projects/"+created.ID.String(), nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	fetched := decodeData[models.Project](t, resp)
	require.NotNil(t, fetched.RemainingAmount)
	assert.Equal(t, 600.0, *fetched.RemainingAmount)

	resp = api.do(http.MethodPut, "/api/projects/"+created.ID.String(),
		map[string]any{"amountReceived": 1000}, session)
	require.Equal(t, http.StatusOK, resp.Status)
	updated := decodeData[models.Project](t, resp)
	assert.Equal(t, 0.0, *updated.RemainingAmount)
	assert.Equal(t, "Bakery site", updated.Name)
}

func TestProjects_ListPaginates(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		resp := api.do(http.MethodPost, "/api/projects",
			map[string]any{"name": name, "phoneNumber": "050"}, session)
		require.Equal(t, http.StatusCreated, resp.Status)
	}

	resp := api.do(http.MethodGet, "/api/projects?page=2&limit=2", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, pagination{Current: 2, Pages: 2, Total: 3}, *resp.Pagination)
	assert.Len(t, decodeData[[]models.Project](t, resp), 1)

	resp = api.do(http.MethodGet, "/api/projects?search=gam", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	projects := decodeData[[]models.Project](t, resp)
	require.Len(t, projects, 1)
	assert.Equal(t, "Gamma", projects[0].Name)

	resp = api.do(http.MethodGet, "/api/projects?limit=0", nil, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestProjects_ValidationAndNotFound(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	resp := api.do(http.MethodPost, "/api/projects",
		map[string]any{"phoneNumber": "050"}, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.False(t, resp.Success)
	assert.Equal(t, "name", resp.Field)

	resp = api.do(http.MethodPost, "/api/projects",
		map[string]any{"name": "Overpaid", "phoneNumber": "050", "totalAmount": 100, "amountReceived": 150}, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "amountReceived", resp.Field)

	resp = api.do(http.MethodGet, "/api/projects/7f1d3c52-0f6e-4c43-9a51-3d0f3f6f7b11", nil, session)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Project not found", resp.Error)

	resp = api.do(http.MethodGet, "/api/projects/not-a-uuid", nil, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestProjects_CompleteAndReactivate(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	resp := api.do(http.MethodPost, "/api/projects",
		map[string]any{"name": "Salon", "phoneNumber": "050"}, session)
	require.Equal(t, http.StatusCreated, resp.Status)
	id := decodeData[models.Project](t, resp).ID.String()

	resp = api.do(http.MethodPatch, "/api/projects/"+id+"/complete", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	completed := decodeData[models.Project](t, resp)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.FinishedDate)
	assert.Equal(t, "2025-03-15", completed.FinishedDate.String())

	resp = api.do(http.MethodPatch, "/api/projects/"+id+"/reactivate", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	reactivated := decodeData[models.Project](t, resp)
	assert.Equal(t, models.StatusActive, reactivated.Status)
	assert.NotNil(t, reactivated.FinishedDate)

	resp = api.do(http.MethodDelete, "/api/projects/"+id, nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Project deleted successfully", resp.Message)

	resp = api.do(http.MethodDelete, "/api/projects/"+id, nil, session)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestFreelancerManager_ProjectRules(t *testing.T) {
	api := newTestAPI(t)
	dashboard := api.dashboard()
	manager := api.manager()

	resp := api.do(http.MethodPost, "/api/projects",
		map[string]any{"name": "In-house shop", "phoneNumber": "050", "notes": "original"}, dashboard)
	require.Equal(t, http.StatusCreated, resp.Status)
	inHouse := decodeData[models.Project](t, resp)

	resp = api.do(http.MethodPut, "/api/projects/"+inHouse.ID.String(),
		map[string]any{"notes": "changed"}, manager)
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Equal(t, "Access Denied", resp.Error)

	resp = api.do(http.MethodGet, "/api/projects/"+inHouse.ID.String(), nil, dashboard)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "original", decodeData[models.Project](t, resp).Notes)

	resp = api.do(http.MethodGet, "/api/projects/"+inHouse.ID.String(), nil, manager)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = api.do(http.MethodPost, "/api/projects",
		map[string]any{"name": "Freelance gym", "phoneNumber": "051", "totalAmount": 890}, manager)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Details)
	created := decodeData[models.Project](t, resp)
	assert.Equal(t, models.LabelFreelancer, created.Label)
	assert.Equal(t, 100.0, models.Amount(created.DomainCost))
	assert.Equal(t, 50.0, models.Amount(created.FreelancerManagerFees))
	assert.Equal(t, 310.0, models.Amount(created.FreelancerFees))

	resp = api.do(http.MethodPost, "/api/projects",
		map[string]any{"name": "Sneaky", "phoneNumber": "052", "label": "In-House"}, manager)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = api.do(http.MethodGet, "/api/projects", nil, manager)
	require.Equal(t, http.StatusOK, resp.Status)
	listed := decodeData[[]models.Project](t, resp)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	resp = api.do(http.MethodPut, "/api/projects/"+created.ID.String(),
		map[string]any{"freelancerFees": 0}, manager)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = api.do(http.MethodDelete, "/api/projects/"+created.ID.String(), nil, manager)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = api.do(http.MethodGet, "/api/subscriptions", nil, manager)
	assert.Equal(t, http.StatusForbidden, resp.Status)
}

func TestSessions(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodGet, "/api/projects", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "authorization", resp.Field)

	resp = api.do(http.MethodGet, "/api/projects", nil, map[string]string{dashboardSessionHeader: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "session expired", resp.Error)

	resp = api.do(http.MethodPost, "/api/auth/dashboard/login",
		map[string]string{"username": testUsername, "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	manager := api.manager()
	resp = api.do(http.MethodGet, "/api/auth/guard?path=/", nil, manager)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, map[string]any{"allowed": false, "redirect": "/freelancer-manager"},
		decodeData[map[string]any](t, resp))

	resp = api.do(http.MethodGet, "/api/auth/guard?path=/projects", nil, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "/login", decodeData[map[string]any](t, resp)["redirect"])

	dashboard := api.dashboard()
	resp = api.do(http.MethodGet, "/api/auth/session", nil, dashboard)
	require.Equal(t, http.StatusOK, resp.Status)
	state := decodeData[auth.State](t, resp)
	assert.True(t, state.HasDashboard())
	assert.False(t, state.HasFreelancerManager())

	resp = api.do(http.MethodPost, "/api/auth/logout", nil, dashboard)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = api.do(http.MethodGet, "/api/projects", nil, dashboard)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestSubscriptions_CRUDAndTotals(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	for _, body := range []map[string]any{
		{"name": "Hosting", "price": 120, "date": "2025-01-05"},
		{"name": "Domains", "price": 80.5, "date": "2025-02-10"},
	} {
		resp := api.do(http.MethodPost, "/api/subscriptions", body, session)
		require.Equal(t, http.StatusCreated, resp.Status, resp.Error)
	}

	resp := api.do(http.MethodGet, "/api/subscriptions/stats/total", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, database.CostTotals{TotalCost: 200.5, Count: 2}, decodeData[database.CostTotals](t, resp))

	resp = api.do(http.MethodGet, "/api/subscriptions?startDate=2025-02-01", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	subs := decodeData[[]models.Subscription](t, resp)
	require.Len(t, subs, 1)
	assert.Equal(t, "Domains", subs[0].Name)

	resp = api.do(http.MethodPut, "/api/subscriptions/"+subs[0].ID.String(),
		map[string]any{"price": 90}, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, 90.0, decodeData[models.Subscription](t, resp).Price)

	resp = api.do(http.MethodPost, "/api/subscriptions",
		map[string]any{"name": "Broken", "price": -1, "date": "2025-01-01"}, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "price", resp.Field)

	resp = api.do(http.MethodDelete, "/api/subscriptions/"+subs[0].ID.String(), nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	resp = api.do(http.MethodGet, "/api/subscriptions/"+subs[0].ID.String(), nil, session)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestDailyTasks_MoveAndToggle(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	resp := api.do(http.MethodPost, "/api/notes/daily-tasks",
		map[string]any{"content": "Call supplier", "date": "2025-01-10"}, session)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Error)
	task := decodeData[models.DailyTask](t, resp)
	assert.False(t, task.Completed)

	resp = api.do(http.MethodPatch, "/api/notes/daily-tasks/"+task.ID.String()+"/move",
		map[string]any{"date": "2025-01-12"}, session)
	require.Equal(t, http.StatusOK, resp.Status)
	moved := decodeData[models.DailyTask](t, resp)
	assert.Equal(t, task.ID, moved.ID)
	assert.Equal(t, "2025-01-12", moved.Date.String())
	assert.Equal(t, "Call supplier", moved.Content)

	resp = api.do(http.MethodPatch, "/api/notes/daily-tasks/"+task.ID.String()+"/move", map[string]any{}, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = api.do(http.MethodPatch, "/api/notes/daily-tasks/"+task.ID.String()+"/complete", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, decodeData[models.DailyTask](t, resp).Completed)

	resp = api.do(http.MethodPatch, "/api/notes/daily-tasks/"+task.ID.String()+"/complete", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.False(t, decodeData[models.DailyTask](t, resp).Completed)

	resp = api.do(http.MethodGet, "/api/notes/daily-tasks?date=2025-01-12", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decodeData[[]models.DailyTask](t, resp), 1)

	resp = api.do(http.MethodGet, "/api/notes/daily-tasks?date=2025-01-10", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decodeData[[]models.DailyTask](t, resp))
}

func TestNotes_CRUD(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	resp := api.do(http.MethodPost, "/api/notes/important", map[string]any{"content": "Renew license"}, session)
	require.Equal(t, http.StatusCreated, resp.Status)
	note := decodeData[models.ImportantNote](t, resp)

	resp = api.do(http.MethodPost, "/api/notes/important", map[string]any{"content": ""}, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "content", resp.Field)

	resp = api.do(http.MethodPut, "/api/notes/important/"+note.ID.String(), map[string]any{"content": "Renew license today"}, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Renew license today", decodeData[models.ImportantNote](t, resp).Content)

	resp = api.do(http.MethodGet, "/api/notes/general", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decodeData[[]models.GeneralNote](t, resp))

	resp = api.do(http.MethodDelete, "/api/notes/important/"+note.ID.String(), nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Important note deleted successfully", resp.Message)
}

func TestStats_OverviewAndBreakEven(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	resp := api.do(http.MethodPost, "/api/projects", map[string]any{
		"name": "Shop", "phoneNumber": "050", "totalAmount": 1000, "amountReceived": 1000, "domainCost": 100,
	}, session)
	require.Equal(t, http.StatusCreated, resp.Status)
	resp = api.do(http.MethodPost, "/api/subscriptions",
		map[string]any{"name": "Hosting", "price": 200, "date": "2025-03-01"}, session)
	require.Equal(t, http.StatusCreated, resp.Status)

	resp = api.do(http.MethodGet, "/api/projects/stats/overview?range=all", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	overview := decodeData[map[string]any](t, resp)
	assert.Equal(t, "all", overview["range"])

	resp = api.do(http.MethodGet, "/api/projects/stats/overview?range=2w", nil, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "range", resp.Field)

	resp = api.do(http.MethodGet, "/api/projects/finances", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = api.do(http.MethodGet, "/api/calculator/break-even?price=1290", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	result := decodeData[finance.BreakEven](t, resp)
	assert.Equal(t, int64(2), result.InHouse.ProjectsRequired)
	assert.Equal(t, int64(3), result.Freelancer.ProjectsRequired)
	assert.Equal(t, finance.DefaultEconomics(), result.Economics)

	resp = api.do(http.MethodGet, "/api/calculator/break-even?price=0", nil, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = api.do(http.MethodGet, "/api/calculator/break-even?price=100&revenuePerProject=50", nil, session)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestStats_BreakEvenRejectsNonFiniteNumbers(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	cases := []struct {
		query string
		field string
	}{
		{"price=NaN", "price"},
		{"price=Inf", "price"},
		{"price=-Inf", "price"},
		{"price=100&domainCost=Inf", "domainCost"},
		{"price=100&revenuePerProject=NaN", "revenuePerProject"},
	}
	for _, tc := range cases {
		resp := api.do(http.MethodGet, "/api/calculator/break-even?"+tc.query, nil, session)
		assert.Equal(t, http.StatusBadRequest, resp.Status, tc.query)
		assert.Equal(t, tc.field, resp.Field, tc.query)
	}
}

func TestStats_OverviewTotalsByRange(t *testing.T) {
	api := newTestAPI(t)
	session := api.dashboard()

	projects := []map[string]any{
		{
			"name": "Recent", "phoneNumber": "050", "label": "Freelancer", "status": "completed",
			"finishedDate": "2025-03-01", "totalAmount": 1000, "amountReceived": 800,
			"domainCost": 100, "additionalCosts": 50, "freelancerManagerFees": 50, "freelancerFees": 310,
		},
		{
			"name": "Old", "phoneNumber": "051", "status": "completed",
			"finishedDate": "2024-12-01", "totalAmount": 2000, "amountReceived": 2000, "domainCost": 100,
		},
	}
	for _, p := range projects {
		resp := api.do(http.MethodPost, "/api/projects", p, session)
		require.Equal(t, http.StatusCreated, resp.Status, resp.Message)
	}

	costs := []struct {
		path  string
		price float64
		date  string
	}{
		{"/api/subscriptions", 200, "2025-03-01"},
		{"/api/subscriptions", 120, "2025-01-10"},
		{"/api/tiktok-ads", 30, "2025-03-10"},
		{"/api/tiktok-ads", 70, "2024-11-20"},
	}
	for _, c := range costs {
		resp := api.do(http.MethodPost, c.path, map[string]any{"name": "cost", "price": c.price, "date": c.date}, session)
		require.Equal(t, http.StatusCreated, resp.Status, resp.Message)
	}

	all := finance.Overview{
		ProjectCount:           2,
		TotalRevenue:           3000,
		TotalAmountReceived:    2800,
		TotalRemainingAmount:   200,
		ProjectCosts:           250,
		FreelancerCosts:        360,
		TotalSubscriptionCosts: 320,
		TotalTikTokAdCosts:     100,
		TotalCosts:             670,
		TotalProfit:            2130,
		ProfitMargin:           76.07,
	}
	lastMonth := finance.Overview{
		ProjectCount:           1,
		TotalRevenue:           1000,
		TotalAmountReceived:    800,
		TotalRemainingAmount:   200,
		ProjectCosts:           150,
		FreelancerCosts:        360,
		TotalSubscriptionCosts: 200,
		TotalTikTokAdCosts:     30,
		TotalCosts:             380,
		TotalProfit:            420,
		ProfitMargin:           52.5,
	}

	for rng, want := range map[finance.Range]finance.Overview{finance.RangeAll: all, finance.RangeOneMonth: lastMonth} {
		resp := api.do(http.MethodGet, "/api/projects/stats/overview?range="+string(rng), nil, session)
		require.Equal(t, http.StatusOK, resp.Status)
		got := decodeData[overviewResponse](t, resp)
		assert.Equal(t, rng, got.Range)
		assert.Equal(t, want, got.Overview, rng)
	}

	resp := api.do(http.MethodGet, "/api/projects/finances?range=1m", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	finances := decodeData[financesResponse](t, resp)
	assert.Equal(t, lastMonth, finances.Totals)
	require.Len(t, finances.Projects, 1)
	assert.Equal(t, "Recent", finances.Projects[0].Name)
	assert.Equal(t, 800.0, finances.Projects[0].Revenue)
	assert.Equal(t, 150.0, finances.Projects[0].TotalProjectCosts)
	assert.Equal(t, 360.0, finances.Projects[0].FreelancerCosts)
	assert.Equal(t, 650.0, finances.Projects[0].Profit)

	resp = api.do(http.MethodGet, "/api/projects/finances", nil, session)
	require.Equal(t, http.StatusOK, resp.Status)
	finances = decodeData[financesResponse](t, resp)
	assert.Equal(t, all, finances.Totals)
	assert.Len(t, finances.Projects, 2)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", decodeData[healthResponse](t, resp).Database)
}
