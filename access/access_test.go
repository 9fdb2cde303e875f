package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/models"
)

var (
	dashboardSession = &auth.Session{ID: "d", Role: auth.RoleDashboard}
	managerSession   = &auth.Session{ID: "m", Role: auth.RoleFreelancerManager}
)

func TestGuard(t *testing.T) {
	none := auth.State{}
	dash := auth.State{Dashboard: dashboardSession}
	fm := auth.State{FreelancerManager: managerSession}
	both := auth.State{Dashboard: dashboardSession, FreelancerManager: managerSession}

	tests := []struct {
		name  string
		state auth.State
		path  string
		want  Decision
	}{
		{"login always allowed", none, "/login", allow()},
		{"fm login always allowed", fm, "/freelancer-manager/login", allow()},
		{"dashboard without session", none, "/", redirect(LoginPath)},
		{"dashboard with session", dash, "/projects", allow()},
		{"fm session on dashboard root", fm, "/", redirect(FreelancerManagerPath)},
		{"fm session wins over dashboard", both, "/subscriptions", redirect(FreelancerManagerPath)},
		{"fm route without session", none, "/freelancer-manager/projects", redirect(FreelancerManagerLoginPath)},
		{"fm route with fm session", fm, "/freelancer-manager", allow()},
		{"fm route with dashboard session", dash, "/freelancer-manager/", allow()},
		{"query string ignored", fm, "/?tab=notes", redirect(FreelancerManagerPath)},
		{"prefix lookalike is dashboard", none, "/freelancer-managers", redirect(LoginPath)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(tt.state, tt.path))
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.ErrorIs(t, Authorize(auth.State{}, ScopeShared), ErrNoSession)
	assert.ErrorIs(t, Authorize(auth.State{}, ScopeDashboard), ErrNoSession)

	assert.NoError(t, Authorize(auth.State{FreelancerManager: managerSession}, ScopeShared))
	assert.NoError(t, Authorize(auth.State{Dashboard: dashboardSession}, ScopeDashboard))

	err := Authorize(auth.State{FreelancerManager: managerSession}, ScopeDashboard)
	assert.True(t, IsDenied(err))

	err = Authorize(auth.State{Dashboard: dashboardSession, FreelancerManager: managerSession}, ScopeDashboard)
	assert.True(t, IsDenied(err))
}

func strPtr(s string) *string { return &s }

func TestCheckManagerUpdate(t *testing.T) {
	activeFreelancer := &models.Project{Label: models.LabelFreelancer, Status: models.StatusActive}
	completedFreelancer := &models.Project{Label: models.LabelFreelancer, Status: models.StatusCompleted}
	inHouse := &models.Project{Label: models.LabelInHouse, Status: models.StatusActive}

	rename := models.ProjectPatch{Name: strPtr("New name")}
	notesOnly := models.ProjectPatch{Notes: strPtr("waiting on logo")}
	received := models.ProjectPatch{AmountReceived: models.Float64(100)}
	status := models.StatusCompleted
	complete := models.ProjectPatch{Status: &status}

	assert.NoError(t, CheckManagerUpdate(activeFreelancer, rename))
	assert.NoError(t, CheckManagerUpdate(activeFreelancer, notesOnly))
	assert.NoError(t, CheckManagerUpdate(completedFreelancer, notesOnly))

	assert.True(t, IsDenied(CheckManagerUpdate(completedFreelancer, rename)))
	assert.True(t, IsDenied(CheckManagerUpdate(inHouse, notesOnly)))
	assert.True(t, IsDenied(CheckManagerUpdate(inHouse, rename)))
	assert.True(t, IsDenied(CheckManagerUpdate(activeFreelancer, received)))
	assert.True(t, IsDenied(CheckManagerUpdate(activeFreelancer, complete)))

	err := CheckManagerUpdate(activeFreelancer, models.ProjectPatch{
		Name:           strPtr("x"),
		FreelancerFees: models.Float64(1),
		DomainCost:     models.Float64(1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domainCost, freelancerFees")
}

func TestNewManagerProject(t *testing.T) {
	project, err := NewManagerProject(models.ProjectPatch{
		Name:        strPtr("Cafe menu site"),
		PhoneNumber: strPtr("0500000002"),
		TotalAmount: models.Float64(890),
		Freelancer:  strPtr("Sara"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LabelFreelancer, project.Label)
	assert.Equal(t, models.StatusActive, project.Status)
	assert.Equal(t, 100.0, *project.DomainCost)
	assert.Equal(t, 50.0, *project.FreelancerManagerFees)
	assert.Equal(t, 310.0, *project.FreelancerFees)
	assert.Equal(t, 890.0, *project.RemainingAmount)
	assert.Equal(t, "Sara", project.Freelancer)
	assert.NoError(t, project.Validate())

	label := models.LabelFreelancer
	_, err = NewManagerProject(models.ProjectPatch{Name: strPtr("x"), Label: &label, DomainCost: models.Float64(100)})
	assert.NoError(t, err)

	inHouse := models.LabelInHouse
	_, err = NewManagerProject(models.ProjectPatch{Name: strPtr("x"), Label: &inHouse})
	assert.True(t, IsDenied(err))

	_, err = NewManagerProject(models.ProjectPatch{Name: strPtr("x"), AmountReceived: models.Float64(10)})
	assert.True(t, IsDenied(err))
}

func TestCanManagerView(t *testing.T) {
	assert.True(t, CanManagerView(&models.Project{Label: models.LabelFreelancer}))
	assert.False(t, CanManagerView(&models.Project{Label: models.LabelInHouse}))
}
