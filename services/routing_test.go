package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agencydash/model"
)

func TestResolveDashboard(t *testing.T) {
	overrides := map[string]model.Dashboard{
		"boss@agency.test": model.DashboardSuperAdmin,
		"pi@agency.test":   model.DashboardProductionIncharge,
	}

	cases := []struct {
		name string
		emp  model.Employee
		want model.Dashboard
	}{
		{"override wins", model.Employee{Email: "Boss@Agency.test", Department: "Graphics"}, model.DashboardSuperAdmin},
		{"production override", model.Employee{Email: "pi@agency.test"}, model.DashboardProductionIncharge},
		{"strategy head", model.Employee{Department: "Strategy Department", Role: "Head"}, model.DashboardStrategyHead},
		{"strategy employee", model.Employee{Department: "strategy"}, model.DashboardStrategyEmployee},
		{"graphics", model.Employee{Department: " Graphic Design "}, model.DashboardGraphics},
		{"video", model.Employee{Department: "Video Editing", Role: "head"}, model.DashboardVideo},
		{"social", model.Employee{Department: "Social Media"}, model.DashboardSocialMedia},
		{"production", model.Employee{Department: "Production"}, model.DashboardProductionIncharge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveDashboard(&tc.emp, overrides)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveDashboard_Unknown(t *testing.T) {
	_, err := ResolveDashboard(&model.Employee{Department: "Finance"}, nil)
	assert.ErrorIs(t, err, ErrUnknownDepartment)

	_, err = ResolveDashboard(&model.Employee{}, nil)
	assert.ErrorIs(t, err, ErrUnknownDepartment)
}

func TestMatchesDepartment(t *testing.T) {
	assert.True(t, MatchesDepartment("Graphics", "graphic"))
	assert.True(t, MatchesDepartment("Video Editing", "video"))
	assert.False(t, MatchesDepartment("video", "Video Editing"))
	assert.False(t, MatchesDepartment("ph", "graphic"))
	assert.False(t, MatchesDepartment("Media", "Social Media"))
	assert.True(t, MatchesDepartment("anything", ""))
	assert.False(t, MatchesDepartment("", "video"))
	assert.False(t, MatchesDepartment("Social Media", "video"))
}
