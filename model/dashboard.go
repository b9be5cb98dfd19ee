package model

// Dashboard identifies the role-specific area a session is routed to.
type Dashboard string

const (
	DashboardSuperAdmin         Dashboard = "superadmin"
	DashboardProductionIncharge Dashboard = "production"
	DashboardStrategyHead       Dashboard = "strategy-head"
	DashboardStrategyEmployee   Dashboard = "strategy"
	DashboardGraphics           Dashboard = "graphics"
	DashboardVideo              Dashboard = "video"
	DashboardSocialMedia        Dashboard = "social-media"
)

var Dashboards = []Dashboard{
	DashboardSuperAdmin,
	DashboardProductionIncharge,
	DashboardStrategyHead,
	DashboardStrategyEmployee,
	DashboardGraphics,
	DashboardVideo,
	DashboardSocialMedia,
}

const LoginPath = "/login"

// Path is the front-end route the login gate redirects to.
func (d Dashboard) Path() string {
	if !d.Valid() {
		return LoginPath
	}
	return "/" + string(d)
}

func (d Dashboard) Valid() bool {
	for _, known := range Dashboards {
		if d == known {
			return true
		}
	}
	return false
}

// Department is the department keyword a dashboard works for. Dashboards
// that see every department return "".
func (d Dashboard) Department() string {
	switch d {
	case DashboardStrategyHead, DashboardStrategyEmployee:
		return "strategy"
	case DashboardGraphics:
		return "graphic"
	case DashboardVideo:
		return "video"
	case DashboardSocialMedia:
		return "social"
	}
	return ""
}
