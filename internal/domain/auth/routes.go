package auth

// Client-side route surface gated by the portal. These are navigation targets,
// not a wire protocol.
const (
	RouteHome               = "/"
	RouteLogin              = "/login"
	RouteOnboarding         = "/onboarding"
	RouteUnauthorized       = "/unauthorized"
	RouteDashboard          = "/dashboard"
	RouteAdminDashboard     = "/admin/dashboard"
	RouteStudentDashboard   = "/student/dashboard"
	RouteProjects           = "/projects"
	RouteMyProjects         = "/my-projects"
	RouteTasks              = "/tasks"
	RouteMessages           = "/messages"
	RouteAdminUsers         = "/admin/users"
	RouteAdminAnalytics     = "/admin/analytics"
	RouteResearcherResource = "/resources"
	RouteStudentLearning    = "/learning"
	RouteStudentProgress    = "/progress"
)

// DashboardPath maps a role to its default landing route. Admins and students
// have dedicated dashboards; everything else, including researchers and users
// whose role is still unset, lands on the shared dashboard.
func DashboardPath(role Role) string {
	switch role {
	case RoleAdmin:
		return RouteAdminDashboard
	case RoleStudent:
		return RouteStudentDashboard
	case RoleResearcher:
		return RouteDashboard
	case RoleUnset:
		return RouteDashboard
	default:
		return RouteDashboard
	}
}

// NavItem is a single entry in the role-aware navigation menu.
type NavItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// NavItems builds the navigation menu for a role: a common section shared by
// everyone followed by role-specific entries. In navigation contexts an unset
// or unknown role falls back to the student menu.
func NavItems(role Role) []NavItem {
	items := []NavItem{
		{Name: "Dashboard", Href: DashboardPath(role)},
		{Name: "Projects", Href: RouteProjects},
		{Name: "Tasks", Href: RouteTasks},
		{Name: "Messages", Href: RouteMessages},
	}

	switch role {
	case RoleAdmin:
		items = append(items,
			NavItem{Name: "Users", Href: RouteAdminUsers},
			NavItem{Name: "Analytics", Href: RouteAdminAnalytics},
		)
	case RoleResearcher:
		items = append(items,
			NavItem{Name: "My Projects", Href: RouteMyProjects},
			NavItem{Name: "Resources", Href: RouteResearcherResource},
		)
	case RoleStudent, RoleUnset:
		items = append(items,
			NavItem{Name: "Learning", Href: RouteStudentLearning},
			NavItem{Name: "Progress", Href: RouteStudentProgress},
		)
	default:
		items = append(items,
			NavItem{Name: "Learning", Href: RouteStudentLearning},
			NavItem{Name: "Progress", Href: RouteStudentProgress},
		)
	}

	return items
}
