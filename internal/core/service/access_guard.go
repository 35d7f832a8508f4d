package service

import "github.com/agrowork/agrowork-cli/internal/core/domain"

// Route names a navigable destination in the client.
type Route string

const (
	RouteHome             Route = "/"
	RouteLogin            Route = "/login"
	RouteRegisterRole     Route = "/register/role"
	RouteRegisterFarmer   Route = "/register/farmer"
	RouteRegisterLaborer  Route = "/register/laborer"
	RouteFarmerDashboard  Route = "/dashboard/farmer"
	RouteLaborerDashboard Route = "/dashboard/laborer"
	RouteCreateOrder      Route = "/orders/create"
	RouteLaborers         Route = "/laborers"
)

type routeRule struct {
	public       bool
	requiredRole domain.Role
}

var routeRules = map[Route]routeRule{
	RouteHome:             {public: true},
	RouteLogin:            {public: true},
	RouteRegisterRole:     {public: true},
	RouteRegisterFarmer:   {public: true},
	RouteRegisterLaborer:  {public: true},
	RouteFarmerDashboard:  {requiredRole: domain.RoleFarmer},
	RouteLaborerDashboard: {requiredRole: domain.RoleLaborer},
	RouteCreateOrder:      {requiredRole: domain.RoleFarmer},
	RouteLaborers:         {requiredRole: domain.RoleFarmer},
}

// Decision is the outcome of a single navigation check.
type Decision struct {
	Allowed  bool
	Redirect Route
}

func allow() Decision           { return Decision{Allowed: true} }
func redirect(r Route) Decision { return Decision{Redirect: r} }

// Dashboard returns the landing destination for a role. The target is always
// role-specific, never a shared default, so a mismatch correction can never
// loop back through the guard.
func Dashboard(role domain.Role) Route {
	if role == domain.RoleLaborer {
		return RouteLaborerDashboard
	}
	return RouteFarmerDashboard
}

// Guard decides, per navigation, whether the session may view the requested
// destination. Unknown destinations fall back to home; unauthenticated access
// to a protected destination redirects to login; a role mismatch is corrected
// silently to the user's own dashboard, never surfaced as an error.
func Guard(sess Session, route Route) Decision {
	rule, known := routeRules[route]
	if !known {
		return redirect(RouteHome)
	}
	if rule.public {
		return allow()
	}
	if !sess.Authenticated() {
		return redirect(RouteLogin)
	}
	if rule.requiredRole != "" && sess.User.Role != rule.requiredRole {
		return redirect(Dashboard(sess.User.Role))
	}
	return allow()
}
