package guard

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteRegister      = "/register"
	RouteDashboard     = "/dashboard"
	RouteUserDashboard = "/user-dashboard"
	RouteDiaryWrite    = "/diary-write"
	RouteDiaryList     = "/diary-list"
	RouteDiarySearch   = "/diary-search"

	diaryEditPrefix = "/diary-edit/"
)

var publicRoutes = map[string]struct{}{
	RouteHome:     {},
	RouteLogin:    {},
	RouteRegister: {},
}

var protectedRoutes = map[string]struct{}{
	RouteDashboard:     {},
	RouteUserDashboard: {},
	RouteDiaryWrite:    {},
	RouteDiaryList:     {},
	RouteDiarySearch:   {},
}

// DiaryEdit returns the edit route of diary id.
func DiaryEdit(id int64) string {
	return diaryEditPrefix + strconv.FormatInt(id, 10)
}

// IsProtected reports whether route needs an authenticated session. Every
// route that is not one of the public entry points is protected.
func IsProtected(route string) bool {
	_, public := publicRoutes[normalize(route)]
	return !public
}

// IsKnown reports whether route names an existing view. Edit routes need
// a positive diary id.
func IsKnown(route string) bool {
	route = normalize(route)
	if _, ok := publicRoutes[route]; ok {
		return true
	}
	if _, ok := protectedRoutes[route]; ok {
		return true
	}
	if id, ok := strings.CutPrefix(route, diaryEditPrefix); ok {
		n, err := strconv.ParseInt(id, 10, 64)
		return err == nil && n > 0
	}
	return false
}

// LandingRoute is where a freshly authenticated user is sent.
func LandingRoute(u *models.User) string {
	if u != nil && u.IsAdmin() {
		return RouteDashboard
	}
	return RouteUserDashboard
}

func normalize(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return RouteHome
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = RouteHome
		}
	}
	return route
}
