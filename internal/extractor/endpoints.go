// File: internal/extractor/endpoints.go
// HTTP endpoint extraction. Endpoints are only collected for files whose role
// is route or controller; a stray app.get in a utility file is not an API
// surface.
package extractor

import (
	"regexp"
	"strings"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

var (
	// Express-style registrations: router.get('/users', ...).
	routerCallPattern = regexp.MustCompile(
		`\b(?:router|app|server|api)\.(get|post|put|delete|patch|options|head|all)\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	// Decorator registrations: @Get('/users'), @GetMapping("/users"),
	// @app.route("/users", methods=["POST"]).
	decoratorPattern = regexp.MustCompile(
		`@(Get|Post|Put|Delete|Patch|Options|Head)(?:Mapping)?\s*\(\s*(?:['"]([^'"]*)['"])?`)
	flaskRoutePattern = regexp.MustCompile(
		`@\w+\.route\s*\(\s*['"]([^'"]+)['"](?:.*methods\s*=\s*\[([^\]]*)\])?`)
)

// extractEndpoints returns the HTTP registrations of a route or controller
// file, in source order. Other roles yield nothing.
func extractEndpoints(content string, role schemas.FileRole) []schemas.Endpoint {
	if role != schemas.RoleRoute && role != schemas.RoleController {
		return nil
	}

	var endpoints []schemas.Endpoint
	add := func(method, path string) {
		if path == "" {
			path = "/"
		}
		endpoints = append(endpoints, schemas.Endpoint{
			Method: strings.ToUpper(method),
			Path:   path,
		})
	}

	for _, m := range routerCallPattern.FindAllStringSubmatch(content, -1) {
		add(m[1], m[2])
	}
	for _, m := range decoratorPattern.FindAllStringSubmatch(content, -1) {
		add(m[1], m[2])
	}
	for _, m := range flaskRoutePattern.FindAllStringSubmatch(content, -1) {
		if m[2] == "" {
			add("GET", m[1])
			continue
		}
		for _, method := range splitNames(m[2]) {
			add(method, m[1])
		}
	}
	return endpoints
}
