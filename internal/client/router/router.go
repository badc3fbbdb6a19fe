// Package router maps client paths to screens and decides, from the session
// state, whether a path may be shown or must redirect.
package router

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/session"
)

type Screen string

const (
	ScreenDashboard     Screen = "dashboard"
	ScreenLogin         Screen = "login"
	ScreenRegister      Screen = "register"
	ScreenVerifyOTP     Screen = "verify-otp"
	ScreenAlumni        Screen = "alumni"
	ScreenAlumniProfile Screen = "alumni-profile"
	ScreenEditProfile   Screen = "edit-profile"
	ScreenJobs          Screen = "jobs"
	ScreenPostJob       Screen = "post-job"
)

const (
	PathHome        = "/"
	PathLogin       = "/login"
	PathRegister    = "/register"
	PathVerifyOTP   = "/verify-otp"
	PathAlumni      = "/alumni"
	PathEditProfile = "/profile/edit"
	PathJobs        = "/jobs"
	PathPostJob     = "/jobs/new"
)

// AlumniProfilePath builds the path of one member's profile.
func AlumniProfilePath(id string) string {
	return PathAlumni + "/" + id
}

type access int

const (
	public access = iota
	// guest routes make no sense with a session and bounce to home
	guest
	protected
)

type routeDef struct {
	pattern []string
	screen  Screen
	access  access
}

// Route is a resolved navigation target.
type Route struct {
	Screen Screen
	Path   string
	Params map[string]string
	// RedirectedFrom is the requested path when the router sent the user
	// elsewhere, empty otherwise.
	RedirectedFrom string
}

func (r Route) Param(name string) string {
	return r.Params[name]
}

// Gate is what the router needs to know about the session.
type Gate interface {
	WaitResolved(ctx context.Context) error
	State() session.State
}

type Router struct {
	gate   Gate
	routes []routeDef
}

func New(gate Gate) *Router {
	r := &Router{gate: gate}
	r.handle("/", ScreenDashboard, protected)
	r.handle("/login", ScreenLogin, guest)
	r.handle("/register", ScreenRegister, guest)
	r.handle("/verify-otp", ScreenVerifyOTP, guest)
	r.handle("/alumni", ScreenAlumni, protected)
	r.handle("/alumni/:id", ScreenAlumniProfile, protected)
	r.handle("/profile/edit", ScreenEditProfile, protected)
	r.handle("/jobs", ScreenJobs, protected)
	r.handle("/jobs/new", ScreenPostJob, protected)
	return r
}

func (r *Router) handle(pattern string, screen Screen, a access) {
	r.routes = append(r.routes, routeDef{pattern: split(pattern), screen: screen, access: a})
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Normalize strips query, fragment and trailing slashes and guarantees a
// leading slash.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := split(strings.TrimSpace(path))
	return "/" + strings.Join(parts, "/")
}

func (r *Router) match(path string) (routeDef, map[string]string, bool) {
	segs := split(path)
	for _, def := range r.routes {
		if len(def.pattern) != len(segs) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i, p := range def.pattern {
			if strings.HasPrefix(p, ":") {
				if segs[i] == "" {
					ok = false
					break
				}
				params[p[1:]] = segs[i]
				continue
			}
			if p != segs[i] {
				ok = false
				break
			}
		}
		if ok {
			return def, params, true
		}
	}
	return routeDef{}, nil, false
}

// Resolve decides what to show for path. Unknown paths go home. Protected
// paths wait for the session to resolve and redirect to the login screen
// without a session; guest paths redirect home with one. The returned error
// is ctx's, when it ends before the session resolves.
func (r *Router) Resolve(ctx context.Context, path string) (Route, error) {
	requested := Normalize(path)
	target := requested

	def, params, ok := r.match(target)
	if !ok {
		target = PathHome
		def, params, _ = r.match(target)
	}

	if def.access != public {
		if err := r.gate.WaitResolved(ctx); err != nil {
			return Route{}, err
		}
		authed := r.gate.State() == session.Authenticated
		switch {
		case def.access == protected && !authed:
			target = PathLogin
			def, params, _ = r.match(target)
		case def.access == guest && authed:
			target = PathHome
			def, params, _ = r.match(target)
		}
	}

	route := Route{Screen: def.screen, Path: target, Params: params}
	if target != requested {
		route.RedirectedFrom = requested
	}
	return route, nil
}

// Protected reports whether path requires a session.
func (r *Router) Protected(path string) bool {
	def, _, ok := r.match(Normalize(path))
	return ok && def.access == protected
}
