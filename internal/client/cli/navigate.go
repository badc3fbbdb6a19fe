package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/alumnet/internal/client/router"
)

const maxHops = 8

var ErrTooManyRedirects = errors.New("too many redirects")

// screenFn renders one screen and returns where to go next, "" to stay.
type screenFn func(ctx context.Context, r router.Route) (string, error)

// Navigate resolves path and keeps following the screens' answers until one
// of them settles.
func (a *App) Navigate(ctx context.Context, path string) error {
	for hop := 0; path != ""; hop++ {
		if hop >= maxHops {
			return fmt.Errorf("%w: %s", ErrTooManyRedirects, path)
		}

		route, err := a.router.Resolve(ctx, path)
		if err != nil {
			return err
		}
		if route.Screen == router.ScreenLogin && route.RedirectedFrom != "" && route.RedirectedFrom != router.PathHome {
			a.note.info("Please log in to continue")
		}
		a.current = route

		fn, ok := a.screens()[route.Screen]
		if !ok {
			return fmt.Errorf("no screen for %s", route.Screen)
		}

		fmt.Fprintln(a.out)
		path, err = fn(ctx, route)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) screens() map[router.Screen]screenFn {
	return map[router.Screen]screenFn{
		router.ScreenDashboard:     a.showDashboard,
		router.ScreenLogin:         a.showLogin,
		router.ScreenRegister:      a.showRegister,
		router.ScreenVerifyOTP:     a.showVerifyOTP,
		router.ScreenAlumni:        a.showAlumni,
		router.ScreenAlumniProfile: a.showAlumniProfile,
		router.ScreenEditProfile:   a.showEditProfile,
		router.ScreenJobs:          a.showJobs,
		router.ScreenPostJob:       a.showPostJob,
	}
}

// Logout ends the session and lands on the login form.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		// the in-memory session is gone either way
		a.note.failure(err, "Could not forget the stored session")
	} else {
		a.note.success("", "Logged out")
	}
	return a.Navigate(ctx, router.PathLogin)
}
