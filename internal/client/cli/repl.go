package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/router"
)

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a stub.
type execIface interface {
	loggedIn() bool
	Navigate(ctx context.Context, path string) error
	Logout(ctx context.Context) error
	setFilter(search string, year int)
}

const (
	guestHelp  = "Available commands: login, register, verify, exit"
	memberHelp = "Available commands: home, alumni [-y YEAR] [text], profile <id>, edit, jobs, post, go <path>, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit". The first
// token selects the command; most commands are navigations. Handler errors
// are printed and the loop goes on.
//
//	alumnet (ada online /alumni)> alumni -y 2018 engineer
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "alumnet (%s)> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var path string
		switch cmd {
		case "help":
			if a.loggedIn() {
				fmt.Fprintln(w, memberHelp)
			} else {
				fmt.Fprintln(w, guestHelp)
			}
			continue

		case "home", "dashboard":
			path = router.PathHome
		case "login":
			path = router.PathLogin
		case "register":
			path = router.PathRegister
		case "verify":
			path = router.PathVerifyOTP
		case "edit":
			path = router.PathEditProfile
		case "jobs":
			path = router.PathJobs
		case "post":
			path = router.PathPostJob

		case "alumni":
			search, year, err := parseAlumniArgs(args)
			if err != nil {
				fmt.Fprintln(w, "Usage: alumni [-y YEAR] [text]")
				continue
			}
			a.setFilter(search, year)
			path = router.PathAlumni

		case "profile":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: profile <id>")
				continue
			}
			path = router.AlumniProfilePath(args[0])

		case "go":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: go <path>")
				continue
			}
			path = args[0]

		case "logout":
			if err := a.Logout(ctx); err != nil {
				fmt.Fprintln(w, "error:", err)
			}
			continue

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if err := a.Navigate(ctx, path); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
	}
}

// parseAlumniArgs reads "[-y YEAR] [text...]". No arguments clear the filter.
func parseAlumniArgs(args []string) (string, int, error) {
	year := 0
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-y" {
			if i+1 >= len(args) {
				return "", 0, fmt.Errorf("missing year")
			}
			y, err := strconv.Atoi(args[i+1])
			if err != nil {
				return "", 0, err
			}
			year = y
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return strings.Join(rest, " "), year, nil
}

func (a *App) setFilter(search string, year int) {
	a.filter.Search = search
	a.filter.Year = year
}
