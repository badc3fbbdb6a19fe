package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/router"
	"github.com/dmitrijs2005/alumnet/internal/common"
)

// clearValue typed into an optional profile field empties it.
const clearValue = "-"

// ask prompts with the field's last answer as default and remembers the new
// one.
func (a *App) ask(field, prompt string) (string, error) {
	v, err := GetWithDefault(a.reader, prompt, a.memory[field], a.out)
	if err != nil {
		return "", err
	}
	a.memory[field] = v
	return v, nil
}

// failed reports a screen's load or submit error. A rejected token means the
// session is gone, so the user is sent to log in again.
func (a *App) failed(ctx context.Context, err error, fallback string) (string, error) {
	if errors.Is(err, client.ErrUnauthorized) {
		_, _ = a.session.Refresh(ctx)
		if !a.loggedIn() {
			a.note.info("Your session has expired. Please log in again.")
			return router.PathLogin, nil
		}
	}
	a.note.failure(err, fallback)
	return "", nil
}

func (a *App) showLogin(ctx context.Context, r router.Route) (string, error) {
	fmt.Fprintln(a.out, "Log in to alumnet (empty email or password cancels)")

	email, err := a.ask("email", "Email")
	if err != nil || email == "" {
		return "", err
	}
	pw, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	if len(pw) == 0 {
		return "", nil
	}

	me, err := a.auth.Login(ctx, email, string(pw))
	if err != nil {
		a.note.failure(err, "Login failed")
		return "", nil
	}
	a.note.success("", fmt.Sprintf("Welcome back, %s!", me.FirstName))

	if from := r.RedirectedFrom; from != "" && a.router.Protected(from) {
		return from, nil
	}
	return router.PathHome, nil
}

func (a *App) showRegister(ctx context.Context, _ router.Route) (string, error) {
	fmt.Fprintln(a.out, "Create your alumnet account (empty first name cancels)")

	first, err := a.ask("first_name", "First name")
	if err != nil || first == "" {
		return "", err
	}
	last, err := a.ask("last_name", "Last name")
	if err != nil {
		return "", err
	}
	email, err := a.ask("email", "Email")
	if err != nil {
		return "", err
	}
	pw, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(confirm)

	if a.memory["passout_year"] == "" {
		a.memory["passout_year"] = strconv.Itoa(time.Now().Year())
	}
	yearText, err := a.ask("passout_year", "Passout year")
	if err != nil {
		return "", err
	}
	year, convErr := strconv.Atoi(yearText)
	if convErr != nil {
		a.note.failure(&models.FormError{Message: "Passout year must be a number"}, "Registration failed")
		return "", nil
	}

	res, err := a.auth.Register(ctx, models.Registration{
		Email:           email,
		Password:        string(pw),
		ConfirmPassword: string(confirm),
		FirstName:       first,
		LastName:        last,
		PassoutYear:     year,
	})
	if err != nil {
		a.note.failure(err, "Registration failed")
		return "", nil
	}
	a.note.success(res.Message, "Registration successful! Please check your email for the verification code.")
	return router.PathVerifyOTP, nil
}

func (a *App) showVerifyOTP(ctx context.Context, _ router.Route) (string, error) {
	email, err := a.auth.PendingEmail(ctx)
	if err != nil {
		a.note.failure(err, "Could not read the pending verification")
		return "", nil
	}
	if email == "" {
		a.note.info("No pending verification. Please register first.")
		return router.PathRegister, nil
	}

	fmt.Fprintf(a.out, "Verify your email\nWe sent a 6-digit code to %s\n", email)
	for {
		code, err := GetSimpleText(a.reader, "Code (r to resend, empty to cancel)", a.out)
		if err != nil {
			return "", err
		}

		switch code {
		case "":
			return "", nil
		case "r":
			msg, err := a.auth.ResendOTP(ctx)
			if err != nil {
				a.note.failure(err, "Failed to resend the code")
			} else {
				a.note.success(msg, "A new code has been sent")
			}
			continue
		}

		msg, err := a.auth.VerifyOTP(ctx, code)
		if err != nil {
			a.note.failure(err, "Verification failed")
			continue
		}
		a.note.success(msg, "Email verified! Please log in.")
		a.memory["email"] = email
		return router.PathLogin, nil
	}
}

func (a *App) showDashboard(ctx context.Context, _ router.Route) (string, error) {
	d, err := a.dashboard.Load(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load the dashboard")
	}
	renderDashboard(a.out, d)
	return "", nil
}

func (a *App) showAlumni(ctx context.Context, _ router.Route) (string, error) {
	page, err := a.directory.List(ctx, a.filter)
	if err != nil {
		return a.failed(ctx, err, "Failed to load the directory")
	}
	renderDirectory(a.out, page, a.filter)
	if len(page.Years) > 0 {
		fmt.Fprintf(a.out, "Years: %v\n", page.Years)
	}
	fmt.Fprintln(a.out, "Filter with 'alumni [-y YEAR] [text]', open one with 'profile <id>'")
	return "", nil
}

func (a *App) showAlumniProfile(ctx context.Context, r router.Route) (string, error) {
	p, err := a.directory.Get(ctx, r.Param("id"))
	if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintln(a.out, "Alumni not found.")
		return "", nil
	}
	if err != nil {
		return a.failed(ctx, err, "Failed to load the profile")
	}
	renderProfile(a.out, p)
	return "", nil
}

func (a *App) showEditProfile(ctx context.Context, _ router.Route) (string, error) {
	me, ok := a.profile.Current()
	if !ok {
		return router.PathLogin, nil
	}

	fmt.Fprintf(a.out, "Edit your profile (Enter keeps a value, %q clears an optional one)\n", clearValue)

	var u models.ProfileUpdate
	changed := false
	field := func(prompt, current string, required bool, dst **string) error {
		v, err := GetWithDefault(a.reader, prompt, current, a.out)
		if err != nil {
			return err
		}
		if v == clearValue && !required {
			v = ""
		}
		if v != current {
			*dst = &v
			changed = true
		}
		return nil
	}

	if err := field("First name", me.FirstName, true, &u.FirstName); err != nil {
		return "", err
	}
	if err := field("Last name", me.LastName, true, &u.LastName); err != nil {
		return "", err
	}
	if err := field("Headline", me.Headline, false, &u.Headline); err != nil {
		return "", err
	}
	if err := field("Company", me.Company, false, &u.Company); err != nil {
		return "", err
	}
	if err := field("Location", me.Location, false, &u.Location); err != nil {
		return "", err
	}

	bio, err := GetMultiline(a.reader, "Bio", me.Bio, a.out)
	if err != nil {
		return "", err
	}
	if bio == clearValue {
		bio = ""
	}
	if bio != me.Bio {
		u.Bio = &bio
		changed = true
	}

	if !changed {
		a.note.info("Nothing to update")
		return router.PathHome, nil
	}

	msg, _, err := a.profile.Update(ctx, u)
	if err != nil {
		return a.failed(ctx, err, "Failed to update the profile")
	}
	a.note.success(msg, "Profile updated successfully!")
	return router.PathHome, nil
}

func (a *App) showJobs(ctx context.Context, _ router.Route) (string, error) {
	jobs, err := a.jobs.List(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load jobs")
	}
	renderJobs(a.out, jobs)
	fmt.Fprintln(a.out, "\nType 'post' to share an opening")
	return "", nil
}

func (a *App) showPostJob(ctx context.Context, _ router.Route) (string, error) {
	fmt.Fprintln(a.out, "Post a job (empty title cancels)")

	title, err := a.ask("job_title", "Title")
	if err != nil || title == "" {
		return "", err
	}
	company, err := a.ask("job_company", "Company")
	if err != nil {
		return "", err
	}
	location, err := a.ask("job_location", "Location")
	if err != nil {
		return "", err
	}
	description, err := GetMultiline(a.reader, "Description", a.memory["job_description"], a.out)
	if err != nil {
		return "", err
	}
	a.memory["job_description"] = description
	applyURL, err := a.ask("job_apply_url", "Apply URL")
	if err != nil {
		return "", err
	}

	msg, _, err := a.jobs.Post(ctx, models.NewJob{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		ApplyURL:    applyURL,
	})
	if err != nil {
		return a.failed(ctx, err, "Failed to post the job")
	}
	for _, k := range []string{"job_title", "job_company", "job_location", "job_description", "job_apply_url"} {
		delete(a.memory, k)
	}
	a.note.success(msg, "Job posted successfully!")
	return router.PathJobs, nil
}
