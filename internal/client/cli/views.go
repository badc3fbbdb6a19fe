package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/services"
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func renderDashboard(w io.Writer, d *services.Dashboard) {
	fmt.Fprintf(w, "Welcome, %s!\n\n", d.Me.FirstName)
	fmt.Fprintf(w, "  Total alumni:  %d\n", d.TotalAlumni)
	fmt.Fprintf(w, "  Active jobs:   %d\n", d.ActiveJobs)
	fmt.Fprintf(w, "  Your headline: %s\n", orDefault(d.Me.Headline, "Not set"))

	fmt.Fprintln(w, "\nRecent alumni")
	if len(d.Alumni) == 0 {
		fmt.Fprintln(w, "  No alumni yet.")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range d.Alumni {
		fmt.Fprintf(tw, "  %s\t%s\t%s\tClass of %s\n", p.ID, p.FullName(), orDefault(p.Headline, "Alumni"), p.Batch())
	}
	_ = tw.Flush()

	fmt.Fprintln(w, "\nLatest jobs")
	if len(d.RecentJobs) == 0 {
		fmt.Fprintln(w, "  No jobs posted yet.")
	}
	for _, j := range d.RecentJobs {
		fmt.Fprintf(w, "  %s at %s\n", j.Title, j.Company)
	}
}

func renderDirectory(w io.Writer, page services.DirectoryPage, f models.DirectoryFilter) {
	fmt.Fprintln(w, "Alumni directory")
	if f.Search != "" || f.Year != 0 {
		fmt.Fprintf(w, "Filter: search=%q year=%s\n", f.Search, yearLabel(f.Year))
	}
	fmt.Fprintln(w, page.Summary())
	if len(page.Shown) == 0 {
		fmt.Fprintln(w, "No alumni match your search.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBATCH\tHEADLINE")
	for _, p := range page.Shown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.FullName(), p.Batch(), p.Headline)
	}
	_ = tw.Flush()
}

func yearLabel(y int) string {
	if y == 0 {
		return "all"
	}
	return fmt.Sprint(y)
}

func renderProfile(w io.Writer, p models.Identity) {
	fmt.Fprintln(w, p.FullName())
	if p.Headline != "" {
		fmt.Fprintln(w, p.Headline)
	}
	fmt.Fprintf(w, "Batch of %s\n", p.Batch())
	if p.Company != "" {
		fmt.Fprintf(w, "Company:  %s\n", p.Company)
	}
	if p.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", p.Location)
	}
	if p.Email != "" {
		fmt.Fprintf(w, "Email:    %s\n", p.Email)
	}
	fmt.Fprintln(w, "\nAbout")
	fmt.Fprintln(w, orDefault(p.Bio, "No bio added yet."))
}

func renderJobs(w io.Writer, jobs []models.JobPosting) {
	fmt.Fprintln(w, "Job board")
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs posted yet.")
		return
	}
	for _, j := range jobs {
		fmt.Fprintf(w, "\n%s at %s\n", j.Title, j.Company)
		if j.Location != "" {
			fmt.Fprintf(w, "  %s\n", j.Location)
		}
		if j.Description != "" {
			fmt.Fprintf(w, "  %s\n", j.Description)
		}
		if j.ApplyURL != "" {
			fmt.Fprintf(w, "  Apply: %s\n", j.ApplyURL)
		}
		if !j.CreatedAt.IsZero() {
			fmt.Fprintf(w, "  Posted %s\n", j.CreatedAt.Format("2006-01-02"))
		}
	}
}
