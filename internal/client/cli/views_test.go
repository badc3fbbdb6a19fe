package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/services"
	"github.com/stretchr/testify/assert"
)

func TestRenderDashboard(t *testing.T) {
	d := &services.Dashboard{
		Me: models.Identity{ID: "1", FirstName: "Ada"},
		Alumni: []models.Identity{
			{ID: "1", FirstName: "Ada", LastName: "Lovelace", PassoutYear: 2018},
			{ID: "2", FirstName: "Alan", LastName: "Turing", Headline: "Codebreaker"},
		},
		RecentJobs:  []models.JobPosting{{Title: "Engineer", Company: "Acme"}},
		TotalAlumni: 2,
		ActiveJobs:  7,
	}

	var out bytes.Buffer
	renderDashboard(&out, d)
	s := out.String()

	assert.Contains(t, s, "Welcome, Ada!")
	assert.Contains(t, s, "Total alumni:  2")
	assert.Contains(t, s, "Active jobs:   7")
	assert.Contains(t, s, "Your headline: Not set")
	assert.Contains(t, s, "Alumni")
	assert.Contains(t, s, "Class of 2018")
	assert.Contains(t, s, "Codebreaker")
	assert.Contains(t, s, "Class of N/A")
	assert.Contains(t, s, "Engineer at Acme")
}

func TestRenderDashboard_Empty(t *testing.T) {
	var out bytes.Buffer
	renderDashboard(&out, &services.Dashboard{Me: models.Identity{FirstName: "Ada", Headline: "Mathematician"}})

	assert.Contains(t, out.String(), "Your headline: Mathematician")
	assert.Contains(t, out.String(), "No alumni yet.")
	assert.Contains(t, out.String(), "No jobs posted yet.")
}

func TestRenderDirectory(t *testing.T) {
	page := services.DirectoryPage{
		All:   make([]models.Identity, 3),
		Shown: []models.Identity{{ID: "7", FirstName: "Grace", LastName: "Hopper", PassoutYear: 1934, Headline: "Admiral"}},
	}

	var out bytes.Buffer
	renderDirectory(&out, page, models.DirectoryFilter{Search: "grace", Year: 1934})
	s := out.String()

	assert.Contains(t, s, "Showing 1 of 3 alumni")
	assert.Contains(t, s, `search="grace" year=1934`)
	assert.Contains(t, s, "Grace Hopper")
	assert.Contains(t, s, "Admiral")
}

func TestRenderDirectory_NoMatches(t *testing.T) {
	var out bytes.Buffer
	renderDirectory(&out, services.DirectoryPage{All: make([]models.Identity, 2)}, models.DirectoryFilter{})

	assert.Contains(t, out.String(), "Showing 0 of 2 alumni")
	assert.Contains(t, out.String(), "No alumni match your search.")
	assert.NotContains(t, out.String(), "Filter:")
}

func TestRenderProfile(t *testing.T) {
	var out bytes.Buffer
	renderProfile(&out, models.Identity{FirstName: "Ada", LastName: "Lovelace", Headline: "Mathematician", PassoutYear: 2018, Company: "Analytical"})
	s := out.String()

	assert.Contains(t, s, "Ada Lovelace\nMathematician\nBatch of 2018\n")
	assert.Contains(t, s, "Company:  Analytical")
	assert.NotContains(t, s, "Location:")
	assert.Contains(t, s, "No bio added yet.")
}

func TestRenderJobs(t *testing.T) {
	var out bytes.Buffer
	renderJobs(&out, []models.JobPosting{{
		Title:     "Engineer",
		Company:   "Acme",
		Location:  "Remote",
		ApplyURL:  "https://acme.test/apply",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}})
	s := out.String()

	assert.Contains(t, s, "Engineer at Acme")
	assert.Contains(t, s, "Remote")
	assert.Contains(t, s, "Apply: https://acme.test/apply")
	assert.Contains(t, s, "Posted 2024-03-01")
}

func TestRenderJobs_Empty(t *testing.T) {
	var out bytes.Buffer
	renderJobs(&out, nil)
	assert.Contains(t, out.String(), "No jobs posted yet.")
}
