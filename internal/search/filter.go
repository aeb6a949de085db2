package search

import (
	"strings"

	"github.com/blockedby/jobboard/internal/models"
)

// Filter returns the jobs that satisfy every active criterion, in input order.
// It never returns nil: no matches yields an empty slice.
func Filter(jobs []models.Job, c Criteria) []models.Job {
	c = c.Effective()

	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if matches(&j, c) {
			out = append(out, j)
		}
	}
	return out
}

// matches expects already resolved criteria.
func matches(j *models.Job, c Criteria) bool {
	return matchesText(j, c.Query) &&
		matchesSelected(j, c.Selected) &&
		matchesLocation(j, c.Location) &&
		matchesJobType(j, c.JobType)
}

// matchesText requires the whole query as a substring of the title, company
// name or description.
func matchesText(j *models.Job, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(query, j.Title, j.CompanyName(), j.Description)
}

// matchesSelected checks a filter card value. Location and category values
// match those fields; industry values such as "Backend Developer" live in
// the text fields.
func matchesSelected(j *models.Job, selected string) bool {
	if selected == "" {
		return true
	}
	return containsFold(selected, j.Location, j.Category, j.Title, j.CompanyName(), j.Description)
}

func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matchesLocation(j *models.Job, location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(j.Location), strings.ToLower(location))
}

func matchesJobType(j *models.Job, jobType string) bool {
	if jobType == "" {
		return true
	}
	return strings.EqualFold(string(j.JobType), jobType)
}
