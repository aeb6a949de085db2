// Package search filters an in-memory job list by the criteria a job seeker picks:
// free text, location, job type and category.
package search

import "strings"

// Criteria is the set of active filters. Every field is optional; an empty
// field always passes.
type Criteria struct {
	// Query is typed search text, matched against title, company name and description.
	Query string `json:"query,omitempty"`
	// Selected is the value picked in the filter card. It is matched against
	// location and category as well as the text fields.
	Selected string `json:"selected,omitempty"`
	// Location is matched against the posting location.
	Location string `json:"location,omitempty"`
	// JobType must equal the posting job type, ignoring case.
	JobType string `json:"job_type,omitempty"`
	// Category is a carousel label. It shares the Query channel.
	Category string `json:"category,omitempty"`
}

// Effective resolves the shared text channel: a selected category replaces the
// query and the selected value, and surrounding whitespace is dropped from
// every field.
func (c Criteria) Effective() Criteria {
	out := Criteria{
		Query:    strings.TrimSpace(c.Query),
		Selected: strings.TrimSpace(c.Selected),
		Location: strings.TrimSpace(c.Location),
		JobType:  strings.TrimSpace(c.JobType),
	}
	if cat := strings.TrimSpace(c.Category); cat != "" {
		out.Query = cat
		out.Selected = ""
	}
	return out
}

// Combined returns the text channel as one string, the way the search bar shows it.
func (c Criteria) Combined() string {
	return CombineQuery(c.Query, c.Selected)
}

// CombineQuery joins the typed search text and the selected filter value into
// the single string the search bar displays.
func CombineQuery(searchText, selected string) string {
	return strings.TrimSpace(strings.TrimSpace(searchText) + " " + strings.TrimSpace(selected))
}

// Query is a client-side helper holding the text channel shared by the search
// box, the filter radio group and the category carousel. Each setter
// overwrites the channel, so the last write wins. The HTTP API is stateless
// and builds Criteria from request parameters instead.
//
// A Query is owned by one view; it is not safe for concurrent use.
type Query struct {
	search   string
	selected string
	category string
	value    string
}

// SetSearch records typed search text and recombines it with the current radio selection.
func (q *Query) SetSearch(text string) {
	q.search = text
	q.category = ""
	q.value = CombineQuery(q.search, q.selected)
}

// Select records a radio filter value and recombines it with the typed search text.
func (q *Query) Select(value string) {
	q.selected = value
	q.category = ""
	q.value = CombineQuery(q.search, q.selected)
}

// SelectCategory sets the channel to a carousel category label, dropping any
// previous search text or radio selection.
func (q *Query) SelectCategory(label string) {
	q.search = ""
	q.selected = ""
	q.category = strings.TrimSpace(label)
	q.value = q.category
}

// Reset clears the channel.
func (q *Query) Reset() {
	*q = Query{}
}

// String returns the current query value.
func (q *Query) String() string {
	return q.value
}

// Criteria builds filter criteria from the current channel, keeping the typed
// text and the selected value apart.
func (q *Query) Criteria() Criteria {
	if q.category != "" {
		return Criteria{Category: q.category}
	}
	return Criteria{Query: q.search, Selected: q.selected}.Effective()
}
