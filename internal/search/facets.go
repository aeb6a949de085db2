package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterGroup is one radio group of the filter card.
type FilterGroup struct {
	Type   string   `yaml:"type" json:"type"`
	Values []string `yaml:"values" json:"values"`
}

// Facets lists the selectable filter values and the carousel categories.
type Facets struct {
	Groups     []FilterGroup `yaml:"groups" json:"groups"`
	Categories []string      `yaml:"categories" json:"categories"`
}

// DefaultFacets returns the filter values shipped with the job board.
func DefaultFacets() *Facets {
	return &Facets{
		Groups: []FilterGroup{
			{Type: "Location", Values: []string{"Delhi NCR", "Bangalore", "Hyderabad", "Pune", "Mumbai"}},
			{Type: "Industry", Values: []string{"Frontend Developer", "Backend Developer", "FullStack Developer"}},
			{Type: "Salary", Values: []string{"0-40k", "42-1lakh", "1lakh to 5lakh"}},
		},
		Categories: []string{
			"Frontend Developer",
			"Backend Developer",
			"Data Science",
			"Graphic Designer",
			"FullStack Developer",
		},
	}
}

// LoadFacets reads facets from a YAML file. An empty path or a missing file
// yields the defaults; a file that exists but does not parse or validate is an error.
func LoadFacets(path string) (*Facets, error) {
	if path == "" {
		return DefaultFacets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultFacets(), nil
		}
		return nil, fmt.Errorf("read facets file: %w", err)
	}

	f, err := ParseFacets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseFacets decodes and validates facets YAML.
func ParseFacets(data []byte) (*Facets, error) {
	var f Facets
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse facets: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate rejects empty groups, blank values and duplicates within a group.
func (f *Facets) Validate() error {
	seenTypes := make(map[string]bool, len(f.Groups))
	for _, g := range f.Groups {
		name := strings.TrimSpace(g.Type)
		if name == "" {
			return errors.New("filter group without type")
		}
		if seenTypes[strings.ToLower(name)] {
			return fmt.Errorf("duplicate filter group %q", name)
		}
		seenTypes[strings.ToLower(name)] = true

		if len(g.Values) == 0 {
			return fmt.Errorf("filter group %q has no values", name)
		}
		if err := uniqueValues(g.Values); err != nil {
			return fmt.Errorf("filter group %q: %w", name, err)
		}
	}
	if err := uniqueValues(f.Categories); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	return nil
}

// IsCategory reports whether label is one of the carousel categories.
func (f *Facets) IsCategory(label string) bool {
	for _, c := range f.Categories {
		if strings.EqualFold(c, strings.TrimSpace(label)) {
			return true
		}
	}
	return false
}

func uniqueValues(values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			return errors.New("blank value")
		}
		if seen[key] {
			return fmt.Errorf("duplicate value %q", v)
		}
		seen[key] = true
	}
	return nil
}
