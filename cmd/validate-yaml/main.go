package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blockedby/jobboard/internal/search"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("No files to check.")
		os.Exit(0)
	}

	failed := false
	for _, path := range os.Args[1:] {
		if err := check(path); err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("✅ %s is valid\n", path)
	}

	if failed {
		os.Exit(1)
	}
}

// check parses any YAML file and additionally validates facets files.
func check(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var temp any
	if err := yaml.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	if strings.Contains(strings.ToLower(filepath.Base(path)), "facets") {
		if _, err := search.ParseFacets(data); err != nil {
			return fmt.Errorf("invalid facets: %w", err)
		}
	}
	return nil
}
