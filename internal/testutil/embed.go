// Package testutil provides the XML fixtures and field-name conformance
// table shared by the package tests.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Fixtures returns the names of every embedded XML fixture.
func Fixtures() ([]string, error) {
	paths, err := fs.Glob(TestdataFS, "testdata/*.xml")
	if err != nil {
		return nil, err
	}
	for i, p := range paths {
		paths[i] = path.Base(p)
	}
	return paths, nil
}

// Read is a group of field names that must all read the same value.
type Read struct {
	Value string   `yaml:"value"`
	Names []string `yaml:"names"`
}

// KindConformance lists the naming expectations for one entity kind.
type KindConformance struct {
	Fixture   string         `yaml:"fixture"`
	Reads     []Read         `yaml:"reads"`
	Empty     []string       `yaml:"empty"`
	Counts    map[string]int `yaml:"counts"`
	Ambiguous []string       `yaml:"ambiguous"`
	NotFound  []string       `yaml:"not_found"`
}

// Conformance loads testdata/conformance.yaml, keyed by entity root tag.
func Conformance() (map[string]KindConformance, error) {
	data, err := ReadTestData("conformance.yaml")
	if err != nil {
		return nil, err
	}
	var out map[string]KindConformance
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse conformance table: %w", err)
	}
	return out, nil
}
