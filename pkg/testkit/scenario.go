// Package testkit runs data-driven REST API tests from JSON scenario
// files. Each scenario describes one request and the expected status
// and body:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, handler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, PATCH, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /api/get-products
	RequestFileName string            `json:"requestFileName"` // path to request body file (relative to scenario dir)
	Headers         map[string]string `json:"headers"`         // extra request headers

	// Response assertions
	ResponseFileName string `json:"responseFileName"` // path to expected response JSON file
	ExpectedCode     int    `json:"expectedCode"`     // expected HTTP status code

	// resolved at load time — not in JSON
	dir string // directory of the scenario file
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

// validate performs basic sanity checks on the loaded scenario.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET" // sensible default
	}
	return nil
}

// RequestBodyPath returns the absolute path to the request body file,
// resolved relative to the scenario file's directory.
// Returns "" when RequestFileName is not set.
func (s *Scenario) RequestBodyPath() string {
	if s.RequestFileName == "" {
		return ""
	}
	if filepath.IsAbs(s.RequestFileName) {
		return s.RequestFileName
	}
	return filepath.Join(s.dir, s.RequestFileName)
}

// ResponseBodyPath returns the absolute path to the expected response file.
// Returns "" when ResponseFileName is not set.
func (s *Scenario) ResponseBodyPath() string {
	if s.ResponseFileName == "" {
		return ""
	}
	if filepath.IsAbs(s.ResponseFileName) {
		return s.ResponseFileName
	}
	return filepath.Join(s.dir, s.ResponseFileName)
}

// LoadAllFromDir loads every *.json file in dir as a Scenario.
// Files that fail to parse are collected as errors, not panicked.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
