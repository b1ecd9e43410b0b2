package config

import (
	"fmt"
	"regexp"

	"github.com/AndreyAkinshin/junitmerge/internal/locate"
)

// Report name: lowercase letters, digits, and hyphens.
var reportNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if cfg.Parallelism < 1 {
		return nil, &ValidationError{Field: "parallelism", Message: "must be at least 1"}
	}

	if len(cfg.Reports) == 0 {
		return nil, &ValidationError{Field: "reports", Message: "at least one report is required"}
	}

	if cfg.Defaults != nil {
		if err := locate.ValidatePatterns(cfg.Defaults.Exclude); err != nil {
			return nil, &ValidationError{Field: "defaults.exclude", Message: err.Error()}
		}
	}

	seen := make(map[string]int, len(cfg.Reports))
	for i, r := range cfg.Reports {
		if err := validateReport(i, r); err != nil {
			return nil, err
		}
		if first, ok := seen[r.Name]; ok {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("reports[%d].name", i),
				Message: fmt.Sprintf("duplicate report name %q (first used by reports[%d])", r.Name, first),
			}
		}
		seen[r.Name] = i

		if len(r.Files) > 0 && len(r.Exclude) > 0 {
			warnings = append(warnings, fmt.Sprintf("report %q: exclude has no effect with an explicit files list", r.Name))
		}
	}

	return warnings, nil
}

func validateReport(i int, r ReportConfig) error {
	field := func(name string) string {
		return fmt.Sprintf("reports[%d].%s", i, name)
	}

	if err := ValidateReportName(r.Name); err != nil {
		return &ValidationError{Field: field("name"), Message: err.(*ValidationError).Message}
	}

	switch {
	case r.Dir == "" && len(r.Files) == 0:
		return &ValidationError{Field: field("dir"), Message: "either dir or files is required"}
	case r.Dir != "" && len(r.Files) > 0:
		return &ValidationError{Field: field("files"), Message: "cannot be combined with dir"}
	}

	if r.Output == "" {
		return &ValidationError{Field: field("output"), Message: "is required"}
	}

	if err := locate.ValidatePatterns(r.Exclude); err != nil {
		return &ValidationError{Field: field("exclude"), Message: err.Error()}
	}

	return nil
}

// ValidateReportName checks if a report name is valid.
func ValidateReportName(name string) error {
	if name == "" {
		return &ValidationError{Field: "report name", Message: "is required"}
	}
	if !reportNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "report name",
			Message: "must match pattern ^[a-z][a-z0-9-]*$ (lowercase letters, digits, hyphens)",
		}
	}
	return nil
}
