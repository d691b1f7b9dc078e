package template

import (
	"regexp"
	"strings"
)

// ValidationResult reports syntax problems found in a template without
// resolving it. Used by editor-side validation, not by the execution path.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

var emptySpanPattern = regexp.MustCompile(`\{\{\s*\}\}`)

// Validate checks a template for unmatched braces, empty expressions and
// stray single braces.
func Validate(tmpl string) ValidationResult {
	res := ValidationResult{Valid: true}
	if tmpl == "" {
		return res
	}

	if strings.Count(tmpl, "{{") != strings.Count(tmpl, "}}") {
		res.Errors = append(res.Errors, "unmatched template braces {{ or }}")
	}

	if emptySpanPattern.MatchString(tmpl) {
		res.Warnings = append(res.Warnings, "empty template expression {{}}")
	}

	// Strip well-formed spans; anything brace-like left over is malformed.
	stripped := spanPattern.ReplaceAllString(emptySpanPattern.ReplaceAllString(tmpl, ""), "")
	if strings.ContainsAny(stripped, "{}") {
		res.Errors = append(res.Errors, "malformed template expression")
	}

	res.Valid = len(res.Errors) == 0
	return res
}
