// Parse failure taxonomy. Every error pinpoints the section and 1-based
// line number of the offending input so a broken benchmark file can be
// fixed at the source; the first error aborts the parse and the partially
// built record is discarded.

package ssnd

import "fmt"

// MalformedError reports a line whose shape or field types do not match
// its section.
type MalformedError struct {
	Section Section
	Line    int
	Raw     string
	Reason  string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed instance: section %s, line %d: %s (line content: %q)",
		e.Section, e.Line, e.Reason, e.Raw)
}

// TruncatedError reports input that ended before every required section
// was read.
type TruncatedError struct {
	Section Section // the section the scanner was in (or waiting for) at EOF
	Line    int     // last line read
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated instance: input ended at line %d while section %s was still incomplete",
		e.Line, e.Section)
}

// InconsistentScenarioError reports a scenario set whose implied
// probability weights cannot sum to 1: either the demand draw counts
// differ across requests, or explicit weights drift outside tolerance.
type InconsistentScenarioError struct {
	Line   int
	Reason string
}

func (e *InconsistentScenarioError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("inconsistent scenarios: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("inconsistent scenarios: %s", e.Reason)
}

func malformed(sec Section, line int, raw, format string, args ...interface{}) error {
	return &MalformedError{Section: sec, Line: line, Raw: raw, Reason: fmt.Sprintf(format, args...)}
}
