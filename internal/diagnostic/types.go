package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics is an ordered list of diagnostics.
type Diagnostics struct {
	Items []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Backend names the backend that reported it (if any).
	Backend string
	// Location identifies the sheet or sheet.column it relates to (if any).
	Location string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic codes.
const (
	CodeUnsupportedType   = "unsupported-type"
	CodeUnsupportedOption = "unsupported-option"
	CodeInvalidOption     = "invalid-option"
	CodeUnknownSheet      = "unknown-sheet"
	CodeMissingKey        = "missing-key"
	CodeUnknownCustomType = "unknown-custom-type"
	CodeFlagsOverflow     = "flags-overflow"
	CodeEnumConflict      = "enum-conflict"
	CodeFieldConflict     = "field-conflict"
	CodeConfig            = "config"
	CodeRender            = "render"
	CodeRefCycle          = "ref-cycle"
)

func (d *Diagnostics) add(sev Severity, code, message, backend, location string) {
	d.Items = append(d.Items, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Backend:  backend,
		Location: location,
	})
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, backend, location string) {
	d.add(SeverityError, code, message, backend, location)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, backend, location string) {
	d.add(SeverityWarning, code, message, backend, location)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, backend, location string) {
	d.add(SeverityInfo, code, message, backend, location)
}

// Merge appends another Diagnostics instance to this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// Errors returns the error diagnostics in order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the warning diagnostics in order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

func (d *Diagnostics) filter(sev Severity) []Diagnostic {
	var out []Diagnostic

	for _, it := range d.Items {
		if it.Severity == sev {
			out = append(out, it)
		}
	}

	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, it := range d.Items {
		if it.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Messages returns the warning and error strings in report order.
func (d *Diagnostics) Messages() []string {
	var out []string

	for _, it := range d.Items {
		if it.Severity == SeverityInfo {
			continue
		}

		out = append(out, it.String())
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	errs := d.Errors()
	if len(errs) == 0 {
		return nil
	}

	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Backend != "" {
		prefix = append(prefix, "["+d.Backend+"]")
	}

	if d.Location != "" {
		prefix = append(prefix, d.Location)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
