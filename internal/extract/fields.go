package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/vicam001/order-extract/internal/layout"
)

// Result is the outcome of a single field extraction. It distinguishes a
// value that was never located from one that was located but empty, so the
// sentinel-substitution decision stays with the caller.
type Result struct {
	value string
	state resultState
}

type resultState int

const (
	stateNotFound resultState = iota
	stateFoundEmpty
	stateFound
)

// Found wraps a located value; empty text degrades to FoundEmpty.
func Found(value string) Result {
	if strings.TrimSpace(value) == "" {
		return Result{state: stateFoundEmpty}
	}
	return Result{value: value, state: stateFound}
}

// NotFound marks a field whose source cell or node was absent.
func NotFound() Result { return Result{state: stateNotFound} }

// Ok reports whether a non-empty value was located.
func (r Result) Ok() bool { return r.state == stateFound }

// Located reports whether the source was present at all, empty or not.
func (r Result) Located() bool { return r.state != stateNotFound }

// Value returns the extracted text, empty unless Ok.
func (r Result) Value() string { return r.value }

// Or substitutes a fallback for anything but a non-empty value.
func (r Result) Or(fallback string) string {
	if r.Ok() {
		return r.value
	}
	return fallback
}

// Map applies fn to a located value, preserving absence.
func (r Result) Map(fn func(string) string) Result {
	if !r.Ok() {
		return r
	}
	return Found(fn(r.value))
}

// FirstNonMatching scans a row left to right and returns the first cell whose
// trimmed text is non-empty and not identical to exclude. One label/value
// pair per row is assumed; the exclusion skips the label cell.
func FirstNonMatching(row []layout.Cell, exclude string) Result {
	for _, cell := range row {
		if strings.TrimSpace(cell.Content) == "" {
			continue
		}
		if cell.Content == exclude {
			continue
		}
		return Found(cell.Content)
	}
	return NotFound()
}

var postalCodeRe = regexp.MustCompile(`^\d{4,5}$`)

// FirstWordIfPostalCode returns the first whitespace-delimited token when it
// fully matches 4-5 decimal digits; otherwise the original text unchanged.
// Postal codes sometimes share a cell with a trailing city name; this is a
// best-effort split, not a validator.
func FirstWordIfPostalCode(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	if postalCodeRe.MatchString(fields[0]) {
		return fields[0]
	}
	return text
}

// StripLabelPrefix removes label from the start of text, case-insensitively,
// along with any leftover leading whitespace. An empty label is a no-op; text
// always comes back trimmed.
func StripLabelPrefix(label, text string) string {
	text = strings.TrimSpace(text)
	label = strings.TrimSpace(label)
	if label == "" || text == "" {
		return text
	}
	if strings.HasPrefix(strings.ToUpper(text), strings.ToUpper(label)) {
		return strings.TrimLeft(text[len(label):], " \t")
	}
	return text
}

// ConcatenateFrom joins the content of every text node from startIndex
// onward, skipping blanks, with newline separators. Recovers free-text
// commentary that follows the fixed labeled fields.
func ConcatenateFrom(texts []layout.TextNode, startIndex int) string {
	if startIndex < 0 {
		startIndex = 0
	}
	var parts []string
	for i := startIndex; i < len(texts); i++ {
		if strings.TrimSpace(texts[i].Content) == "" {
			continue
		}
		parts = append(parts, texts[i].Content)
	}
	return strings.Join(parts, "\n")
}

// dateLayouts are tried in order by FormatDate. Day-first layouts go before
// their month-first twins to match the template's locale.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"2006/01/02",
	"2 January 2006",
	"January 2, 2006",
}

// FormatDate reformats a permissively parsed date to DD/MM/YYYY. On parse
// failure the raw text passes through unchanged rather than blocking
// extraction.
func FormatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	for _, layoutStr := range dateLayouts {
		if t, err := time.Parse(layoutStr, trimmed); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return raw
}
