package window

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the textual format accepted for the from/to query parameters.
	Layout = "2006-01-02-15-04"

	// ISOLayout is the normalized form used for cache keys and store filters.
	ISOLayout = "2006-01-02T15:04:05"

	// OpenStart marks a missing lower bound in cache keys.
	OpenStart = "infinite"

	// DefaultPrefix is the key prefix artifacts are published under.
	DefaultPrefix = "twitter"
)

// ParseError reports a from/to parameter that does not match Layout.
type ParseError struct {
	Param string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Window is a normalized time interval. To is always set; From is nil for an
// open-started window.
type Window struct {
	From *time.Time
	To   time.Time
}

// Filter is a store-agnostic range filter over created_at.
type Filter struct {
	Expression string
	Values     map[string]string
}

// Parse normalizes raw query parameters into a Window. A nil params map means
// the request carried no query string at all. now is truncated to the minute
// so that open-ended requests inside the same minute share a key.
//
// from is validated before to and only the first failure is reported. No
// ordering check is made between the two bounds.
func Parse(params map[string]string, now time.Time) (Window, error) {
	w := Window{To: now.Truncate(time.Minute)}
	if params == nil {
		return w, nil
	}

	if raw, ok := params["from"]; ok && raw != "" {
		from, err := parseBound("from", raw)
		if err != nil {
			return Window{}, err
		}
		w.From = &from
	}

	if raw, ok := params["to"]; ok && raw != "" {
		to, err := parseBound("to", raw)
		if err != nil {
			return Window{}, err
		}
		w.To = to
	}

	return w, nil
}

func parseBound(param, raw string) (time.Time, error) {
	ts, err := time.Parse(Layout, raw)
	if err != nil {
		return time.Time{}, &ParseError{Param: param, Value: raw, Err: err}
	}
	return ts, nil
}

// Open reports whether the window has no lower bound.
func (w Window) Open() bool {
	return w.From == nil
}

// FromText returns the ISO text of the lower bound, or OpenStart.
func (w Window) FromText() string {
	if w.From == nil {
		return OpenStart
	}
	return w.From.Format(ISOLayout)
}

// ToText returns the ISO text of the upper bound.
func (w Window) ToText() string {
	return w.To.Format(ISOLayout)
}

// Key derives the artifact name for the window. Identical windows always
// produce identical keys.
func (w Window) Key(prefix string) string {
	name := fmt.Sprintf("%s_%s.json", w.FromText(), w.ToText())
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// Filter builds the created_at range filter: strictly after From when set,
// always strictly before To.
func (w Window) Filter() Filter {
	var clauses []string
	values := make(map[string]string, 2)

	if w.From != nil {
		clauses = append(clauses, "created_at > :from")
		values[":from"] = w.FromText()
	}
	clauses = append(clauses, "created_at < :to")
	values[":to"] = w.ToText()

	return Filter{
		Expression: strings.Join(clauses, " and "),
		Values:     values,
	}
}

// Match evaluates the filter against a created_at value using the same
// lexical string comparison a string-typed store attribute gets.
func (f Filter) Match(createdAt string) bool {
	if from, ok := f.Values[":from"]; ok && !(createdAt > from) {
		return false
	}
	if to, ok := f.Values[":to"]; ok && !(createdAt < to) {
		return false
	}
	return true
}
