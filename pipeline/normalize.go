package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"immo-scraper/models"
	"immo-scraper/schema"
)

var (
	// nonDigit matches everything that is not an ASCII digit.
	nonDigit = regexp.MustCompile(`\D`)
	// numberRun matches the first integer-dot-fraction run in a string.
	numberRun = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// spaceStripper removes ordinary spaces and the narrow no-break space
	// (U+202F) that the source sites put between digit groups and units.
	spaceStripper = strings.NewReplacer(" ", "", " ", "")
)

// CollapseFirst reduces a raw value to a single trimmed string: the scalar
// itself, or the first element of a sequence. Empty input is absent.
func CollapseFirst(v models.RawValue) (string, bool) {
	s, ok := v.First()
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// NormalizeText is CollapseFirst under the name the schema kinds use.
func NormalizeText(v models.RawValue) (string, bool) {
	return CollapseFirst(v)
}

// NormalizeInt strips every non-digit character and parses what remains.
// "1 500 000 CFA" becomes 1500000; "Prix sur demande" is absent.
func NormalizeInt(v models.RawValue) (int64, bool) {
	s, ok := CollapseFirst(v)
	if !ok {
		return 0, false
	}
	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeFloat removes spaces and U+202F, then parses the first numeric
// run. The dot is the only decimal separator recognized; a comma splits
// "120,5" into two runs and the first one wins, matching the source
// extraction this replaces.
func NormalizeFloat(v models.RawValue) (float64, bool) {
	s, ok := CollapseFirst(v)
	if !ok {
		return 0, false
	}
	run := numberRun.FindString(spaceStripper.Replace(s))
	if run == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Normalize coerces every schema column present in the raw record to its
// typed form. Fields that are absent, empty, or fail coercion are simply
// left out of the result; timestamp columns are the validator's job.
func Normalize(raw models.RawRecord, sc schema.Schema) models.Record {
	rec := make(models.Record, len(sc.Columns))
	for _, col := range sc.Columns {
		v := raw.Get(col.Name)
		if v.Absent() {
			continue
		}
		switch col.Kind {
		case schema.Integer:
			if n, ok := NormalizeInt(v); ok {
				rec[col.Name] = n
			}
		case schema.Real:
			if f, ok := NormalizeFloat(v); ok {
				rec[col.Name] = f
			}
		case schema.Text:
			if s, ok := NormalizeText(v); ok {
				rec[col.Name] = s
			}
		case schema.Timestamp:
			// stamped downstream, never extracted
		}
	}
	return rec
}
