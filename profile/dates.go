package profile

import (
	"strings"
	"time"

	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

// isoDateTime renders a time the way the record format stores it:
// seconds precision, microseconds only when present, offset only when
// the source carried one.
func isoDateTime(t time.Time, withZone bool) string {
	layout := "2006-01-02T15:04:05.999999"
	if withZone {
		layout += "Z07:00"
	}
	return t.Format(layout)
}

// dateTimeLayouts are tried in order for xsd:dateTime lexical forms.
var dateTimeLayouts = []struct {
	layout   string
	withZone bool
}{
	{"2006-01-02T15:04:05.999999999Z07:00", true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05Z07:00", true},
	{"2006-01-02T15:04:05", false},
}

func parseDateTimeValue(value string) (time.Time, bool, bool) {
	value = strings.TrimSpace(value)
	for _, l := range dateTimeLayouts {
		if t, err := time.Parse(l.layout, value); err == nil {
			return t, l.withZone, true
		}
	}
	return time.Time{}, false, false
}

func parseDateValue(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	return t, err == nil
}

func parseYearValue(value string) (int, bool) {
	t, err := time.Parse("2006", strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

func parseYearMonthValue(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(value))
	return t, err == nil
}

func xsdName(datatype string) string {
	switch datatype {
	case vocabulary.XSDBase + "dateTime", vocabulary.SchemaBase + "DateTime":
		return "dateTime"
	case vocabulary.XSDBase + "date", vocabulary.SchemaBase + "Date":
		return "date"
	case vocabulary.XSDBase + "gYear":
		return "gYear"
	case vocabulary.XSDBase + "gYearMonth":
		return "gYearMonth"
	default:
		return ""
	}
}

// CleanDatetime normalizes a date literal to the ISO 8601 datetime of
// its starting instant, based on the declared datatype. The lexical form
// must match the datatype: a bare date typed as dateTime is dropped, and
// so is a full datetime typed as date. Values carrying more precision
// than a gYear or gYearMonth allows are truncated to the datatype's
// precision instead of dropped.
func CleanDatetime(value, datatype string) (string, bool) {
	switch xsdName(datatype) {
	case "dateTime":
		if t, withZone, ok := parseDateTimeValue(value); ok {
			return isoDateTime(t, withZone), true
		}
	case "date":
		if t, ok := parseDateValue(value); ok {
			return isoDateTime(t, false), true
		}
	case "gYear":
		if year, ok := parseYearValue(truncateLexical(value, 4)); ok {
			return isoDateTime(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), false), true
		}
	case "gYearMonth":
		if t, ok := parseYearMonthValue(truncateLexical(value, 7)); ok {
			return isoDateTime(t, false), true
		}
	}
	return "", false
}

// CleanEndDatetime normalizes a date literal for an end-of-range field:
// the latest instant consistent with the declared precision. A bare year
// becomes Dec 31 23:59:59.999999 of that year, a year-month the last
// calendar day of that month. Full datetimes pass through unchanged.
func CleanEndDatetime(value, datatype string) (string, bool) {
	switch xsdName(datatype) {
	case "dateTime":
		if t, withZone, ok := parseDateTimeValue(value); ok {
			return isoDateTime(t, withZone), true
		}
	case "date":
		if t, ok := parseDateValue(value); ok {
			return isoDateTime(endOfDay(t), false), true
		}
	case "gYear":
		if year, ok := parseYearValue(truncateLexical(value, 4)); ok {
			end := time.Date(year, time.December, 31, 23, 59, 59, lastMicro, time.UTC)
			return isoDateTime(end, false), true
		}
	case "gYearMonth":
		if t, ok := parseYearMonthValue(truncateLexical(value, 7)); ok {
			// Day 0 of the next month is the last day of this one.
			end := time.Date(t.Year(), t.Month()+1, 0, 23, 59, 59, lastMicro, time.UTC)
			return isoDateTime(end, false), true
		}
	}
	return "", false
}

// truncateLexical cuts an over-precise lexical form down to the
// datatype's own length, so "2020-05" still counts as the year 2020.
func truncateLexical(value string, n int) string {
	value = strings.TrimSpace(value)
	if len(value) > n {
		return value[:n]
	}
	return value
}

const lastMicro = 999999 * int(time.Microsecond)

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, lastMicro, time.UTC)
}

// cetZone is the timezone assumed when comparing stored dates that carry
// no explicit offset.
var cetZone = time.FixedZone("CET", 3600)

// ParseStoredDate parses an ISO datetime string from a stored record,
// assuming Central European time when no offset is present.
func ParseStoredDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, l := range dateTimeLayouts {
		if t, err := time.ParseInLocation(l.layout, value, cetZone); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", value, cetZone); err == nil {
		return t, true
	}
	return time.Time{}, false
}
