// Package value implements the ODRL operand value model: a typed sum over
// scalar and set-valued strings, and the XSD data-type classification used
// to parse them lazily at operator-application time.
package value

import (
	"strconv"
	"strings"
	"time"

	"github.com/odrlcore/odrlengine/pkg/odrlerr"
)

// DataType is the closed set of XSD-derived data types a constraint can
// declare. Parsing of the underlying string happens lazily, at the point an
// operator is applied, not at ingestion time.
type DataType string

const (
	// String is the default, catch-all textual type.
	String DataType = "string"
	// Integer covers XSD integer and its many subtypes (see ParseDataType).
	Integer DataType = "integer"
	// Float covers XSD float and double.
	Float DataType = "float"
	// Boolean is XSD boolean ("true"/"false").
	Boolean DataType = "boolean"
	// Date is an XSD date (YYYY-MM-DD).
	Date DataType = "date"
	// Time is an XSD time (HH:MM:SS).
	Time DataType = "time"
	// DateTime is an XSD dateTime, RFC 3339-compatible.
	DateTime DataType = "dateTime"
)

// ParseDataType maps a bare or "xsd:"-prefixed XSD type name onto one of the
// seven DataType constants. Many XSD integer subtypes collapse onto Integer,
// float/double onto Float, and various string-like types onto String.
func ParseDataType(name string) (DataType, error) {
	n := strings.TrimPrefix(name, "xsd:")
	n = strings.TrimPrefix(n, "http://www.w3.org/2001/XMLSchema#")

	switch n {
	case "integer", "int", "long", "short", "byte",
		"nonNegativeInteger", "nonPositiveInteger", "negativeInteger", "positiveInteger",
		"unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte",
		"gYear", "gYearMonth", "gMonth", "gMonthDay", "gDay", "duration":
		return Integer, nil
	case "float", "double", "decimal":
		return Float, nil
	case "boolean":
		return Boolean, nil
	case "date":
		return Date, nil
	case "time":
		return Time, nil
	case "dateTime", "dateTimeStamp":
		return DateTime, nil
	case "string", "anyURI", "token", "NMTOKEN", "normalizedString", "":
		return String, nil
	default:
		return "", odrlerr.New(odrlerr.KindUnsupportedType, "unrecognized xsd data type").WithSubject(name)
	}
}

// Value is a sum over a single scalar string and a set of strings. Exactly
// one of IsSet/IsScalar is meaningful at a time; an empty Value (neither
// Scalar nor Set populated) represents "no value".
type Value struct {
	scalar string
	set    []string
	isSet  bool
}

// Scalar constructs a scalar Value.
func Scalar(s string) Value { return Value{scalar: s} }

// Set constructs a set-valued Value.
func Set(items []string) Value { return Value{set: items, isSet: true} }

// IsSet reports whether this Value holds a set rather than a scalar.
func (v Value) IsSet() bool { return v.isSet }

// AsScalar returns the scalar string. If the Value is a set, it joins the
// set with a single space, matching the "joined literal-set" behavior
// spec.md §4.3 describes for right-operand resolution.
func (v Value) AsScalar() string {
	if !v.isSet {
		return v.scalar
	}
	return strings.Join(v.set, " ")
}

// AsSet returns the set of strings. A scalar Value is returned as a
// single-element set.
func (v Value) AsSet() []string {
	if v.isSet {
		return v.set
	}
	return []string{v.scalar}
}

// ParseInteger parses the scalar form of v as an integer under DataType
// Integer semantics.
func (v Value) ParseInteger() (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(v.AsScalar()), 10, 64)
	if err != nil {
		return 0, odrlerr.Wrap(odrlerr.KindParse, "not an integer", err).WithSubject(v.AsScalar())
	}
	return i, nil
}

// ParseFloat parses the scalar form of v as a float under DataType Float
// semantics.
func (v Value) ParseFloat() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.AsScalar()), 64)
	if err != nil {
		return 0, odrlerr.Wrap(odrlerr.KindParse, "not a float", err).WithSubject(v.AsScalar())
	}
	return f, nil
}

// ParseBoolean parses the scalar form of v as a boolean.
func (v Value) ParseBoolean() (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(v.AsScalar()))
	if err != nil {
		return false, odrlerr.Wrap(odrlerr.KindParse, "not a boolean", err).WithSubject(v.AsScalar())
	}
	return b, nil
}

// dateLayouts are tried in order for Date/Time/DateTime parsing, the
// original source being deliberately lenient about exact formatting.
var (
	dateLayouts     = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}
	timeLayouts     = []string{"15:04:05", "15:04:05Z07:00", time.RFC3339}
	dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
)

// ParseTimestamp parses the scalar form of v as a Date, Time, or DateTime,
// returning the resulting time.Time in UTC.
func (v Value) ParseTimestamp(dt DataType) (time.Time, error) {
	var layouts []string
	switch dt {
	case Date:
		layouts = dateLayouts
	case Time:
		layouts = timeLayouts
	default:
		layouts = dateTimeLayouts
	}

	s := strings.TrimSpace(v.AsScalar())
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, odrlerr.Wrap(odrlerr.KindParse, "not a valid "+string(dt), lastErr).WithSubject(s)
}
