package core

// accessor.go provides tolerant accessors for untyped backend JSON.
//
// These functions handle the messy reality of collections decoded from the
// REST backend:
//   - Fields that are absent, null, or of an unexpected type
//   - Numbers delivered as strings ("150000.50") or json.Number
//   - Timestamps in ISO 8601 with or without zone offsets
//   - Responses that are not arrays at all on backend errors
//
// Every function here is total: it returns a value or a caller-chosen
// fallback and never panics.

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Placeholder is the display value for missing or unusable fields.
const Placeholder = "N/A"

// leadingNumberRegex matches the numeric prefix of a string, the way a
// browser's parseFloat reads "12.5kg" as 12.5.
var leadingNumberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Date layouts used for display. These mirror the en-US locale the
// dashboard has always rendered with.
const (
	DisplayDateLayout     = "1/2/2006"
	DisplayDateTimeLayout = "1/2/2006, 3:04:05 PM"
)

// Entity is one record from a fetched resource collection.
// No shape is known statically; fields are read through the typed accessors.
type Entity map[string]any

// Collection is an ordered sequence of entities.
type Collection []Entity

// Get returns the value stored under key.
// Reports false when the field is absent or JSON null.
func (e Entity) Get(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the string form of a scalar field.
// Reports false for absent, null, or nested values.
func (e Entity) String(key string) (string, bool) {
	v, ok := e.Get(key)
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// Number returns the field coerced to a float64, or 0.
func (e Entity) Number(key string) float64 {
	v, _ := e.Get(key)
	return ToSafeNumber(v, 0)
}

// NormalizeCollection converts a decoded JSON value into a Collection.
// Arrays become collections with one entity per element; non-object elements
// keep their position as empty entities. Any other input yields an empty
// collection.
func NormalizeCollection(raw any) Collection {
	switch v := raw.(type) {
	case Collection:
		return v
	case []Entity:
		return Collection(v)
	case []map[string]any:
		out := make(Collection, len(v))
		for i, m := range v {
			out[i] = Entity(m)
		}
		return out
	case []any:
		out := make(Collection, len(v))
		for i, item := range v {
			out[i] = NormalizeEntity(item)
		}
		return out
	default:
		return Collection{}
	}
}

// NormalizeEntity converts a decoded JSON value into an Entity.
// Anything that is not an object becomes an empty entity.
func NormalizeEntity(raw any) Entity {
	switch v := raw.(type) {
	case Entity:
		if v == nil {
			return Entity{}
		}
		return v
	case map[string]any:
		if v == nil {
			return Entity{}
		}
		return Entity(v)
	default:
		return Entity{}
	}
}

// ParseNumber coerces v to a finite float64.
// Strings are read by their leading numeric prefix. Booleans, nil, objects,
// NaN and infinities are rejected.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		f = n
	case string:
		m := leadingNumberRegex.FindString(strings.TrimSpace(n))
		if m == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case json.Number:
		return ParseNumber(n.String())
	default:
		parsed, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, false
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToSafeNumber returns v as a number, or fallback when it is not one.
func ToSafeNumber(v any, fallback float64) float64 {
	if f, ok := ParseNumber(v); ok {
		return f
	}
	return fallback
}

// FormatDecimal renders v with a fixed number of decimal places.
// Returns placeholder when v is not numeric.
func FormatDecimal(v any, places int, placeholder string) string {
	f, ok := ParseNumber(v)
	if !ok {
		return placeholder
	}
	return strconv.FormatFloat(f, 'f', places, 64)
}

// maxEpochMillis is the largest distance from the Unix epoch, in either
// direction, that a millisecond timestamp may have (±100,000,000 days).
const maxEpochMillis = 8.64e15

// ToSafeDate converts v to a time.
// Accepts time.Time, ISO 8601 and other common layouts, and numbers as Unix
// milliseconds. Reports false for anything it cannot read.
func ToSafeDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil, bool:
		return time.Time{}, false
	case time.Time:
		return d, !d.IsZero()
	case float64, json.Number, int, int64:
		ms, ok := ParseNumber(d)
		if !ok || math.Abs(ms) > maxEpochMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)), true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
		if err != nil || t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// FormatDate renders v as a calendar date, or placeholder.
func FormatDate(v any, placeholder string) string {
	t, ok := ToSafeDate(v)
	if !ok {
		return placeholder
	}
	return t.Format(DisplayDateLayout)
}

// FormatDateTime renders v as a date with time of day, or placeholder.
func FormatDateTime(v any, placeholder string) string {
	t, ok := ToSafeDate(v)
	if !ok {
		return placeholder
	}
	return t.Format(DisplayDateTimeLayout)
}

// DisplayValue renders a raw field the way the default cell shows it.
// nil becomes the placeholder; strings are shown verbatim; nested values are
// re-encoded as JSON.
func DisplayValue(v any) string {
	if v == nil {
		return Placeholder
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Placeholder
	}
	return string(b)
}

// scalarString formats strings, numbers and booleans.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToString(s), true
	default:
		return "", false
	}
}
