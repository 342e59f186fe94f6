package core

import "strings"

// UnknownLabel is returned by joins that find no referenced entity.
const UnknownLabel = "Unknown"

// ValueCount is the number of entities holding one field value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// fieldEquals reports whether the field's string form equals target.
// Absent and null fields never match.
func fieldEquals(e Entity, field, target string) bool {
	s, ok := e.String(field)
	return ok && s == target
}

// CountWhere counts entities whose field equals target.
func CountWhere(c Collection, field, target string) int {
	n := 0
	for _, e := range c {
		if fieldEquals(e, field, target) {
			n++
		}
	}
	return n
}

// CountWhereAny counts entities whose field equals any of targets.
func CountWhereAny(c Collection, field string, targets ...string) int {
	n := 0
	for _, e := range c {
		for _, t := range targets {
			if fieldEquals(e, field, t) {
				n++
				break
			}
		}
	}
	return n
}

// CountWhereNot counts entities whose field does not equal target.
// Entities missing the field are counted.
func CountWhereNot(c Collection, field, target string) int {
	return len(c) - CountWhere(c, field, target)
}

// CountStatus counts entities whose field classifies as category.
// Entities missing the field are not counted, even for info.
func CountStatus(c Collection, field string, category StatusCategory) int {
	n := 0
	for _, e := range c {
		s, ok := e.String(field)
		if ok && ClassifyStatus(s).Category == category {
			n++
		}
	}
	return n
}

// CountContainsFold counts entities whose field contains any of substrings,
// ignoring case.
func CountContainsFold(c Collection, field string, substrings ...string) int {
	n := 0
	for _, e := range c {
		s, ok := e.String(field)
		if !ok {
			continue
		}
		s = strings.ToLower(s)
		for _, sub := range substrings {
			if strings.Contains(s, strings.ToLower(sub)) {
				n++
				break
			}
		}
	}
	return n
}

// IsTruthy reports whether v is truthy in the JSON sense the backend uses:
// true, non-zero numbers, non-empty strings, and any object or array.
func IsTruthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	default:
		if f, ok := ParseNumber(x); ok {
			return f != 0
		}
		return true
	}
}

// IsFlagSet reports whether v is exactly true or the number 1.
func IsFlagSet(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	if _, isString := v.(string); isString {
		return false
	}
	f, ok := ParseNumber(v)
	return ok && f == 1
}

// CountTruthy counts entities whose field is truthy.
func CountTruthy(c Collection, field string) int {
	n := 0
	for _, e := range c {
		v, _ := e.Get(field)
		if IsTruthy(v) {
			n++
		}
	}
	return n
}

// CountFlag counts entities whose field is true or 1.
func CountFlag(c Collection, field string) int {
	n := 0
	for _, e := range c {
		v, _ := e.Get(field)
		if IsFlagSet(v) {
			n++
		}
	}
	return n
}

// Sum adds a numeric field across the collection.
// Missing and non-numeric entries contribute 0.
func Sum(c Collection, field string) float64 {
	var total float64
	for _, e := range c {
		total += e.Number(field)
	}
	return total
}

// SumWhere adds field across entities whose matchField equals target.
func SumWhere(c Collection, field, matchField, target string) float64 {
	var total float64
	for _, e := range c {
		if fieldEquals(e, matchField, target) {
			total += e.Number(field)
		}
	}
	return total
}

// CountByValues counts entities per value of field, in the order given.
func CountByValues(c Collection, field string, values ...string) []ValueCount {
	out := make([]ValueCount, len(values))
	for i, v := range values {
		out[i] = ValueCount{Value: v, Count: CountWhere(c, field, v)}
	}
	return out
}

// Find returns the first entity whose key field matches ref.
// Numbers and numeric strings compare by value, so 1 matches "1".
func Find(c Collection, key string, ref any) (Entity, bool) {
	want, ok := joinKey(ref)
	if !ok {
		return nil, false
	}
	for _, e := range c {
		v, _ := e.Get(key)
		if got, ok := joinKey(v); ok && got == want {
			return e, true
		}
	}
	return nil, false
}

// JoinLabel resolves ref against refs by refKey and returns labelField of
// the match. Returns UnknownLabel when nothing matches or the label is empty.
func JoinLabel(ref any, refs Collection, refKey, labelField string) string {
	e, ok := Find(refs, refKey, ref)
	if !ok {
		return UnknownLabel
	}
	label, ok := e.String(labelField)
	if !ok || label == "" {
		return UnknownLabel
	}
	return label
}

// joinKey canonicalizes a key value for comparison.
func joinKey(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if _, isBool := v.(bool); !isBool {
		if f, ok := ParseNumber(v); ok {
			if s, isString := v.(string); !isString || strings.TrimSpace(s) == DisplayValue(f) {
				return DisplayValue(f), true
			}
		}
	}
	return scalarString(v)
}
