package entity

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"homeworkhub/internal/storage"
)

// sortRecords orders records in place by the named field. Records with equal
// keys keep their stored order.
func sortRecords[R any](records []R, field string, descending, isDate bool) {
	sort.SliceStable(records, func(i, j int) bool {
		av, _ := fieldValue(records[i], field)
		bv, _ := fieldValue(records[j], field)
		cmp := compareValues(av, bv, isDate)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// fieldValue looks up a record field by its json name, descending into
// embedded structs. The second return is false when no field matches.
func fieldValue(rec any, name string) (any, bool) {
	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous {
			if val, ok := fieldValue(v.Field(i).Interface(), name); ok {
				return val, true
			}
			continue
		}
		if jsonName(f) == name {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// jsonName returns the field's wire name: the json tag when present,
// otherwise the Go field name.
func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// compareValues orders two field values: negative when a sorts before b,
// positive when after, zero when equal. Fields whose name contains "date"
// compare as timestamps even when stored as strings.
func compareValues(a, b any, dateField bool) int {
	if at, aok := asTime(a, dateField); aok {
		if bt, bok := asTime(b, dateField); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(asString(a), asString(b))
}

// looseEqual compares a record field against a criteria value, bridging the
// small type gaps a caller-supplied criteria map introduces (typed enums vs
// plain strings, ints vs floats).
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}

	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() == reflect.String && bv.Kind() == reflect.String {
		return av.String() == bv.String()
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Equal(bt)
		}
		return false
	}

	return reflect.DeepEqual(a, b)
}

func asTime(v any, dateField bool) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	if !dateField {
		return time.Time{}, false
	}
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}

// mergeRecord applies a shallow field merge: named fields replace the
// record's current values, everything else is untouched. Identity fields are
// never merged. The merge round-trips through JSON so field names match the
// wire contract callers use.
func mergeRecord[R any](rec R, fields map[string]any, name string) (R, error) {
	var zero R

	raw, err := json.Marshal(rec)
	if err != nil {
		return zero, &storage.PersistenceError{Op: "encode", Name: name, Err: err}
	}

	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return zero, &storage.PersistenceError{Op: "decode", Name: name, Err: err}
	}

	for k, v := range fields {
		if k == "id" || k == "created_date" {
			continue
		}
		asMap[k] = v
	}

	merged, err := json.Marshal(asMap)
	if err != nil {
		return zero, &storage.PersistenceError{Op: "encode", Name: name, Err: err}
	}

	var out R
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, &ValidationError{Field: "update", Reason: err.Error()}
	}
	return out, nil
}
