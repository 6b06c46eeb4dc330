package common

import (
	"fmt"
	"strings"
)

// ColumnKind controls how a JSON value maps onto a mutable column in a
// partial update.
type ColumnKind int

const (
	// ColString sets the column when the key is present with a non-null
	// value. Nulls are ignored: the column is not nullable.
	ColString ColumnKind = iota
	// ColInt / ColFloat behave like ColString for numeric columns.
	ColInt
	ColFloat
	// ColNullableString sets the column whenever the key is present; a
	// null or falsy value clears it to NULL.
	ColNullableString
	// ColNullableInt sets the column whenever the key is present; null
	// clears it.
	ColNullableInt
	// ColStringOrEmpty sets the column whenever the key is present; a
	// null or falsy value resets it to the empty string.
	ColStringOrEmpty
	// ColStatus coerces 0, "0" and false to 0 and everything else to 1.
	ColStatus
)

// Column is one entry of an entity's mutable-column allow-list.
type Column struct {
	Name string
	Kind ColumnKind
}

// UpdateBuilder accumulates SET assignments with positional parameters.
type UpdateBuilder struct {
	assignments []string
	args        []any
}

// Set appends one column assignment.
func (b *UpdateBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.assignments = append(b.assignments, fmt.Sprintf("%s=$%d", column, len(b.args)))
}

// Empty reports whether no field was set. An empty update is a
// successful no-op, not an error.
func (b *UpdateBuilder) Empty() bool {
	return len(b.assignments) == 0
}

// SQL renders the UPDATE statement for the given table with the row id
// as the final parameter, and returns the full argument list.
func (b *UpdateBuilder) SQL(table, id string) (string, []any) {
	args := append(append([]any{}, b.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id=$%d",
		table, strings.Join(b.assignments, ", "), len(args))
	return query, args
}

// BuildUpdate walks a decoded JSON object against an entity's
// allow-list of mutable columns and produces the partial update.
// Absent keys leave the column untouched; explicit null clears only
// nullable columns. Keys outside the allow-list are ignored.
func BuildUpdate(fields map[string]any, cols []Column) *UpdateBuilder {
	b := &UpdateBuilder{}
	for _, col := range cols {
		value, present := fields[col.Name]
		if !present {
			continue
		}
		switch col.Kind {
		case ColString:
			if value != nil {
				b.Set(col.Name, coerceString(value))
			}
		case ColInt:
			if value != nil {
				b.Set(col.Name, coerceInt(value))
			}
		case ColFloat:
			if value != nil {
				b.Set(col.Name, coerceFloat(value))
			}
		case ColNullableString:
			if isFalsy(value) {
				b.Set(col.Name, nil)
			} else {
				b.Set(col.Name, coerceString(value))
			}
		case ColNullableInt:
			if value == nil {
				b.Set(col.Name, nil)
			} else {
				b.Set(col.Name, coerceInt(value))
			}
		case ColStringOrEmpty:
			if isFalsy(value) {
				b.Set(col.Name, "")
			} else {
				b.Set(col.Name, strings.TrimSpace(coerceString(value)))
			}
		case ColStatus:
			b.Set(col.Name, CoerceStatus(value))
		}
	}
	return b
}

// CoerceStatus maps the loosely-typed status input (number, string or
// bool) onto the stored 1/0 active flag. Anything that is not plainly
// "off" counts as active, null included.
func CoerceStatus(value any) int {
	switch v := value.(type) {
	case bool:
		if !v {
			return 0
		}
	case float64:
		if v == 0 {
			return 0
		}
	case string:
		if v == "0" {
			return 0
		}
	}
	return 1
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	}
	return false
}

func coerceString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func coerceInt(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		var n int64
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}

func coerceFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		var f float64
		_, _ = fmt.Sscanf(v, "%g", &f)
		return f
	}
	return 0
}
