package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeCSV renders rows as CSV with the header first, or "" when
// there are no rows at all. A value containing a comma, quote or
// newline is wrapped in quotes with internal quotes doubled. This is
// hand-rolled instead of encoding/csv because the export contract
// fixes this exact quoting rule and encoding/csv additionally quotes
// fields with leading spaces or \r.
func EncodeCSV(columns []string, rows [][]any) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRecord := func(fields []string) {
		sb.WriteString(strings.Join(fields, ","))
	}

	writeRecord(columns) // header
	for _, row := range rows {
		sb.WriteByte('\n')
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = escapeCSV(csvValue(v))
		}
		writeRecord(fields)
	}
	return sb.String()
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// csvValue stringifies a scanned database value. NULL becomes the empty
// field; timestamps render as RFC 3339 so backups stay parseable.
func csvValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
