package repositories

import (
	"context"
	"fmt"
)

// exportableTables is the allow-list for CSV export and backups. The
// admin token and settings tables are deliberately excluded.
var exportableTables = map[string]bool{
	"customers": true,
	"domains":   true,
	"hostings":  true,
	"ssls":      true,
	"incomes":   true,
	"expenses":  true,
}

// ExportTables returns the exportable table names in a stable order.
func ExportTables() []string {
	return []string{"customers", "domains", "hostings", "ssls", "incomes", "expenses"}
}

// IsExportable reports whether the table may be exported.
func IsExportable(table string) bool {
	return exportableTables[table]
}

// ExportRepository reads whole tables for CSV export. Column names come
// from the result's field descriptions so the header always matches the
// table's column order.
type ExportRepository interface {
	Rows(ctx context.Context, table string) (columns []string, rows [][]any, err error)
}

type exportRepo struct {
	db DB
}

func NewExportRepository(db DB) ExportRepository {
	return &exportRepo{db: db}
}

func (r *exportRepo) Rows(ctx context.Context, table string) ([]string, [][]any, error) {
	if !IsExportable(table) {
		return nil, nil, fmt.Errorf("table %q is not exportable", table)
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	var values [][]any
	for rows.Next() {
		row, err := rows.Values()
		if err != nil {
			return nil, nil, err
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, values, nil
}
