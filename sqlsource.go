package gnuplot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// QueryDataset runs a query and converts the result set into a column
// Dataset, ready to plot. Columns whose every value looks numeric become
// numeric arrays; everything else becomes quoted strings.
func QueryDataset(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (Dataset, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "gnuplot: query %q failed", query)
	}
	defer rows.Close()
	return DatasetFromRows(rows)
}

// DatasetFromRows converts an open sqlx result set into a column Dataset.
// The rows are fully consumed but not closed.
func DatasetFromRows(rows *sqlx.Rows) (Dataset, error) {
	names, err := rows.Columns()
	if err != nil {
		return Dataset{}, errors.Wrap(err, "gnuplot: cannot read column names")
	}
	if len(names) == 0 {
		return Dataset{}, ErrNoData
	}

	var raw = make([][]interface{}, 0, 64)
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return Dataset{}, errors.Wrap(err, "gnuplot: row scan failed")
		}
		raw = append(raw, vals)
	}
	if err = rows.Err(); err != nil {
		return Dataset{}, errors.Wrap(err, "gnuplot: row iteration failed")
	}
	if len(raw) == 0 {
		return Dataset{}, ErrNoData
	}

	var cols = make([]interface{}, len(names))
	for j := range names {
		cols[j] = sqlColumn(raw, j)
	}
	return Columns(cols...), nil
}

// sqlColumn extracts column j of the scanned rows as []float64 when every
// value converts, falling back to []string otherwise.
func sqlColumn(raw [][]interface{}, j int) interface{} {
	var nums = make([]float64, len(raw))
	for i := range raw {
		f, ok := toFloat(raw[i][j])
		if !ok {
			return stringColumn(raw, j)
		}
		nums[i] = f
	}
	return nums
}

func stringColumn(raw [][]interface{}, j int) []string {
	var out = make([]string, len(raw))
	for i := range raw {
		out[i] = sqlString(raw[i][j])
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func sqlString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}
