package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hydrogen18/stalecucumber"
	"github.com/parquet-go/parquet-go"

	"github.com/aneesh-aparajit/reddit-crawler/models"
)

// columnsOf recovers the fixed column order from the record type itself,
// so empty tables still serialize with a complete header/schema.
func columnsOf[T models.Record]() []string {
	var zero T
	return zero.Columns()
}

// cell renders one value for the csv/tsv codecs. nil is the null marker
// and renders as the empty cell.
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

func writeSeparated[T models.Record](rows []T, path string, comma rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = comma

	if err := w.Write(columnsOf[T]()); err != nil {
		return err
	}
	for _, row := range rows {
		values := row.Values()
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = cell(v)
		}
		if err := w.Write(fields); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeJSON[T models.Record](rows []T, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if rows == nil {
		rows = []T{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeParquet[T models.Record](rows []T, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := parquet.NewGenericWriter[T](f)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			return err
		}
	}
	return w.Close()
}

// sqlType maps a cell value to its column type in the dump. Absent values
// carry no type information and default to TEXT.
func sqlType(v any) string {
	switch v.(type) {
	case int64:
		return "INTEGER"
	case float64:
		return "REAL"
	case bool:
		return "BOOLEAN"
	case time.Time:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

func sqlLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return "'" + t.Format(time.RFC3339Nano) + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(t), "'", "''") + "'"
	}
}

// writeSQL emits a plain dump: one CREATE TABLE plus one INSERT per row.
func writeSQL[T models.Record](rows []T, path, table string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	columns := columnsOf[T]()

	// column types come from a prototype row when one exists; an empty
	// table still gets a usable schema
	var proto []any
	if len(rows) > 0 {
		proto = rows[0].Values()
	} else {
		var zero T
		proto = zero.Values()
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s %s", col, sqlType(proto[i]))
	}
	if _, err := fmt.Fprintf(f, "CREATE TABLE IF NOT EXISTS %s (\n    %s\n);\n",
		table, strings.Join(defs, ",\n    ")); err != nil {
		return err
	}

	columnList := strings.Join(columns, ", ")
	for _, row := range rows {
		values := row.Values()
		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = sqlLiteral(v)
		}
		if _, err := fmt.Fprintf(f, "INSERT INTO %s (%s) VALUES (%s);\n",
			table, columnList, strings.Join(literals, ", ")); err != nil {
			return err
		}
	}

	return nil
}

// pickleValue converts a cell into something the pickle protocol can carry.
func pickleValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339Nano)
	}
	return v
}

// writePickle emits a list of dicts, the layout pandas produces for a
// record-oriented frame.
func writePickle[T models.Record](rows []T, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	columns := columnsOf[T]()
	dicts := make([]any, 0, len(rows))
	for _, row := range rows {
		values := row.Values()
		dict := make(map[string]any, len(columns))
		for i, col := range columns {
			dict[col] = pickleValue(values[i])
		}
		dicts = append(dicts, dict)
	}

	_, err = stalecucumber.NewPickler(f).Pickle(dicts)
	return err
}
