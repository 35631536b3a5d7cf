package sink

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aneesh-aparajit/reddit-crawler/models"
)

// Format tags are case-sensitive lowercase, matching the CLI surface.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
	FormatSQL     Format = "sql"
	FormatPickle  Format = "pickle"
)

// ErrUnsupportedFormat is returned for any other tag, before any file is
// created, so the caller still holds an intact in-memory table to retry.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Persist serializes one table to <dir>/<artifact>.<ext>, overwriting any
// previous file of that name. artifact is "posts" or "comments" and doubles
// as the table name for the sql dump.
func Persist[T models.Record](rows []T, format Format, dir, artifact string) error {
	switch format {
	case FormatCSV:
		return writeSeparated(rows, filepath.Join(dir, artifact+".csv"), ',')
	case FormatTSV:
		return writeSeparated(rows, filepath.Join(dir, artifact+".tsv"), '\t')
	case FormatJSON:
		return writeJSON(rows, filepath.Join(dir, artifact+".json"))
	case FormatParquet:
		return writeParquet(rows, filepath.Join(dir, artifact+".parquet"))
	case FormatSQL:
		return writeSQL(rows, filepath.Join(dir, artifact+".sql"), artifact)
	case FormatPickle:
		// pandas convention: pickle goes to .pkl, not .pickle
		return writePickle(rows, filepath.Join(dir, artifact+".pkl"))
	default:
		return fmt.Errorf("%w: %q (want one of csv, tsv, json, parquet, sql, pickle)", ErrUnsupportedFormat, format)
	}
}
