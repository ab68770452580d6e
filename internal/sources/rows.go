package sources

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DateTimeLayout is how DATE and DATETIME columns are stored as text.
const DateTimeLayout = "2006-01-02 15:04:05"

// Row maps column names to decoded values. NULL columns are omitted.
type Row map[string]any

// buildDSN creates a read-only DSN for the given database path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_busy_timeout", "3000")
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenReadOnly opens the SQLite database at dbPath without write access.
func OpenReadOnly(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", buildDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// QueryRows runs query and decodes every column by its declared type.
func QueryRows(ctx context.Context, db *sql.DB, query string, args ...any) ([]Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}

	var result []Row
	for rows.Next() {
		raw := make([]any, len(types))
		dest := make([]any, len(types))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(Row, len(types))
		for i, ct := range types {
			if raw[i] == nil {
				continue
			}
			row[ct.Name()] = decodeColumn(ct.DatabaseTypeName(), raw[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

type columnKind int

const (
	kindDynamic columnKind = iota
	kindInteger
	kindText
	kindBlob
	kindReal
	kindBool
	kindTime
)

// kindOf classifies a declared column type with SQLite's affinity rules,
// after the exact BOOLEAN and DATE/DATETIME names.
func kindOf(declared string) columnKind {
	t := strings.ToUpper(strings.TrimSpace(declared))
	switch t {
	case "":
		return kindDynamic
	case "BOOLEAN", "BOOL":
		return kindBool
	case "DATE", "DATETIME":
		return kindTime
	}
	switch {
	case strings.Contains(t, "INT"):
		return kindInteger
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return kindText
	case strings.Contains(t, "BLOB"), t == "NONE":
		return kindBlob
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.HasPrefix(t, "NUMERIC"), strings.HasPrefix(t, "DECIMAL"):
		return kindReal
	}
	return kindDynamic
}

// decodeColumn converts a scanned value to the Go type for its declared
// column type. Values that do not convert keep their driver type.
func decodeColumn(declared string, v any) any {
	switch kindOf(declared) {
	case kindInteger:
		if n, ok := asInt64(v); ok {
			return n
		}
	case kindText:
		if s, ok := asString(v); ok {
			return s
		}
	case kindBlob:
		switch b := v.(type) {
		case []byte:
			return b
		case string:
			return []byte(b)
		}
	case kindReal:
		if f, ok := asFloat64(v); ok {
			return f
		}
	case kindBool:
		if n, ok := asInt64(v); ok {
			return n != 0
		}
		if b, ok := v.(bool); ok {
			return b
		}
	case kindTime:
		if t, ok := v.(time.Time); ok {
			return t
		}
		if s, ok := asString(v); ok {
			if t, err := time.Parse(DateTimeLayout, s); err == nil {
				return t
			}
		}
	}
	return v
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case time.Time:
		return s.Format(DateTimeLayout), true
	}
	return "", false
}
