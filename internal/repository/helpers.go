package repository

import (
	"database/sql"
	"time"
)

// nullableFloat converts a *float64 to a value suitable for SQLite storage.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableInt converts a *int to a value suitable for SQLite storage.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
