package recorder

import "fmt"

// Open returns the Recorder for driver: "sqlite", "postgres", or "none".
func Open(driver, sqlitePath, postgresURL string) (Recorder, error) {
	switch driver {
	case "", "none":
		return NewNoopRecorder(), nil
	case "sqlite":
		return NewSQLiteRecorder(sqlitePath)
	case "postgres":
		return NewPostgresRecorder(postgresURL)
	default:
		return nil, fmt.Errorf("unsupported recorder driver %q", driver)
	}
}
