package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"citius-scraper/lib/telemetry"

	_ "modernc.org/sqlite"
)

type DbParams struct {
	Name string
	// if unspecified, it will skip applying a schema
	Schema string
	// if unspecified, it will use `:memory:`
	Path string
}

// SetupDb opens a sqlite database for a test with telemetry wired in,
// returning the handle and a cleanup function.
func SetupDb(t testing.TB, params DbParams) (*sql.DB, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	path := params.Path
	if path == "" {
		path = ":memory:"
	}
	database, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if params.Schema != "" {
		_, err = database.Exec(params.Schema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
	}

	return database, func() {
		database.Close()
		cleanup()
	}
}
