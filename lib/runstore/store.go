package runstore

import (
	"context"
	"database/sql"
	"time"

	"citius-scraper/lib/timezone"

	_ "modernc.org/sqlite"
)

// keeps a local history of search runs so that degraded or failed
// runs can be audited after the fact.

const Schema = `
create table if not exists search_run (
	id integer primary key autoincrement,
	started_at integer not null,
	query text not null,
	outcome text not null,
	reason text not null,
	record_count integer not null,
	elapsed_ms integer not null,
	csv_path text not null,
	json_path text not null
);
create index if not exists search_run_started_at on search_run (started_at);
`

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func Open(path string) (Store, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	_, err = database.Exec(Schema)
	if err != nil {
		database.Close()
		return Store{}, err
	}
	return Store{db: database}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

type Run struct {
	StartedAt   time.Time
	Query       string
	Outcome     string
	Reason      string
	RecordCount int
	ElapsedMs   int64
	CsvPath     string
	JsonPath    string
}

func (s Store) Append(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`insert into search_run
			(started_at, query, outcome, reason, record_count, elapsed_ms, csv_path, json_path)
			values (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Unix(),
		run.Query,
		run.Outcome,
		run.Reason,
		run.RecordCount,
		run.ElapsedMs,
		run.CsvPath,
		run.JsonPath,
	)
	return err
}

func (s Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select started_at, query, outcome, reason, record_count, elapsed_ms, csv_path, json_path
			from search_run
			order by started_at desc
			limit ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var startedAt int64
		err := rows.Scan(
			&startedAt,
			&run.Query,
			&run.Outcome,
			&run.Reason,
			&run.RecordCount,
			&run.ElapsedMs,
			&run.CsvPath,
			&run.JsonPath,
		)
		if err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(startedAt, 0).In(timezone.Location)
		out = append(out, run)
	}
	return out, rows.Err()
}
