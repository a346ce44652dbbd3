package catalog

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/jackc/pgx/v5"

	"movienest/pkg/db"
)

var seedColumns = []string{"name", "year", "genre", "director", "actor_1", "actor_2", "actor_3", "imdb_link"}

const scyllaBatchSize = 50

// SeedPostgres creates the dataset table if needed and bulk loads rows into
// it. With truncate set, existing rows are removed in the same transaction.
func SeedPostgres(ctx context.Context, url, table string, rows []RawRow, truncate bool) (int64, error) {
	pool, err := db.Connect(ctx, url)
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, postgresSchema(table)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", table, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if truncate {
		if _, err := tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{table}.Sanitize()); err != nil {
			return 0, fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, seedColumns, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		return seedValues(rows[i]), nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

func postgresSchema(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id bigserial PRIMARY KEY,
		name text NOT NULL,
		year integer,
		genre text,
		director text,
		actor_1 text,
		actor_2 text,
		actor_3 text,
		imdb_link text
	)`, pgx.Identifier{table}.Sanitize())
}

// seedValues orders a row like seedColumns. Empty cells and unknown years
// become NULL so the readers null-fill them back.
func seedValues(r RawRow) []any {
	var year any
	if y := ParseYear(r.Year); y.Known() {
		year = int32(y)
	}
	return []any{r.Name, year, nullIfEmpty(r.Genre), nullIfEmpty(r.Director),
		nullIfEmpty(r.Actor1), nullIfEmpty(r.Actor2), nullIfEmpty(r.Actor3), nullIfEmpty(r.IMDbLink)}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// SeedScylla creates the keyspace and table if needed and inserts rows in
// unlogged batches. It returns the number of rows written before any error.
func SeedScylla(ctx context.Context, src ScyllaSource, replication int, rows []RawRow) (int, error) {
	// the keyspace may not exist yet, so bootstrap without one
	bootstrap := src
	bootstrap.Keyspace = ""
	session, err := bootstrap.connect()
	if err != nil {
		return 0, err
	}
	defer session.Close()

	if err := session.Query(keyspaceStmt(src.Keyspace, replication)).WithContext(ctx).Exec(); err != nil {
		return 0, fmt.Errorf("ensure keyspace %s: %w", src.Keyspace, err)
	}
	if err := session.Query(scyllaSchema(src.Keyspace, src.Table)).WithContext(ctx).Exec(); err != nil {
		return 0, fmt.Errorf("ensure table %s.%s: %w", src.Keyspace, src.Table, err)
	}

	insert := scyllaInsert(src.Keyspace, src.Table)
	written := 0
	batch := session.NewBatch(gocql.UnloggedBatch).WithContext(ctx)
	for i, r := range rows {
		var year *int
		if y := ParseYear(r.Year); y.Known() {
			v := int(y)
			year = &v
		}
		batch.Query(insert, gocql.TimeUUID(), r.Name, year, r.Genre, r.Director, r.Actor1, r.Actor2, r.Actor3, r.IMDbLink)
		if batch.Size() < scyllaBatchSize && i < len(rows)-1 {
			continue
		}
		if err := session.ExecuteBatch(batch); err != nil {
			return written, fmt.Errorf("insert batch: %w", err)
		}
		written += batch.Size()
		batch = session.NewBatch(gocql.UnloggedBatch).WithContext(ctx)
	}
	return written, nil
}

func keyspaceStmt(keyspace string, replication int) string {
	if replication <= 0 {
		replication = 1
	}
	return fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}", keyspace, replication)
}

func scyllaSchema(keyspace, table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
		id timeuuid PRIMARY KEY,
		name text,
		year int,
		genre text,
		director text,
		actor_1 text,
		actor_2 text,
		actor_3 text,
		imdb_link text
	)`, keyspace, table)
}

func scyllaInsert(keyspace, table string) string {
	return fmt.Sprintf(`INSERT INTO %s.%s (id,name,year,genre,director,actor_1,actor_2,actor_3,imdb_link) VALUES (?,?,?,?,?,?,?,?,?)`, keyspace, table)
}
