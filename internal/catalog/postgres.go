package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"movienest/pkg/db"
)

// PostgresSource reads the dataset from a table with the columns
// name, year, genre, director, actor_1, actor_2, actor_3, imdb_link.
type PostgresSource struct {
	URL   string
	Table string
}

func (s PostgresSource) Name() string {
	return "postgres table " + s.Table
}

func (s PostgresSource) Rows(ctx context.Context) ([]RawRow, error) {
	pool, err := db.Connect(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, postgresQuery(s.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RawRow
	for rows.Next() {
		var cols [8]*string
		if err := rows.Scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7]); err != nil {
			return nil, err
		}
		out = append(out, rawFromNullable(cols))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func postgresQuery(table string) string {
	return fmt.Sprintf(`SELECT name, year::text, genre, director, actor_1, actor_2, actor_3, imdb_link FROM %s`,
		pgx.Identifier{table}.Sanitize())
}

func rawFromNullable(cols [8]*string) RawRow {
	v := func(i int) string {
		if cols[i] == nil {
			return ""
		}
		return *cols[i]
	}
	return RawRow{
		Name:     v(0),
		Year:     v(1),
		Genre:    v(2),
		Director: v(3),
		Actor1:   v(4),
		Actor2:   v(5),
		Actor3:   v(6),
		IMDbLink: v(7),
	}
}
