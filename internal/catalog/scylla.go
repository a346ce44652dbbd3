package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocql/gocql"
)

// ScyllaSource reads the dataset from a Scylla/Cassandra table. year is an int
// column, the rest are text.
type ScyllaSource struct {
	Hosts       []string
	Port        int
	Keyspace    string
	Table       string
	Consistency string
	Timeout     time.Duration
}

func (s ScyllaSource) Name() string {
	return "scylla table " + s.Keyspace + "." + s.Table
}

func (s ScyllaSource) Rows(ctx context.Context) ([]RawRow, error) {
	session, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer session.Close()

	iter := session.Query(scyllaQuery(s.Keyspace, s.Table)).WithContext(ctx).Iter()
	var out []RawRow
	var (
		r    RawRow
		year int
	)
	for iter.Scan(&r.Name, &year, &r.Genre, &r.Director, &r.Actor1, &r.Actor2, &r.Actor3, &r.IMDbLink) {
		r.Year = ""
		if year > 0 {
			r.Year = strconv.Itoa(year)
		}
		out = append(out, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s ScyllaSource) connect() (*gocql.Session, error) {
	cluster := gocql.NewCluster(s.Hosts...)
	if s.Port > 0 {
		cluster.Port = s.Port
	}
	cluster.Timeout = s.Timeout
	if cluster.Timeout <= 0 {
		cluster.Timeout = 5 * time.Second
	}
	cluster.Consistency = parseConsistency(s.Consistency)
	cluster.Keyspace = s.Keyspace
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("scylla connect: %w", err)
	}
	return session, nil
}

func scyllaQuery(keyspace, table string) string {
	return fmt.Sprintf(`SELECT name,year,genre,director,actor_1,actor_2,actor_3,imdb_link FROM %s.%s`, keyspace, table)
}

func parseConsistency(c string) gocql.Consistency {
	switch strings.ToUpper(strings.TrimSpace(c)) {
	case "ONE":
		return gocql.One
	case "LOCAL_ONE":
		return gocql.LocalOne
	case "LOCAL_QUORUM":
		return gocql.LocalQuorum
	case "ALL":
		return gocql.All
	default:
		return gocql.Quorum
	}
}
