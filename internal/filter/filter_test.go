package filter

import (
	"reflect"
	"testing"

	"movienest/internal/catalog"
)

func sampleRows() []catalog.MovieRecord {
	table := catalog.Normalize([]catalog.RawRow{
		{Name: "Inception", Year: "2010", Genre: "Action, Sci-Fi", Director: "Christopher Nolan", Actor1: "Leonardo DiCaprio"},
		{Name: "Heat", Year: "1995", Genre: "Action, Drama", Director: "Michael Mann", Actor1: "Al Pacino", Actor2: "Robert De Niro"},
		{Name: "Big", Year: "1988", Genre: "Comedy", Director: "Penny Marshall", Actor1: "Tom Hanks"},
		{Name: "Cast Away", Year: "2000", Genre: "Adventure, Drama", Director: "Robert Zemeckis", Actor2: "Helen Hunt", Actor3: "Tom Hanks"},
		{Name: "Good Omens", Year: "2019", Genre: "Comedy, Fantasy", Director: "John Smith, Jane Doe", Actor1: "Michael Sheen"},
		{Name: "Heat", Year: "1986", Genre: "Action", Director: "Dick Richards", Actor1: "Burt Reynolds"},
	})
	return table.Rows()
}

func names(ms []Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name+" ("+m.Year.String()+")")
	}
	return out
}

func TestParseKind(t *testing.T) {
	for raw, want := range map[string]Kind{"genre": KindGenre, " Actor ": KindActor, "DIRECTOR": KindDirector} {
		got, ok := ParseKind(raw)
		if !ok || got != want {
			t.Errorf("ParseKind(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParseKind("rate"); ok {
		t.Error("rate is not a filter kind")
	}
}

func TestFindByGenre(t *testing.T) {
	res := Find(sampleRows(), Selection{Kind: KindGenre, Value: "Action"})
	if res.Warning != "" {
		t.Fatalf("warning = %q", res.Warning)
	}
	want := []string{"Inception (2010)", "Heat (1995)", "Heat (1986)"}
	if got := names(res.Matches); !reflect.DeepEqual(got, want) {
		t.Fatalf("matches = %q, want %q", got, want)
	}
	for _, m := range res.Matches {
		if m.Name == "Big" {
			t.Fatal("comedy matched action")
		}
	}
}

func TestFindByGenreIsCaseInsensitiveSubstring(t *testing.T) {
	res := Find(sampleRows(), Selection{Kind: KindGenre, Value: "dram"})
	want := []string{"Heat (1995)", "Cast Away (2000)"}
	if got := names(res.Matches); !reflect.DeepEqual(got, want) {
		t.Fatalf("matches = %q, want %q", got, want)
	}
}

func TestFindByActorIsExactAndCaseSensitive(t *testing.T) {
	rows := sampleRows()

	res := Find(rows, Selection{Kind: KindActor, Value: "Tom Hanks"})
	want := []string{"Big (1988)", "Cast Away (2000)"}
	if got := names(res.Matches); !reflect.DeepEqual(got, want) {
		t.Fatalf("matches = %q, want %q", got, want)
	}

	res = Find(rows, Selection{Kind: KindActor, Value: "tom hanks"})
	if len(res.Matches) != 0 || res.Warning != "No movies found for the selected actor." {
		t.Fatalf("lowercase query = %+v", res)
	}

	res = Find(rows, Selection{Kind: KindActor, Value: "Tom"})
	if len(res.Matches) != 0 {
		t.Fatalf("partial name matched: %+v", res)
	}
}

func TestFindByDirectorMatchesWithinJoinedNames(t *testing.T) {
	res := Find(sampleRows(), Selection{Kind: KindDirector, Value: "smith"})
	want := []string{"Good Omens (2019)"}
	if got := names(res.Matches); !reflect.DeepEqual(got, want) {
		t.Fatalf("matches = %q, want %q", got, want)
	}
}

func TestFindDeduplicatesExplodedRows(t *testing.T) {
	// "a" is in both genre rows of Heat (1995): "Action" and "Drama".
	res := Find(sampleRows(), Selection{Kind: KindGenre, Value: "a"})
	seen := map[Match]int{}
	for _, m := range res.Matches {
		seen[m]++
	}
	for m, n := range seen {
		if n != 1 {
			t.Errorf("%v listed %d times", m, n)
		}
	}
	if seen[Match{Name: "Heat", Year: 1995}] != 1 {
		t.Fatalf("Heat (1995) missing: %q", names(res.Matches))
	}
}

func TestFindWarnings(t *testing.T) {
	rows := sampleRows()
	cases := []struct {
		sel  Selection
		want string
	}{
		{Selection{Kind: KindGenre, Value: ""}, "Please select a genre."},
		{Selection{Kind: KindActor, Value: "  "}, "Please select an actor."},
		{Selection{Kind: KindDirector}, "Please select a director."},
		{Selection{Kind: KindGenre, Value: "Western"}, "No movies found for the selected genre."},
		{Selection{Kind: KindDirector, Value: "Kubrick"}, "No movies found for the selected director."},
		{Selection{Kind: "rating", Value: "5"}, "Unknown selection."},
	}
	for _, tc := range cases {
		res := Find(rows, tc.sel)
		if res.Warning != tc.want {
			t.Errorf("Find(%+v).Warning = %q, want %q", tc.sel, res.Warning, tc.want)
		}
		if res.Matches == nil || len(res.Matches) != 0 {
			t.Errorf("Find(%+v).Matches = %v, want empty non-nil", tc.sel, res.Matches)
		}
	}
}

func TestInceptionSciFi(t *testing.T) {
	table := catalog.Normalize([]catalog.RawRow{{
		Name:     "Inception",
		Year:     "2010",
		Genre:    "Action, Sci-Fi",
		Director: "Christopher Nolan",
		Actor1:   "Leonardo DiCaprio",
	}})
	if table.Len() != 2 {
		t.Fatalf("rows = %d", table.Len())
	}
	res := Find(table.Rows(), Selection{Kind: KindGenre, Value: "Sci-Fi"})
	want := []Match{{Name: "Inception", Year: 2010}}
	if !reflect.DeepEqual(res.Matches, want) {
		t.Fatalf("matches = %+v", res.Matches)
	}
}
