package omdb

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"movienest/internal/catalog"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	var logs bytes.Buffer
	return NewClient("secret-key", srv.URL+"/", 2*time.Second, zerolog.New(&logs)), &logs
}

func TestFetchSuccess(t *testing.T) {
	var gotQuery atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Title":"Inception","Year":"2010","Response":"True","Poster":"https://img/inception.jpg","imdbRating":"8.8","Plot":"A thief who steals corporate secrets."}`))
	})

	d, err := c.Fetch(context.Background(), "Inception", 2010)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := Details{PosterURL: "https://img/inception.jpg", Rating: "8.8", Plot: "A thief who steals corporate secrets."}
	if d != want {
		t.Fatalf("details = %+v, want %+v", d, want)
	}

	q := gotQuery.Load().(url.Values)
	if q.Get("t") != "Inception" || q.Get("y") != "2010" || q.Get("apikey") != "secret-key" {
		t.Fatalf("query = %v", q)
	}
}

func TestFetchEscapesTitleAndSendsEmptyYear(t *testing.T) {
	var rawQuery atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery.Store(r.URL.RawQuery)
		if got := r.URL.Query().Get("t"); got != "Amélie & Co?" {
			t.Errorf("decoded title = %q", got)
		}
		_, _ = w.Write([]byte(`{"Response":"True","Poster":"N/A","imdbRating":"N/A","Plot":"N/A"}`))
	})

	d, err := c.Fetch(context.Background(), "Amélie & Co?", catalog.UnknownYear)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	raw := rawQuery.Load().(string)
	if strings.Contains(raw, "&Co") || strings.Contains(raw, " ") {
		t.Fatalf("title not escaped: %s", raw)
	}
	if !strings.Contains(raw, "y=&") && !strings.HasSuffix(raw, "y=") {
		t.Fatalf("year param not empty: %s", raw)
	}
	if d.PosterURL != "" || d.Rating != NotAvailable || d.Plot != PlotUnavailable {
		t.Fatalf("N/A fields not mapped: %+v", d)
	}
}

func TestFetchFailures(t *testing.T) {
	cases := []struct {
		name  string
		h     http.HandlerFunc
		check func(error) bool
	}{
		{
			name:  "not found",
			h:     func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`)) },
			check: func(err error) bool { return errors.Is(err, ErrNotFound) },
		},
		{
			name: "status",
			h:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) },
			check: func(err error) bool {
				var se *StatusError
				return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
			},
		},
		{
			name:  "malformed",
			h:     func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>oops</html>`)) },
			check: func(err error) bool { return err != nil && !errors.Is(err, ErrNotFound) },
		},
		{
			name:  "missing response flag",
			h:     func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"Poster":"x"}`)) },
			check: func(err error) bool { return errors.Is(err, ErrNotFound) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, tc.h)
			_, err := c.Fetch(context.Background(), "Inception", 2010)
			if !tc.check(err) {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestFetchRejectsEmptyTitleAndMissingKey(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, time.Second, zerolog.Nop())
	if _, err := c.Fetch(context.Background(), "  ", 2010); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v", err)
	}
	c = NewClient("", srv.URL, time.Second, zerolog.Nop())
	if _, err := c.Fetch(context.Background(), "Inception", 2010); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("err = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("server called %d times", n)
	}
}

func TestLookupDegradesToAbsent(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	d, ok := c.Lookup(context.Background(), "Inception", 2010)
	if ok || d != (Details{}) {
		t.Fatalf("Lookup = %+v, %v", d, ok)
	}
	out := logs.String()
	if !strings.Contains(out, "metadata lookup failed") {
		t.Fatalf("failure not logged: %s", out)
	}
	if strings.Contains(out, "secret-key") {
		t.Fatalf("api key leaked into logs: %s", out)
	}
}

func TestLookupUnreachableServerDoesNotLeakKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	var logs bytes.Buffer
	c := NewClient("secret-key", base, time.Second, zerolog.New(&logs))
	if _, ok := c.Lookup(context.Background(), "Inception", 2010); ok {
		t.Fatal("expected absent result")
	}
	if strings.Contains(logs.String(), "secret-key") {
		t.Fatalf("api key leaked: %s", logs.String())
	}
}

func TestRedactAPIKey(t *testing.T) {
	got := redactAPIKey("http://www.omdbapi.com/?apikey=abc&t=Up&y=2009")
	if strings.Contains(got, "abc") || !strings.Contains(got, "apikey=REDACTED") {
		t.Fatalf("redacted = %s", got)
	}
	if got := redactAPIKey("http://www.omdbapi.com/?t=Up"); got != "http://www.omdbapi.com/?t=Up" {
		t.Fatalf("untouched url changed: %s", got)
	}
}
