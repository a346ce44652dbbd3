// Package omdb looks up poster, rating and plot for a movie on the OMDb API
// and memoizes the answers.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"movienest/internal/catalog"
)

const (
	NotAvailable    = "N/A"
	PlotUnavailable = "Plot not available."

	maxBody = 1 << 20
)

// Details is the enrichment shown next to a title. An empty PosterURL means
// OMDb had no poster.
type Details struct {
	PosterURL string `json:"poster_url,omitempty"`
	Rating    string `json:"rating"`
	Plot      string `json:"plot"`
}

// Looker is the lookup contract shared by Client and Memo. ok=false is the
// "no details" result; implementations never return errors.
type Looker interface {
	Lookup(ctx context.Context, title string, year catalog.Year) (Details, bool)
}

type response struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a client with its own http.Client. A zero timeout means no
// client-side timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimSpace(baseURL),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "omdb").Logger(),
	}
}

// Lookup is Fetch with every failure folded into ok=false. Failures are
// logged and never reach the caller.
func (c *Client) Lookup(ctx context.Context, title string, year catalog.Year) (Details, bool) {
	d, err := c.Fetch(ctx, title, year)
	if err != nil {
		c.log.Warn().Err(err).Str("title", title).Str("year", year.String()).Msg("metadata lookup failed")
		return Details{}, false
	}
	return d, true
}

// Fetch performs a single GET ?t=&y=&apikey= and returns the typed failure.
func (c *Client) Fetch(ctx context.Context, title string, year catalog.Year) (Details, error) {
	if strings.TrimSpace(title) == "" {
		return Details{}, ErrEmptyTitle
	}
	if c.apiKey == "" {
		return Details{}, ErrMissingKey
	}
	reqURL, err := c.requestURL(title, year)
	if err != nil {
		return Details{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Details{}, err
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", redactAPIKey(reqURL)).Msg("omdb request")
	resp, err := c.http.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("omdb request: %w", scrubURLError(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Details{}, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Details{}, fmt.Errorf("omdb read body: %w", err)
	}
	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return Details{}, fmt.Errorf("omdb decode %q: %w", snippet(body, 120), err)
	}
	if out.Response != "True" {
		if out.Error != "" {
			return Details{}, fmt.Errorf("%w: %s", ErrNotFound, out.Error)
		}
		return Details{}, ErrNotFound
	}
	return toDetails(out), nil
}

func (c *Client) requestURL(title string, year catalog.Year) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("omdb base url: %w", err)
	}
	q := u.Query()
	q.Set("t", title)
	q.Set("y", year.Param())
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func toDetails(r response) Details {
	d := Details{
		PosterURL: strings.TrimSpace(r.Poster),
		Rating:    strings.TrimSpace(r.ImdbRating),
		Plot:      strings.TrimSpace(r.Plot),
	}
	if d.PosterURL == NotAvailable {
		d.PosterURL = ""
	}
	if d.Rating == "" || d.Rating == NotAvailable {
		d.Rating = NotAvailable
	}
	if d.Plot == "" || d.Plot == NotAvailable {
		d.Plot = PlotUnavailable
	}
	return d
}

func redactAPIKey(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// scrubURLError keeps the API key out of transport errors, which embed the
// request URL.
func scrubURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return &url.Error{Op: ue.Op, URL: redactAPIKey(ue.URL), Err: ue.Err}
	}
	return err
}

func snippet(data []byte, max int) string {
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}
