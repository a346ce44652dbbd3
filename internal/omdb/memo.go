package omdb

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"movienest/internal/catalog"
)

var (
	memoHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movienest_metadata_cache_hits_total",
		Help: "Metadata lookups served from the memo cache.",
	})
	memoMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movienest_metadata_cache_misses_total",
		Help: "Metadata lookups that went to the upstream API.",
	})
)

type memoKey struct {
	title string
	year  catalog.Year
}

func (k memoKey) String() string {
	return k.title + "\x00" + k.year.Param()
}

type memoEntry struct {
	details Details
	found   bool
}

// Memo caches lookups by exact (title, year). Both found and not-found answers
// are kept. A caller whose context is already done gets no details and
// triggers no upstream call.
//
// The cache is an expirable LRU: size 0 removes the size bound and ttl 0
// keeps entries for the process lifetime.
type Memo struct {
	next  Looker
	cache *expirable.LRU[memoKey, memoEntry]
	group singleflight.Group
}

func NewMemo(next Looker, size int, ttl time.Duration) *Memo {
	if size < 0 {
		size = 0
	}
	return &Memo{
		next:  next,
		cache: expirable.NewLRU[memoKey, memoEntry](size, nil, ttl),
	}
}

// Lookup answers from the cache or joins the single in-flight upstream call
// for the key. The shared call is detached from the caller's cancellation and
// bounded by the upstream client's own timeout; each caller stops waiting when
// its own ctx is done, without affecting the others.
func (m *Memo) Lookup(ctx context.Context, title string, year catalog.Year) (Details, bool) {
	k := memoKey{title: title, year: year}
	if e, ok := m.cache.Get(k); ok {
		memoHits.Inc()
		return e.details, e.found
	}
	memoMisses.Inc()
	if ctx.Err() != nil {
		return Details{}, false
	}

	ch := m.group.DoChan(k.String(), func() (interface{}, error) {
		if e, ok := m.cache.Peek(k); ok {
			return e, nil
		}
		d, found := m.next.Lookup(context.WithoutCancel(ctx), title, year)
		e := memoEntry{details: d, found: found}
		m.cache.Add(k, e)
		return e, nil
	})
	select {
	case res := <-ch:
		e := res.Val.(memoEntry)
		return e.details, e.found
	case <-ctx.Done():
		return Details{}, false
	}
}

// Len reports the number of cached keys.
func (m *Memo) Len() int {
	return m.cache.Len()
}
