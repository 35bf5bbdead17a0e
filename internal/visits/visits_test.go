package visits

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSession struct {
	counted bool
	marks   int
}

func (s *memSession) Counted() bool { return s.counted }
func (s *memSession) MarkCounted() {
	s.counted = true
	s.marks++
}

// counterServer answers /hit/ and /get/ with body and records the paths.
func counterServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func newTestClient(base string) *Client {
	return NewClient(ClientConfig{BaseURL: base, Namespace: "portfolio", Key: "visits"}, nil)
}

func TestFirstMountIncrementsAndMarks(t *testing.T) {
	srv, paths := counterServer(t, http.StatusOK, `{"value": 42}`)
	tr := NewTracker(newTestClient(srv.URL), nil)
	sess := &memSession{}

	out := tr.Mount(context.Background(), sess)

	assert.Equal(t, Known(42), out.Count)
	assert.True(t, out.Incremented)
	assert.True(t, sess.counted)
	assert.Equal(t, []string{"/hit/portfolio/visits"}, *paths)
}

func TestMalformedResponseLeavesMarkerUnset(t *testing.T) {
	srv, _ := counterServer(t, http.StatusOK, `{}`)
	tr := NewTracker(newTestClient(srv.URL), nil)
	sess := &memSession{}

	out := tr.Mount(context.Background(), sess)

	assert.Equal(t, StatusFailed, out.Count.Status)
	assert.False(t, out.Incremented)
	assert.False(t, sess.counted)
}

func TestSecondMountUsesReadOnlyPath(t *testing.T) {
	srv, paths := counterServer(t, http.StatusOK, `{"value": 7}`)
	tr := NewTracker(newTestClient(srv.URL), nil)
	sess := &memSession{}

	tr.Mount(context.Background(), sess)
	out := tr.Mount(context.Background(), sess)

	assert.Equal(t, Known(7), out.Count)
	assert.False(t, out.Incremented)
	assert.Equal(t, 1, sess.marks)
	assert.Equal(t, []string{"/hit/portfolio/visits", "/get/portfolio/visits"}, *paths)
}

func TestNonSuccessStatusIsError(t *testing.T) {
	srv, _ := counterServer(t, http.StatusBadGateway, `{"value": 1}`)
	c := newTestClient(srv.URL)

	_, err := c.Hit(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestNetworkFailureIsError(t *testing.T) {
	srv, _ := counterServer(t, http.StatusOK, `{"value": 1}`)
	base := srv.URL
	srv.Close()

	tr := NewTracker(newTestClient(base), nil)
	sess := &memSession{}
	out := tr.Mount(context.Background(), sess)

	assert.Equal(t, Failed(), out.Count)
	assert.False(t, sess.counted)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		body string
		want int64
		ok   bool
	}{
		{`{"value": 42}`, 42, true},
		{`{"value": 0, "count": 9}`, 0, true},
		{`{"value": 12.0}`, 12, true},
		{`{}`, 0, false},
		{`{"value": "42"}`, 0, false},
		{`{"value": null}`, 0, false},
		{`{"value": -3}`, 0, false},
		{`{"value": 1.5}`, 0, false},
		{`[1,2]`, 0, false},
		{`not json`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := decodeValue(strings.NewReader(tt.body))
			if !tt.ok {
				assert.True(t, errors.Is(err, ErrMalformed), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelayForwardsTargetVerbatim(t *testing.T) {
	var got string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("url")
		w.Write([]byte(`{"value": 3}`))
	}))
	defer relay.Close()

	c := NewClient(ClientConfig{
		BaseURL:   "https://counter.example/v1/",
		RelayURL:  relay.URL + "/?url=",
		Namespace: "ns",
		Key:       "k",
	}, nil)

	n, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "https://counter.example/v1/get/ns/k", got)

	u, err := url.Parse(c.RequestURL("hit"))
	require.NoError(t, err)
	assert.Equal(t, "https://counter.example/v1/hit/ns/k", u.Query().Get("url"))
}

func TestExactlyOneAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewTracker(newTestClient(srv.URL), nil)
	tr.Mount(context.Background(), &memSession{})
	assert.Equal(t, int32(1), calls.Load())
}

func TestCountDisplay(t *testing.T) {
	assert.Equal(t, "…", Unknown().Display())
	assert.Equal(t, "—", Failed().Display())
	assert.Equal(t, "42", Known(42).Display())
	assert.Equal(t, "1,234", Known(1234).Display())
	assert.Equal(t, "1,234,567", Known(1234567).Display())
	assert.Equal(t, "123,456", Known(123456).Display())
	assert.Equal(t, "known", StatusKnown.String())
}

func TestLedgerRecordAndStats(t *testing.T) {
	l, err := OpenLedger(":memory:", "salt")
	require.NoError(t, err)
	defer l.Close()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, l.Record(ctx, "10.0.0.1", "ua", "/"))
	require.NoError(t, l.Record(ctx, "10.0.0.1", "ua", "/"))
	require.NoError(t, l.Record(ctx, "10.0.0.2", "ua", "/"))

	l.now = func() time.Time { return now.Add(-3 * 24 * time.Hour) }
	require.NoError(t, l.Record(ctx, "10.0.0.3", "ua", "/"))
	l.now = func() time.Time { return now.Add(-400 * 24 * time.Hour) }
	require.NoError(t, l.Record(ctx, "10.0.0.4", "ua", "/"))
	l.now = func() time.Time { return now }

	stats, err := l.Stats(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalVisitors)
	assert.Equal(t, int64(4), stats.UniqueVisitors)
	assert.Equal(t, int64(3), stats.VisitorsToday)
	assert.Equal(t, int64(4), stats.VisitorsThisWeek)
	assert.Len(t, stats.RecentVisitors, 2)
	assert.NotEqual(t, "10.0.0.1", stats.RecentVisitors[0].HashedIP)

	n, err := l.Prune(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestHashIPIsStablePerSalt(t *testing.T) {
	a, err := OpenLedger(":memory:", "one")
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenLedger(":memory:", "two")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.HashIP("1.2.3.4"), a.HashIP("1.2.3.4"))
	assert.Len(t, a.HashIP("1.2.3.4"), 16)
	assert.NotEqual(t, a.HashIP("1.2.3.4"), b.HashIP("1.2.3.4"))
}
