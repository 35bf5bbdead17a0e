package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Visit is one counted page load, stored with a hashed IP only.
type Visit struct {
	ID        string    `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarises the ledger for the admin API and the stats command.
type Stats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	RecentVisitors   []Visit `json:"recent_visitors"`
}

// Ledger is a local record of counted visits, kept next to the remote
// counter so the owner can see traffic without trusting the relay.
type Ledger struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS visitors (
	id TEXT PRIMARY KEY,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
`

// OpenLedger opens (or creates) the SQLite ledger at path. An empty salt
// gets a random one, which means hashes do not survive restarts.
func OpenLedger(path, salt string) (*Ledger, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating visitors table: %w", err)
	}

	if salt == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			db.Close()
			return nil, fmt.Errorf("generating ledger salt: %w", err)
		}
		salt = hex.EncodeToString(b)
	}

	return &Ledger{db: db, salt: salt, now: time.Now}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// HashIP is consistent per IP for a given salt. Truncated to 16 hex chars.
func (l *Ledger) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + l.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one visit.
func (l *Ledger) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO visitors (id, hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), l.HashIP(ip), userAgent, path, l.now().Unix())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Stats returns totals plus the most recent visits.
func (l *Ledger) Stats(ctx context.Context, recent int) (*Stats, error) {
	stats := &Stats{RecentVisitors: []Visit{}}
	now := l.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{midnight.Unix()}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour).Unix()}, &stats.VisitorsThisWeek},
	}
	for _, c := range counts {
		if err := l.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting visitors: %w", err)
		}
	}

	if recent <= 0 {
		return stats, nil
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?`, recent)
	if err != nil {
		return nil, fmt.Errorf("listing recent visitors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing recent visitors: %w", err)
	}
	return stats, nil
}

// Prune deletes visits older than retention and returns how many went.
// A zero retention keeps everything.
func (l *Ledger) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := l.now().Add(-retention).Unix()
	res, err := l.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
