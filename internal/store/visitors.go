package store

import (
	"fmt"
	"time"
)

// VisitorMetric is one recorded page view. The IP is stored hashed.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PreferenceCount is how many visitors chose a theme preference.
type PreferenceCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64             `json:"total_visitors"`
	UniqueVisitors   int64             `json:"unique_visitors"`
	VisitorsToday    int64             `json:"visitors_today"`
	VisitorsThisWeek int64             `json:"visitors_this_week"`
	Preferences      []PreferenceCount `json:"preferences"`
	RecentVisitors   []VisitorMetric   `json:"recent_visitors"`
}

func (s *Store) RecordVisit(hashedIP, userAgent, path string) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// CleanupVisits deletes visits older than maxAge and reports how many went.
func (s *Store) CleanupVisits(maxAge time.Duration) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	return result.RowsAffected()
}

// Stats summarizes visits and theme preferences for the admin dashboard.
// preferenceKey selects which stored preference is broken down.
func (s *Store) Stats(preferenceKey string, recent int) (*Stats, error) {
	stats := &Stats{}
	now := time.Now().UTC()
	startOfDay := now.Truncate(24 * time.Hour)

	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.Query(`
		SELECT value, COUNT(*) FROM preferences
		WHERE key = ?
		GROUP BY value
		ORDER BY COUNT(*) DESC, value
	`, preferenceKey)
	if err != nil {
		return nil, fmt.Errorf("preference stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc PreferenceCount
		if err := rows.Scan(&pc.Value, &pc.Count); err != nil {
			return nil, fmt.Errorf("scan preference stats: %w", err)
		}
		stats.Preferences = append(stats.Preferences, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preference stats: %w", err)
	}

	stats.RecentVisitors, err = s.RecentVisitors(recent)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) RecentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}
