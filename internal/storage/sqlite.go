// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Provides podcast and episode persistence with WAL mode and a natural-key unique index

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/podkeep/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL mode allows concurrent readers while a sync is writing
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS podcasts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			feed_url TEXT UNIQUE NOT NULL,
			title TEXT DEFAULT '',
			description TEXT DEFAULT '',
			image_url TEXT DEFAULT '',
			subscribed INTEGER DEFAULT 1,
			etag TEXT,
			last_modified TEXT,
			last_fetched_at TIMESTAMP,
			last_updated_at TIMESTAMP,
			last_error TEXT,
			error_count INTEGER DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_podcasts_feed_url ON podcasts(feed_url);

		CREATE TABLE IF NOT EXISTS episodes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			podcast_id TEXT NOT NULL REFERENCES podcasts(id) ON DELETE CASCADE,
			guid TEXT DEFAULT '',
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			media_url TEXT DEFAULT '',
			release_at TIMESTAMP,
			duration INTEGER DEFAULT 0,
			position INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_episodes_podcast_id ON episodes(podcast_id);
		CREATE INDEX IF NOT EXISTS idx_episodes_release_at ON episodes(release_at);

		-- Natural key: within a podcast no two episodes may share
		-- (release date, title). Missing dates collapse to ''.
		CREATE UNIQUE INDEX IF NOT EXISTS idx_episodes_natural
			ON episodes(podcast_id, coalesce(release_at, ''), title);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreatePodcast stores a new podcast.
func (s *SQLiteStore) CreatePodcast(p *models.Podcast) error {
	_, err := s.db.Exec(`
		INSERT INTO podcasts (id, feed_url, title, description, image_url, subscribed,
			etag, last_modified, last_fetched_at, last_updated_at, last_error, error_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.FeedURL, p.Title, p.Description, p.ImageURL, boolToInt(p.Subscribed),
		p.ETag, p.LastModified, p.LastFetchedAt, p.LastUpdatedAt, p.LastError, p.ErrorCount, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create podcast: %w", err)
	}
	return nil
}

const podcastColumns = `id, feed_url, title, description, image_url, subscribed,
	etag, last_modified, last_fetched_at, last_updated_at, last_error, error_count, created_at`

// GetPodcast retrieves a podcast by ID.
func (s *SQLiteStore) GetPodcast(id string) (*models.Podcast, error) {
	row := s.db.QueryRow(`SELECT `+podcastColumns+` FROM podcasts WHERE id = ?`, id)
	return scanPodcast(row)
}

// GetPodcastByURL finds a podcast by its feed URL.
func (s *SQLiteStore) GetPodcastByURL(feedURL string) (*models.Podcast, error) {
	row := s.db.QueryRow(`SELECT `+podcastColumns+` FROM podcasts WHERE feed_url = ?`, feedURL)
	return scanPodcast(row)
}

// ListPodcasts returns all podcasts sorted by title, untitled last.
func (s *SQLiteStore) ListPodcasts() ([]*models.Podcast, error) {
	rows, err := s.db.Query(`SELECT ` + podcastColumns + ` FROM podcasts ORDER BY title = '', title, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []*models.Podcast
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, err
		}
		podcasts = append(podcasts, p)
	}
	return podcasts, rows.Err()
}

// ListSubscribedIDs returns subscribed podcast IDs in subscription order.
func (s *SQLiteStore) ListSubscribedIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM podcasts WHERE subscribed = 1 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list subscribed podcasts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan podcast id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdatePodcast updates podcast-level metadata and subscription state.
func (s *SQLiteStore) UpdatePodcast(p *models.Podcast) error {
	result, err := s.db.Exec(`
		UPDATE podcasts
		SET title = ?, description = ?, image_url = ?, subscribed = ?,
			etag = ?, last_modified = ?, last_updated_at = ?
		WHERE id = ?
	`, p.Title, p.Description, p.ImageURL, boolToInt(p.Subscribed),
		p.ETag, p.LastModified, p.LastUpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update podcast: %w", err)
	}
	return requireRow(result)
}

// DeletePodcast removes a podcast; episodes cascade.
func (s *SQLiteStore) DeletePodcast(id string) error {
	result, err := s.db.Exec(`DELETE FROM podcasts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete podcast: %w", err)
	}
	return requireRow(result)
}

// UpdateFetchState records a successful fetch and clears error state.
func (s *SQLiteStore) UpdateFetchState(podcastID string, etag, lastModified *string, fetchedAt time.Time) error {
	result, err := s.db.Exec(`
		UPDATE podcasts
		SET etag = ?, last_modified = ?, last_fetched_at = ?, last_error = NULL, error_count = 0
		WHERE id = ?
	`, etag, lastModified, fetchedAt, podcastID)
	if err != nil {
		return fmt.Errorf("update fetch state: %w", err)
	}
	return requireRow(result)
}

// RecordFetchError records a fetch error and bumps the error count.
func (s *SQLiteStore) RecordFetchError(podcastID, errMsg string) error {
	result, err := s.db.Exec(`
		UPDATE podcasts SET last_error = ?, error_count = error_count + 1 WHERE id = ?
	`, errMsg, podcastID)
	if err != nil {
		return fmt.Errorf("record fetch error: %w", err)
	}
	return requireRow(result)
}

const episodeColumns = `id, podcast_id, guid, title, description, media_url, release_at, duration, created_at`

// ListEpisodes returns the podcast's episodes in persisted order.
func (s *SQLiteStore) ListEpisodes(podcastID string) ([]*models.Episode, error) {
	rows, err := s.db.Query(`SELECT `+episodeColumns+` FROM episodes WHERE podcast_id = ? ORDER BY position`, podcastID)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []*models.Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

// GetEpisode retrieves an episode by ID.
func (s *SQLiteStore) GetEpisode(id string) (*models.Episode, error) {
	row := s.db.QueryRow(`SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id)
	return scanEpisode(row)
}

// SaveEpisodes persists the full ordered episode set in one transaction.
// New rows are inserted; rows already present only have their position
// refreshed, never their content.
func (s *SQLiteStore) SaveEpisodes(podcastID string, episodes []*models.Episode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO episodes (id, podcast_id, guid, title, description, media_url,
			release_at, duration, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("prepare save: %w", err)
	}
	defer stmt.Close()

	for pos, e := range episodes {
		if _, err := stmt.Exec(e.ID, podcastID, e.GUID, e.Title, e.Description, e.MediaURL,
			e.ReleaseAt, e.Duration, pos, e.CreatedAt); err != nil {
			return fmt.Errorf("save episode %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// CountEpisodes returns the number of persisted episodes for a podcast.
func (s *SQLiteStore) CountEpisodes(podcastID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM episodes WHERE podcast_id = ?`, podcastID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count episodes: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPodcast(row rowScanner) (*models.Podcast, error) {
	var (
		p             models.Podcast
		subscribed    int
		etag          sql.NullString
		lastModified  sql.NullString
		lastFetchedAt sql.NullTime
		lastUpdatedAt sql.NullTime
		lastError     sql.NullString
	)

	err := row.Scan(&p.ID, &p.FeedURL, &p.Title, &p.Description, &p.ImageURL, &subscribed,
		&etag, &lastModified, &lastFetchedAt, &lastUpdatedAt, &lastError, &p.ErrorCount, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan podcast: %w", err)
	}

	p.Subscribed = subscribed != 0
	if etag.Valid {
		p.ETag = &etag.String
	}
	if lastModified.Valid {
		p.LastModified = &lastModified.String
	}
	if lastFetchedAt.Valid {
		p.LastFetchedAt = &lastFetchedAt.Time
	}
	if lastUpdatedAt.Valid {
		p.LastUpdatedAt = &lastUpdatedAt.Time
	}
	if lastError.Valid {
		p.LastError = &lastError.String
	}

	return &p, nil
}

func scanEpisode(row rowScanner) (*models.Episode, error) {
	var (
		e         models.Episode
		releaseAt sql.NullTime
	)

	err := row.Scan(&e.ID, &e.PodcastID, &e.GUID, &e.Title, &e.Description, &e.MediaURL,
		&releaseAt, &e.Duration, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan episode: %w", err)
	}

	if releaseAt.Valid {
		t := releaseAt.Time
		e.ReleaseAt = &t
	}

	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
