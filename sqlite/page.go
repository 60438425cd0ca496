package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitecrawl.PageService = (*PageService)(nil)

// PageService implements sitecrawl.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage stores the page and its log lines in one transaction.
// Returns ENOTFOUND if the run does not exist.
func (s *PageService) CreatePage(ctx context.Context, page *sitecrawl.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", page.RunID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return sitecrawl.Errorf(sitecrawl.ENOTFOUND, "run not found")
	}

	page.ID = uuid.New().String()
	page.VisitedAt = time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, title, content_hash, position, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.RunID, page.URL, page.Title, page.ContentHash, page.Position,
		formatTime(page.VisitedAt)); err != nil {
		return err
	}

	for i, line := range page.Log {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO page_logs (page_id, seq, level, source, message, logged_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, page.ID, i, line.Level, line.Source, line.Message, formatTime(line.Timestamp)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindPages retrieves pages matching the filter in visit order, with their
// log lines.
func (s *PageService) FindPages(ctx context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.PageRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, url, title, content_hash, position, visited_at FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY run_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitecrawl.PageRecord
	for rows.Next() {
		var page sitecrawl.PageRecord
		var visitedAt string

		if err := rows.Scan(&page.ID, &page.RunID, &page.URL, &page.Title, &page.ContentHash,
			&page.Position, &visitedAt); err != nil {
			return nil, err
		}
		if page.VisitedAt, err = parseTime(visitedAt, "visited_at"); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, page := range pages {
		if page.Log, err = s.findLogLines(ctx, page.ID); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

func (s *PageService) findLogLines(ctx context.Context, pageID string) ([]sitecrawl.LogLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT level, source, message, logged_at
		FROM page_logs
		WHERE page_id = ?
		ORDER BY seq ASC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []sitecrawl.LogLine
	for rows.Next() {
		var line sitecrawl.LogLine
		var loggedAt string
		if err := rows.Scan(&line.Level, &line.Source, &line.Message, &loggedAt); err != nil {
			return nil, err
		}
		if line.Timestamp, err = parseTime(loggedAt, "logged_at"); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
