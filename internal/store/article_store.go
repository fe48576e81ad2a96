package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/model"
	"github.com/lib/pq"
)

const articleColumns = `
	id, slug, title, author, publish_date, image, summary, body, body_html,
	word_count, checksum, updated_at
`

// ArticleStore handles database operations for articles
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID,
		&a.Slug,
		&a.Title,
		&a.Author,
		&a.PublishDate,
		&a.Image,
		&a.Summary,
		&a.Body,
		&a.BodyHTML,
		&a.WordCount,
		&a.Checksum,
		&a.UpdatedAt,
	)
	return a, err
}

// GetBySlug retrieves an article by its slug
func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`

	a, err := scanArticle(s.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", slug, err)
	}

	return &a, nil
}

// GetAllSorted retrieves all articles sorted by the given column and order
func (s *ArticleStore) GetAllSorted(ctx context.Context, sortBy, order string) ([]model.Article, error) {
	column := "publish_date"
	switch sortBy {
	case "title":
		column = "title"
	case "author":
		column = "author"
	}

	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	// column and direction come from the whitelist above
	query := fmt.Sprintf(`SELECT %s FROM articles ORDER BY %s %s, slug`, articleColumns, column, direction)
	return s.queryArticles(ctx, query)
}

// GetRecent retrieves the most recently published articles
func (s *ArticleStore) GetRecent(ctx context.Context, limit int) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY publish_date DESC, slug LIMIT $1`
	return s.queryArticles(ctx, query, limit)
}

func (s *ArticleStore) queryArticles(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// SaveArticleWithSnapshot upserts the article and records a snapshot only if its content changed
func (s *ArticleStore) SaveArticleWithSnapshot(ctx context.Context, a *model.Article, snapshotDate time.Time) (changed bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingChecksum sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT checksum FROM articles WHERE slug = $1`, a.Slug).Scan(&existingChecksum)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to read checksum for %s: %w", a.Slug, err)
	}

	changed = !existingChecksum.Valid || existingChecksum.String != a.Checksum

	upsertQuery := `
		INSERT INTO articles (slug, title, author, publish_date, image, summary, body,
		                      body_html, word_count, checksum, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			publish_date = EXCLUDED.publish_date,
			image = EXCLUDED.image,
			summary = EXCLUDED.summary,
			body = EXCLUDED.body,
			body_html = EXCLUDED.body_html,
			word_count = EXCLUDED.word_count,
			checksum = EXCLUDED.checksum,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err = tx.QueryRowContext(ctx, upsertQuery,
		a.Slug,
		a.Title,
		a.Author,
		a.PublishDate,
		a.Image,
		a.Summary,
		a.Body,
		a.BodyHTML,
		a.WordCount,
		a.Checksum,
	).Scan(&a.ID, &a.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to upsert article %s: %w", a.Slug, err)
	}

	if changed {
		snapshotQuery := `
			INSERT INTO article_snapshots (slug, title, word_count, checksum, snapshot_date)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug, snapshot_date) DO UPDATE SET
				title = EXCLUDED.title,
				word_count = EXCLUDED.word_count,
				checksum = EXCLUDED.checksum
		`
		_, err = tx.ExecContext(ctx, snapshotQuery, a.Slug, a.Title, a.WordCount, a.Checksum, snapshotDate)
		if err != nil {
			return false, fmt.Errorf("failed to insert snapshot for %s: %w", a.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit article %s: %w", a.Slug, err)
	}

	return changed, nil
}

// GetSnapshots retrieves the change history of an article, newest first
func (s *ArticleStore) GetSnapshots(ctx context.Context, slug string) ([]model.ArticleSnapshot, error) {
	query := `
		SELECT id, slug, title, word_count, checksum, snapshot_date, created_at
		FROM article_snapshots
		WHERE slug = $1
		ORDER BY snapshot_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots for %s: %w", slug, err)
	}
	defer rows.Close()

	var snapshots []model.ArticleSnapshot
	for rows.Next() {
		var snap model.ArticleSnapshot
		err := rows.Scan(
			&snap.ID,
			&snap.Slug,
			&snap.Title,
			&snap.WordCount,
			&snap.Checksum,
			&snap.SnapshotDate,
			&snap.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// DeleteMissing removes articles whose slug is not in keep and returns how many were removed
func (s *ArticleStore) DeleteMissing(ctx context.Context, keep []string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE NOT (slug = ANY($1))`, pq.Array(keep))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale articles: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted articles: %w", err)
	}
	return int(n), nil
}

// CountArticles returns the total number of articles
func (s *ArticleStore) CountArticles(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// GetTotalWordCount returns the sum of word counts across all articles
func (s *ArticleStore) GetTotalWordCount(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(word_count), 0) FROM articles`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get total word count: %w", err)
	}
	return total, nil
}
