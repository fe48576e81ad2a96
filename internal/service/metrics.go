package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// MetricsService calculates and stores site content metrics
type MetricsService struct {
	db *sql.DB
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(db *sql.DB) *MetricsService {
	return &MetricsService{db: db}
}

// ContentMetrics represents calculated article metrics
type ContentMetrics struct {
	TotalArticles   int
	TotalWords      int
	TotalAuthors    int
	AverageWords    float64
	LatestArticle   string
	TopAuthor       string
	TopAuthorTotal  int
	LatestPublished time.Time
}

// CalculateAndStore calculates content metrics and stores them
func (m *MetricsService) CalculateAndStore(ctx context.Context) (*ContentMetrics, error) {
	metrics := &ContentMetrics{}

	totalsQuery := `
		SELECT
			COUNT(*) AS total_articles,
			COALESCE(SUM(word_count), 0) AS total_words,
			COUNT(DISTINCT author) AS total_authors
		FROM articles
	`
	err := m.db.QueryRowContext(ctx, totalsQuery).Scan(
		&metrics.TotalArticles,
		&metrics.TotalWords,
		&metrics.TotalAuthors,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate article metrics: %w", err)
	}

	if metrics.TotalArticles > 0 {
		metrics.AverageWords = float64(metrics.TotalWords) / float64(metrics.TotalArticles)
	}

	latestQuery := `
		SELECT title, publish_date
		FROM articles
		ORDER BY publish_date DESC
		LIMIT 1
	`
	err = m.db.QueryRowContext(ctx, latestQuery).Scan(
		&metrics.LatestArticle,
		&metrics.LatestPublished,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find latest article: %w", err)
	}

	topAuthorQuery := `
		SELECT author, COUNT(*) AS total
		FROM articles
		GROUP BY author
		ORDER BY total DESC, author
		LIMIT 1
	`
	err = m.db.QueryRowContext(ctx, topAuthorQuery).Scan(
		&metrics.TopAuthor,
		&metrics.TopAuthorTotal,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find top author: %w", err)
	}

	values := []struct{ name, value string }{
		{"total_articles", strconv.Itoa(metrics.TotalArticles)},
		{"total_words", strconv.Itoa(metrics.TotalWords)},
		{"total_authors", strconv.Itoa(metrics.TotalAuthors)},
		{"average_words", fmt.Sprintf("%.2f", metrics.AverageWords)},
		{"latest_article", metrics.LatestArticle},
		{"top_author", metrics.TopAuthor},
	}
	for _, v := range values {
		if err := m.storeMetric(ctx, v.name, v.value); err != nil {
			return nil, err
		}
	}

	return metrics, nil
}

// storeMetric stores a single metric value
func (m *MetricsService) storeMetric(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO metrics (metric_name, metric_value, calculated_at)
		VALUES ($1, $2, $3)
	`

	_, err := m.db.ExecContext(ctx, query, name, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store metric %s: %w", name, err)
	}

	return nil
}

// GetLatestMetrics retrieves the most recent content metrics
func (m *MetricsService) GetLatestMetrics(ctx context.Context) (map[string]string, error) {
	query := `
		SELECT DISTINCT ON (metric_name) metric_name, metric_value
		FROM metrics
		ORDER BY metric_name, calculated_at DESC
	`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	defer rows.Close()

	metrics := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics[name] = value
	}

	return metrics, rows.Err()
}
