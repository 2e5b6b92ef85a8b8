package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pressroom"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pressroom.ArticleService = (*ArticleService)(nil)

// ArticleService implements pressroom.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent returns the big-endian hex encoding of the xxHash of content.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

const articleColumns = "id, slug, title, source_url, content, content_hash, created_at, updated_at"

// CreateArticle creates a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, article *pressroom.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE slug = ?", article.Slug).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return pressroom.Errorf(pressroom.ECONFLICT, "article with slug %q already exists", article.Slug)
	}

	article.ID = uuid.New().String()
	article.ContentHash = hashContent(article.Content)
	now := time.Now().UTC().Truncate(time.Second)
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.Slug, article.Title, article.SourceURL, article.Content, article.ContentHash,
		formatTime(article.CreatedAt), formatTime(article.UpdatedAt))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*pressroom.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, pressroom.Errorf(pressroom.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, ordered by slug.
func (s *ArticleService) FindArticles(ctx context.Context, filter pressroom.ArticleFilter) ([]*pressroom.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY slug ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*pressroom.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// UpdateArticle updates an existing article.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, upd pressroom.ArticleUpdate) (*pressroom.Article, error) {
	article, err := s.FindArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		article.Title = *upd.Title
	}
	if upd.Content != nil {
		article.Content = *upd.Content
		article.ContentHash = hashContent(article.Content)
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	article.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE articles
		SET title = ?, content = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, article.Title, article.Content, article.ContentHash, formatTime(article.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pressroom.Errorf(pressroom.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*pressroom.Article, error) {
	var article pressroom.Article
	var createdAt, updatedAt string

	if err := s.Scan(&article.ID, &article.Slug, &article.Title, &article.SourceURL,
		&article.Content, &article.ContentHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if article.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if article.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &article, nil
}
