package pressroom

import (
	"context"
	"time"
)

// Article is a stored piece of CMS content.
type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	SourceURL   string    `json:"sourceUrl"`
	Content     string    `json:"content"` // raw HTML
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Slug == "" {
		return Errorf(EINVALID, "article slug required")
	}
	if Slugify(a.Slug) != a.Slug {
		return Errorf(EINVALID, "article slug %q is not URL-safe", a.Slug)
	}
	if a.Content == "" {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// ArticleService represents a service for managing articles.
type ArticleService interface {
	// CreateArticle creates a new article.
	// Returns ECONFLICT if the slug is already used.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// UpdateArticle updates an existing article.
	// Returns ENOTFOUND if article does not exist.
	UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) (*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID   *string `json:"id"`
	Slug *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleUpdate represents fields that can be updated on an article.
type ArticleUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
