package repository

import (
	"context"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all articles for admins; with activeOnly set it returns
	// only active articles whose category, when present, is active too.
	List(ctx context.Context, activeOnly bool) ([]entity.Article, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.Category, error)
}
