package service

import (
	"context"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/google/uuid"
)

// ArticleService handles article catalog operations
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
}

// NewArticleService creates a new article service
func NewArticleService(articleRepo repository.ArticleRepository, categoryRepo repository.CategoryRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, categoryRepo: categoryRepo}
}

// ArticleInput represents the create/update article input
type ArticleInput struct {
	Name        string
	ProductCode string
	KpdCode     string
	Price       float64
	TaxRate     float64
	Description *string
	Unit        string
	Active      *bool
	CategoryID  *uuid.UUID
}

// Create creates a new article
func (s *ArticleService) Create(ctx context.Context, input *ArticleInput) (*entity.Article, error) {
	if err := s.validateCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if input.TaxRate < 0 || input.TaxRate >= 100 {
		return nil, apperror.NewBadRequestError("Tax rate must be at least 0 and below 100")
	}

	article := &entity.Article{
		Name:        input.Name,
		ProductCode: input.ProductCode,
		KpdCode:     input.KpdCode,
		Price:       input.Price,
		TaxRate:     input.TaxRate,
		Description: input.Description,
		Unit:        input.Unit,
		Active:      true,
		CategoryID:  input.CategoryID,
	}
	if input.Active != nil {
		article.Active = *input.Active
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// GetByID retrieves an article by ID
func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}
	return article, nil
}

// Update updates an existing article
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, input *ArticleInput) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}
	if err := s.validateCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if input.TaxRate < 0 || input.TaxRate >= 100 {
		return nil, apperror.NewBadRequestError("Tax rate must be at least 0 and below 100")
	}

	article.Name = input.Name
	article.ProductCode = input.ProductCode
	article.KpdCode = input.KpdCode
	article.Price = input.Price
	article.TaxRate = input.TaxRate
	article.Description = input.Description
	article.Unit = input.Unit
	article.CategoryID = input.CategoryID
	if input.Active != nil {
		article.Active = *input.Active
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article. Receipt items keep their copied name and price,
// so history survives the removal.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return apperror.NewNotFoundError("Article")
	}
	return s.articleRepo.Delete(ctx, id)
}

// List returns articles. Admins see everything; cashier listings exclude
// inactive articles and articles in inactive categories.
func (s *ArticleService) List(ctx context.Context, isAdmin bool) ([]entity.Article, error) {
	return s.articleRepo.List(ctx, !isAdmin)
}

func (s *ArticleService) validateCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}
