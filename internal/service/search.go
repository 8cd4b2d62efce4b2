package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/pagination"
	"github.com/foodyshare/backend/internal/search"
)

// SearchService routes a text query to the external index when one is
// configured, falling back to a database substring scan when the index is
// unavailable or reports zero matches.
type SearchService struct {
	db     *gorm.DB
	index  search.Index
	logger *zap.Logger
}

func NewSearchService(db *gorm.DB, index search.Index, logger *zap.Logger) *SearchService {
	if index == nil {
		index = search.Noop{}
	}
	return &SearchService{
		db:     db,
		index:  index,
		logger: logger,
	}
}

// Search returns one page of recipes matching the query. Indexed results
// keep the index's relevance order; fallback results are newest-first.
// An empty query is rejected before dispatch.
func (s *SearchService) Search(ctx context.Context, query string, page, perPage int) ([]models.Recipe, pagination.Meta, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pagination.Meta{}, newValidationError("q", "must not be empty")
	}
	perPage = pagination.Clamp(perPage)

	ids, total, err := s.index.Query(ctx, query, page, perPage)
	if err != nil {
		s.logger.Warn("index query failed, using database fallback",
			zap.String("query", query), zap.Error(err))
	} else if total > 0 {
		recipes, err := s.byIDs(ctx, ids)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		return recipes, pagination.NewMeta(total, page, perPage), nil
	}

	return s.fallback(ctx, query, page, perPage)
}

// byIDs maps index hits back to full records, preserving the index's
// relevance order. Ids the database no longer knows (a stale index entry)
// are skipped.
func (s *SearchService) byIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	var rows []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load search results: %w", err)
	}

	byID := make(map[string]models.Recipe, len(rows))
	for _, r := range rows {
		byID[r.ID.String()] = r
	}

	recipes := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

// fallback performs a case-insensitive substring match over title,
// description, serialized ingredients, instructions and category,
// OR-combined, ordered newest-first.
func (s *SearchService) fallback(ctx context.Context, query string, page, perPage int) ([]models.Recipe, pagination.Meta, error) {
	like := "%" + strings.ToLower(query) + "%"

	ingredientsColumn := "LOWER(ingredients)"
	if s.db.Dialector.Name() == "postgres" {
		ingredientsColumn = "LOWER(ingredients::text)"
	}

	condition := "LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR " +
		ingredientsColumn + " LIKE ? OR LOWER(instructions) LIKE ? OR LOWER(category) LIKE ?"
	args := []interface{}{like, like, like, like, like}

	base := s.db.WithContext(ctx).Model(&models.Recipe{}).Where(condition, args...)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count search results: %w", err)
	}

	meta := pagination.NewMeta(total, page, perPage)
	offset, limit := pagination.Slice(total, page, perPage)
	if limit == 0 {
		return []models.Recipe{}, meta, nil
	}

	var recipes []models.Recipe
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&recipes).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, meta, nil
}
