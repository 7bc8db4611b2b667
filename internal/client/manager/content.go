package manager

import (
	"context"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/validation"
)

// ContentManager материалы тренера: статьи, видео, рецепты
type ContentManager struct {
	*Manager[models.ContentItem]
}

// NewContentManager создает менеджер контента
func NewContentManager(client RecordClient, cfg Config) *ContentManager {
	return &ContentManager{
		Manager: New(models.CollectionContent, client, validation.ValidateContentItem, cfg),
	}
}

// Publish публикует материал
func (m *ContentManager) Publish(ctx context.Context, item models.ContentItem) *syncer.Outcome[models.ContentItem] {
	if item.PublishedAt.IsZero() {
		item.PublishedAt = m.clock.Now()
	}
	return m.Add(ctx, item)
}

// Edit заменяет материал
func (m *ContentManager) Edit(ctx context.Context, id entity.ID, item models.ContentItem) *syncer.Outcome[models.ContentItem] {
	return m.Replace(ctx, id, item)
}

// Unpublish снимает материал с публикации
func (m *ContentManager) Unpublish(ctx context.Context, id entity.ID) *syncer.Outcome[models.ContentItem] {
	return m.Delete(ctx, id)
}

// ByKind материалы одного типа
func (m *ContentManager) ByKind(kind models.ContentKind) []models.ContentItem {
	return aggregate.Filter(m.Values(), func(c models.ContentItem) bool { return c.Kind == kind })
}
