// Package storage persists the concierge interaction log.
package storage

import (
	"context"

	"github.com/hyperjump/concierge/internal/models"
)

// Storage is the persistence interface for resolved interactions.
type Storage interface {
	RecordInteraction(ctx context.Context, interaction *models.Interaction) error
	CountInteractions(ctx context.Context) (int, error)
	RecentInteractions(ctx context.Context, limit int) ([]*models.Interaction, error)
	Close() error
}
