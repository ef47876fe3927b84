package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/nutrichat/backend/internal/diet"
)

// ObjectStore uploads objects and signs download links for them
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// PlanSource finds the completed plan of a chat
type PlanSource interface {
	Plan(ctx context.Context, userID, chatID uuid.UUID) (*diet.Plan, error)
}

// ExportResult points at an uploaded plan
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService uploads completed plans as JSON documents
type ExportService struct {
	plans  PlanSource
	store  ObjectStore
	expiry time.Duration
	now    func() time.Time
}

// NewExportService returns a service that rejects every export when store is nil
func NewExportService(plans PlanSource, store ObjectStore, expiry time.Duration) *ExportService {
	return &ExportService{plans: plans, store: store, expiry: expiry, now: time.Now}
}

func (s *ExportService) Export(ctx context.Context, userID, chatID uuid.UUID) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	plan, err := s.plans.Plan(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	now := s.now().UTC()
	key := fmt.Sprintf("exports/%s/%s/%s.json", userID, chatID, now.Format("20060102T150405Z"))
	if err := s.store.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, s.expiry)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Key: key, URL: url, ExpiresAt: now.Add(s.expiry)}, nil
}
