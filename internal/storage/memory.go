package storage

import (
	"context"
	"sync"
	"time"

	"github.com/ferateo/bizbot/internal/models"
)

// MemoryStorage is a map-backed Storage for tests and local development.
type MemoryStorage struct {
	mu           sync.RWMutex
	nextID       int64
	profiles     map[int64]*models.BusinessProfile
	configs      map[int64]*models.ChatbotConfig
	interactions map[int64][]*models.ChatInteraction
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		profiles:     make(map[int64]*models.BusinessProfile),
		configs:      make(map[int64]*models.ChatbotConfig),
		interactions: make(map[int64][]*models.ChatInteraction),
	}
}

func (s *MemoryStorage) CreateBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	profile.ID = s.nextID
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	copied := *profile
	s.profiles[profile.ID] = &copied
	return nil
}

func (s *MemoryStorage) GetBusinessProfile(ctx context.Context, id int64) (*models.BusinessProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *MemoryStorage) UpdateBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.profiles[profile.ID]
	if !exists {
		return ErrNotFound
	}
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()

	copied := *profile
	s.profiles[profile.ID] = &copied
	return nil
}

func (s *MemoryStorage) UpsertChatbotConfig(ctx context.Context, config *models.ChatbotConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.configs[config.BusinessID]; exists {
		config.ID = existing.ID
		config.CreatedAt = existing.CreatedAt
	} else {
		s.nextID++
		config.ID = s.nextID
		config.CreatedAt = time.Now()
	}
	config.UpdatedAt = time.Now()

	copied := *config
	s.configs[config.BusinessID] = &copied
	return nil
}

func (s *MemoryStorage) GetChatbotConfig(ctx context.Context, businessID int64) (*models.ChatbotConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config, exists := s.configs[businessID]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *config
	return &copied, nil
}

func (s *MemoryStorage) SaveInteraction(ctx context.Context, interaction *models.ChatInteraction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *interaction
	s.interactions[interaction.BusinessID] = append(s.interactions[interaction.BusinessID], &copied)
	return nil
}

func (s *MemoryStorage) GetInteractionsByBusiness(ctx context.Context, businessID int64) ([]*models.ChatInteraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.interactions[businessID]
	out := make([]*models.ChatInteraction, 0, len(stored))
	for _, interaction := range stored {
		copied := *interaction
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
