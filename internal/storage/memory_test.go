package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/ferateo/bizbot/internal/models"
)

func TestMemoryStorage_BusinessProfileLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	profile := &models.BusinessProfile{
		BusinessName: "Acme",
		BusinessHours: models.BusinessHours{
			"monday": {Open: "09:00", Close: "17:00"},
		},
	}
	if err := s.CreateBusinessProfile(ctx, profile); err != nil {
		t.Fatalf("CreateBusinessProfile() error = %v", err)
	}
	if profile.ID == 0 {
		t.Fatalf("CreateBusinessProfile() did not assign an ID")
	}

	got, err := s.GetBusinessProfile(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetBusinessProfile() error = %v", err)
	}
	if got.BusinessName != "Acme" {
		t.Errorf("BusinessName = %q, want %q", got.BusinessName, "Acme")
	}

	got.BusinessName = "Acme Updated"
	if err := s.UpdateBusinessProfile(ctx, got); err != nil {
		t.Fatalf("UpdateBusinessProfile() error = %v", err)
	}
	updated, _ := s.GetBusinessProfile(ctx, profile.ID)
	if updated.BusinessName != "Acme Updated" {
		t.Errorf("BusinessName after update = %q, want %q", updated.BusinessName, "Acme Updated")
	}

	if _, err := s.GetBusinessProfile(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBusinessProfile(unknown) error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateBusinessProfile(ctx, &models.BusinessProfile{ID: 999}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateBusinessProfile(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorage_ChatbotConfigUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	if _, err := s.GetChatbotConfig(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChatbotConfig(missing) error = %v, want ErrNotFound", err)
	}

	config := &models.ChatbotConfig{BusinessID: 1, ChatbotName: "Bot", MaxMessageLength: 500}
	if err := s.UpsertChatbotConfig(ctx, config); err != nil {
		t.Fatalf("UpsertChatbotConfig() error = %v", err)
	}
	firstID := config.ID

	config.ChatbotName = "Bot v2"
	if err := s.UpsertChatbotConfig(ctx, config); err != nil {
		t.Fatalf("UpsertChatbotConfig() second upsert error = %v", err)
	}
	if config.ID != firstID {
		t.Errorf("upsert changed config ID from %d to %d", firstID, config.ID)
	}

	got, err := s.GetChatbotConfig(ctx, 1)
	if err != nil {
		t.Fatalf("GetChatbotConfig() error = %v", err)
	}
	if got.ChatbotName != "Bot v2" {
		t.Errorf("ChatbotName = %q, want %q", got.ChatbotName, "Bot v2")
	}
}

func TestMemoryStorage_Interactions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	score := 1.0
	for i := 0; i < 3; i++ {
		err := s.SaveInteraction(ctx, &models.ChatInteraction{
			ID:             string(rune('a' + i)),
			BusinessID:     7,
			UserMessage:    "hi",
			BotResponse:    "hello",
			Category:       "general",
			SentimentScore: &score,
		})
		if err != nil {
			t.Fatalf("SaveInteraction() error = %v", err)
		}
	}

	interactions, err := s.GetInteractionsByBusiness(ctx, 7)
	if err != nil {
		t.Fatalf("GetInteractionsByBusiness() error = %v", err)
	}
	if len(interactions) != 3 {
		t.Errorf("len(interactions) = %d, want 3", len(interactions))
	}

	other, err := s.GetInteractionsByBusiness(ctx, 8)
	if err != nil {
		t.Fatalf("GetInteractionsByBusiness(other) error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("len(interactions) for other business = %d, want 0", len(other))
	}
}
