package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/ferateo/bizbot/internal/engine"
	"github.com/ferateo/bizbot/internal/models"
	"github.com/ferateo/bizbot/internal/storage"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestServer(t *testing.T, gen engine.Generator) (*Server, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	return New(store, gen, nil, engine.NewMetrics(), zap.NewNop(), 0), store
}

func seedBusiness(t *testing.T, store *storage.MemoryStorage, saveHistory bool) int64 {
	t.Helper()
	ctx := context.Background()

	profile := &models.BusinessProfile{BusinessName: "Acme Plumbing"}
	if err := store.CreateBusinessProfile(ctx, profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	config := &models.ChatbotConfig{
		BusinessID:       profile.ID,
		ChatbotName:      "AcmeBot",
		GreetingMessage:  "Welcome!",
		Tone:             "professional",
		MaxMessageLength: 500,
		SaveChatHistory:  saveHistory,
	}
	if err := store.UpsertChatbotConfig(ctx, config); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return profile.ID
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleChat(t *testing.T) {
	gen := &stubGenerator{reply: "We open at 9am! ⏰"}
	s, store := newTestServer(t, gen)
	id := seedBusiness(t, store, true)
	handler := s.Router()

	rr := postJSON(t, handler, "/api/chat/1", chatRequest{Message: "What are your hours?"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp chatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Response != "We open at 9am! ⏰" {
		t.Errorf("response = %q, want generator reply", resp.Response)
	}
	if resp.BusinessName != "Acme Plumbing" {
		t.Errorf("business_name = %q, want %q", resp.BusinessName, "Acme Plumbing")
	}

	interactions, _ := store.GetInteractionsByBusiness(context.Background(), id)
	if len(interactions) != 1 {
		t.Fatalf("stored %d interactions, want 1", len(interactions))
	}
	if interactions[0].Category != "hours" {
		t.Errorf("interaction category = %q, want %q", interactions[0].Category, "hours")
	}
	if interactions[0].SentimentScore == nil || *interactions[0].SentimentScore != 0 {
		t.Errorf("interaction sentiment = %v, want 0", interactions[0].SentimentScore)
	}
}

func TestHandleChat_BusinessNotFound(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{reply: "hi"})
	rr := postJSON(t, s.Router(), "/api/chat/42", chatRequest{Message: "hello"})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHandleChat_ConfigMissingFallback(t *testing.T) {
	gen := &stubGenerator{reply: "should not be called"}
	s, store := newTestServer(t, gen)

	profile := &models.BusinessProfile{BusinessName: "No Config Inc"}
	if err := store.CreateBusinessProfile(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	rr := postJSON(t, s.Router(), "/api/chat/1", chatRequest{Message: "hello"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp chatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Response != engine.NoConfigReply {
		t.Errorf("response = %q, want the verbatim hand-off reply", resp.Response)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times without config, want 0", gen.calls)
	}
}

func TestHandleChat_HistoryDisabled(t *testing.T) {
	s, store := newTestServer(t, &stubGenerator{reply: "ok"})
	id := seedBusiness(t, store, false)

	rr := postJSON(t, s.Router(), "/api/chat/1", chatRequest{Message: "hello"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	interactions, _ := store.GetInteractionsByBusiness(context.Background(), id)
	if len(interactions) != 0 {
		t.Errorf("stored %d interactions with save_chat_history=false, want 0", len(interactions))
	}
}

func TestHandleChat_BackendFailureStillOK(t *testing.T) {
	s, store := newTestServer(t, &stubGenerator{err: errors.New("rate limited")})
	seedBusiness(t, store, true)

	rr := postJSON(t, s.Router(), "/api/chat/1", chatRequest{Message: "hello"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d on backend failure", rr.Code, http.StatusOK)
	}

	var resp chatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Response == "" || resp.Response == "hello" {
		t.Errorf("response = %q, want apology reply", resp.Response)
	}
}

func TestHandleGeneralChat(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{reply: "This platform builds chatbots! 🤖"})

	rr := postJSON(t, s.Router(), "/api/general-chat", chatRequest{Message: "What is this?"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp chatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Response != "This platform builds chatbots! 🤖" {
		t.Errorf("response = %q, want generator reply", resp.Response)
	}
	if resp.BusinessName != "" {
		t.Errorf("business_name = %q, want empty for general chat", resp.BusinessName)
	}
}

func TestHandleChatAnalysis(t *testing.T) {
	s, store := newTestServer(t, &stubGenerator{reply: "ok"})
	id := seedBusiness(t, store, true)

	score := 1.0
	for _, category := range []string{"hours", "hours", "location"} {
		_ = store.SaveInteraction(context.Background(), &models.ChatInteraction{
			ID:             category + "-x",
			BusinessID:     id,
			Category:       category,
			SentimentScore: &score,
		})
	}

	req := httptest.NewRequest("GET", "/api/business/1/chat-analysis", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var analysis models.ChatAnalysis
	if err := json.Unmarshal(rr.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if analysis.TotalQueries != 3 {
		t.Errorf("total_queries = %d, want 3", analysis.TotalQueries)
	}
	if len(analysis.TopCategories) == 0 || analysis.TopCategories[0].Category != "hours" {
		t.Errorf("top_categories = %v, want hours first", analysis.TopCategories)
	}
	if analysis.AverageSentiment != 1 {
		t.Errorf("average_sentiment = %v, want 1", analysis.AverageSentiment)
	}
}

func TestHandleCreateAndGetBusiness(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{reply: "ok"})
	handler := s.Router()

	rr := postJSON(t, handler, "/api/business", businessRequest{
		Profile: models.BusinessProfile{BusinessName: "New Biz"},
		Config:  models.ChatbotConfig{ChatbotName: "NewBot"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var created businessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if created.Config.MaxMessageLength != models.DefaultMaxMessageLength {
		t.Errorf("max_message_length = %d, want default %d",
			created.Config.MaxMessageLength, models.DefaultMaxMessageLength)
	}

	req := httptest.NewRequest("GET", "/api/business/1", nil)
	getRR := httptest.NewRecorder()
	handler.ServeHTTP(getRR, req)
	if getRR.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", getRR.Code, http.StatusOK)
	}

	var got businessResponse
	if err := json.Unmarshal(getRR.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Profile.BusinessName != "New Biz" || got.Config.ChatbotName != "NewBot" {
		t.Errorf("got %+v, want seeded profile and config", got)
	}
}

func TestHandleChat_BadRequests(t *testing.T) {
	s, store := newTestServer(t, &stubGenerator{reply: "ok"})
	seedBusiness(t, store, true)
	handler := s.Router()

	tests := []struct {
		name string
		path string
		body any
	}{
		{"empty message", "/api/chat/1", chatRequest{}},
		{"bad business id", "/api/chat/abc", chatRequest{Message: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, tt.path, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}
