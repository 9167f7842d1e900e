package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ferateo/bizbot/internal/analytics"
	"github.com/ferateo/bizbot/internal/engine"
	"github.com/ferateo/bizbot/internal/models"
	"github.com/ferateo/bizbot/internal/storage"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	BusinessName string `json:"business_name,omitempty"`
	Message      string `json:"message"`
	Response     string `json:"response"`
	Timestamp    string `json:"timestamp"`
}

type businessRequest struct {
	Profile models.BusinessProfile `json:"profile"`
	Config  models.ChatbotConfig   `json:"config"`
}

type businessResponse struct {
	Profile models.BusinessProfile `json:"profile"`
	Config  models.ChatbotConfig   `json:"config"`
}

func businessIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	businessID, err := businessIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	profile, err := s.store.GetBusinessProfile(r.Context(), businessID)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Business not found")
		return
	}
	if err != nil {
		s.logger.Error("Failed to load business profile",
			zap.Error(err),
			zap.Int64("business_id", businessID))
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	config, err := s.store.GetChatbotConfig(r.Context(), businessID)
	if errors.Is(err, storage.ErrNotFound) {
		// No config means no generative call at all, only the hand-off reply.
		s.writeJSON(w, http.StatusOK, chatResponse{
			BusinessName: profile.BusinessName,
			Message:      req.Message,
			Response:     engine.NoConfigReply,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err != nil {
		s.logger.Error("Failed to load chatbot config",
			zap.Error(err),
			zap.Int64("business_id", businessID))
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	eng := engine.NewBusinessEngine(profile, config, s.generator, s.hours, s.metrics, s.logger)

	ctx, cancel := context.WithTimeout(r.Context(), s.chatTimeout)
	defer cancel()
	response := eng.Respond(ctx, req.Message)

	category := s.classifier.Classify(req.Message)
	score := float64(s.classifier.SentimentScore(req.Message))

	if config.SaveChatHistory {
		interaction := &models.ChatInteraction{
			ID:             uuid.New().String(),
			BusinessID:     businessID,
			UserMessage:    req.Message,
			BotResponse:    response,
			Timestamp:      time.Now().UTC(),
			Category:       category,
			SentimentScore: &score,
		}
		if err := s.store.SaveInteraction(r.Context(), interaction); err != nil {
			// the user already has a reply; losing one analytics record is
			// not worth failing the request
			s.logger.Error("Failed to save interaction",
				zap.Error(err),
				zap.String("interaction_id", interaction.ID),
				zap.Int64("business_id", businessID))
		}
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		BusinessName: profile.BusinessName,
		Message:      req.Message,
		Response:     response,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGeneralChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	// a fresh engine per request: general chat turns are independent on
	// this surface, history lives with session-scoped channels
	eng := engine.NewGeneralEngine(s.generator, s.metrics, s.logger)

	ctx, cancel := context.WithTimeout(r.Context(), s.chatTimeout)
	defer cancel()
	response := eng.Respond(ctx, req.Message)

	s.writeJSON(w, http.StatusOK, chatResponse{
		Message:   req.Message,
		Response:  response,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Profile.BusinessName == "" {
		s.writeError(w, http.StatusBadRequest, "business_name is required")
		return
	}
	if req.Config.MaxMessageLength <= 0 {
		req.Config.MaxMessageLength = models.DefaultMaxMessageLength
	}

	if err := s.store.CreateBusinessProfile(r.Context(), &req.Profile); err != nil {
		s.logger.Error("Failed to create business profile", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	req.Config.BusinessID = req.Profile.ID
	if err := s.store.UpsertChatbotConfig(r.Context(), &req.Config); err != nil {
		s.logger.Error("Failed to save chatbot config",
			zap.Error(err),
			zap.Int64("business_id", req.Profile.ID))
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	s.writeJSON(w, http.StatusCreated, businessResponse{Profile: req.Profile, Config: req.Config})
}

func (s *Server) handleGetBusiness(w http.ResponseWriter, r *http.Request) {
	businessID, err := businessIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	profile, err := s.store.GetBusinessProfile(r.Context(), businessID)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Business not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	resp := businessResponse{Profile: *profile}
	if config, err := s.store.GetChatbotConfig(r.Context(), businessID); err == nil {
		resp.Config = *config
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	businessID, err := businessIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req businessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Profile.ID = businessID
	if err := s.store.UpdateBusinessProfile(r.Context(), &req.Profile); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Business not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	if req.Config.MaxMessageLength <= 0 {
		req.Config.MaxMessageLength = models.DefaultMaxMessageLength
	}
	req.Config.BusinessID = businessID
	if err := s.store.UpsertChatbotConfig(r.Context(), &req.Config); err != nil {
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	s.writeJSON(w, http.StatusOK, businessResponse{Profile: req.Profile, Config: req.Config})
}

func (s *Server) handleChatAnalysis(w http.ResponseWriter, r *http.Request) {
	businessID, err := businessIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	if _, err := s.store.GetBusinessProfile(r.Context(), businessID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Business not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	interactions, err := s.store.GetInteractionsByBusiness(r.Context(), businessID)
	if err != nil {
		s.logger.Error("Failed to load interactions",
			zap.Error(err),
			zap.Int64("business_id", businessID))
		s.writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	s.writeJSON(w, http.StatusOK, analytics.Summarize(interactions))
}
