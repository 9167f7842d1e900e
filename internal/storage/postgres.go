package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/ferateo/bizbot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) CreateBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error {
	hours, specialties, payments, err := marshalProfileJSON(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO business_profiles (
			business_name, business_type, industry, description,
			phone, address, city, state, postal_code, country, website,
			business_hours, specialties, payment_methods)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	err = s.db.QueryRowContext(ctx, query,
		profile.BusinessName, profile.BusinessType, profile.Industry, profile.Description,
		profile.Phone, profile.Address, profile.City, profile.State, profile.PostalCode,
		profile.Country, profile.Website,
		hours, specialties, payments,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating business profile: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetBusinessProfile(ctx context.Context, id int64) (*models.BusinessProfile, error) {
	query := `
		SELECT id, business_name, business_type, industry, description,
		       phone, address, city, state, postal_code, country, website,
		       business_hours, specialties, payment_methods, created_at, updated_at
		FROM business_profiles
		WHERE id = $1`

	profile := &models.BusinessProfile{}
	var hours, specialties, payments []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.BusinessName, &profile.BusinessType, &profile.Industry,
		&profile.Description, &profile.Phone, &profile.Address, &profile.City,
		&profile.State, &profile.PostalCode, &profile.Country, &profile.Website,
		&hours, &specialties, &payments, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying business profile: %w", err)
	}

	if err := unmarshalProfileJSON(profile, hours, specialties, payments); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *PostgresStorage) UpdateBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error {
	hours, specialties, payments, err := marshalProfileJSON(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE business_profiles
		SET business_name = $1, business_type = $2, industry = $3, description = $4,
		    phone = $5, address = $6, city = $7, state = $8, postal_code = $9,
		    country = $10, website = $11,
		    business_hours = $12, specialties = $13, payment_methods = $14,
		    updated_at = NOW()
		WHERE id = $15
		RETURNING updated_at`

	err = s.db.QueryRowContext(ctx, query,
		profile.BusinessName, profile.BusinessType, profile.Industry, profile.Description,
		profile.Phone, profile.Address, profile.City, profile.State, profile.PostalCode,
		profile.Country, profile.Website,
		hours, specialties, payments, profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error updating business profile: %w", err)
	}

	return nil
}

func (s *PostgresStorage) UpsertChatbotConfig(ctx context.Context, config *models.ChatbotConfig) error {
	query := `
		INSERT INTO chatbot_configs (
			business_id, chatbot_name, greeting_message, tone,
			show_business_hours, out_of_hours_message, max_message_length,
			enable_analytics, save_chat_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (business_id) DO UPDATE SET
			chatbot_name = EXCLUDED.chatbot_name,
			greeting_message = EXCLUDED.greeting_message,
			tone = EXCLUDED.tone,
			show_business_hours = EXCLUDED.show_business_hours,
			out_of_hours_message = EXCLUDED.out_of_hours_message,
			max_message_length = EXCLUDED.max_message_length,
			enable_analytics = EXCLUDED.enable_analytics,
			save_chat_history = EXCLUDED.save_chat_history,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query,
		config.BusinessID, config.ChatbotName, config.GreetingMessage, config.Tone,
		config.ShowBusinessHours, config.OutOfHoursMessage, config.MaxMessageLength,
		config.EnableAnalytics, config.SaveChatHistory,
	).Scan(&config.ID, &config.CreatedAt, &config.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting chatbot config: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetChatbotConfig(ctx context.Context, businessID int64) (*models.ChatbotConfig, error) {
	query := `
		SELECT id, business_id, chatbot_name, greeting_message, tone,
		       show_business_hours, out_of_hours_message, max_message_length,
		       enable_analytics, save_chat_history, created_at, updated_at
		FROM chatbot_configs
		WHERE business_id = $1`

	config := &models.ChatbotConfig{}
	err := s.db.QueryRowContext(ctx, query, businessID).Scan(
		&config.ID, &config.BusinessID, &config.ChatbotName, &config.GreetingMessage,
		&config.Tone, &config.ShowBusinessHours, &config.OutOfHoursMessage,
		&config.MaxMessageLength, &config.EnableAnalytics, &config.SaveChatHistory,
		&config.CreatedAt, &config.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying chatbot config: %w", err)
	}

	return config, nil
}

func (s *PostgresStorage) SaveInteraction(ctx context.Context, interaction *models.ChatInteraction) error {
	query := `
		INSERT INTO chat_interactions (
			id, business_id, user_message, bot_response, timestamp, category, sentiment_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var score sql.NullFloat64
	if interaction.SentimentScore != nil {
		score = sql.NullFloat64{Float64: *interaction.SentimentScore, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		interaction.ID, interaction.BusinessID, interaction.UserMessage,
		interaction.BotResponse, interaction.Timestamp, interaction.Category, score)
	if err != nil {
		return fmt.Errorf("error saving interaction: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetInteractionsByBusiness(ctx context.Context, businessID int64) ([]*models.ChatInteraction, error) {
	query := `
		SELECT id, business_id, user_message, bot_response, timestamp, category, sentiment_score
		FROM chat_interactions
		WHERE business_id = $1
		ORDER BY timestamp ASC`

	rows, err := s.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("error querying interactions: %w", err)
	}
	defer rows.Close()

	var interactions []*models.ChatInteraction
	for rows.Next() {
		interaction := &models.ChatInteraction{}
		var category sql.NullString
		var score sql.NullFloat64

		err := rows.Scan(
			&interaction.ID, &interaction.BusinessID, &interaction.UserMessage,
			&interaction.BotResponse, &interaction.Timestamp, &category, &score)
		if err != nil {
			return nil, fmt.Errorf("error scanning interaction: %w", err)
		}
		interaction.Category = category.String
		if score.Valid {
			value := score.Float64
			interaction.SentimentScore = &value
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}

	return interactions, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func marshalProfileJSON(profile *models.BusinessProfile) (hours, specialties, payments []byte, err error) {
	if profile.BusinessHours == nil {
		profile.BusinessHours = models.BusinessHours{}
	}
	hours, err = json.Marshal(profile.BusinessHours)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error marshaling business hours: %w", err)
	}

	specialties, err = json.Marshal(emptyIfNil(profile.Specialties))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error marshaling specialties: %w", err)
	}

	payments, err = json.Marshal(emptyIfNil(profile.PaymentMethods))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error marshaling payment methods: %w", err)
	}

	return hours, specialties, payments, nil
}

func unmarshalProfileJSON(profile *models.BusinessProfile, hours, specialties, payments []byte) error {
	if err := json.Unmarshal(hours, &profile.BusinessHours); err != nil {
		return fmt.Errorf("error unmarshaling business hours: %w", err)
	}
	if err := json.Unmarshal(specialties, &profile.Specialties); err != nil {
		return fmt.Errorf("error unmarshaling specialties: %w", err)
	}
	if err := json.Unmarshal(payments, &profile.PaymentMethods); err != nil {
		return fmt.Errorf("error unmarshaling payment methods: %w", err)
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
