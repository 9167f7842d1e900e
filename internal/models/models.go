package models

import "time"

// HoursRange is a single open/close window for one weekday.
type HoursRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// BusinessHours maps lowercase weekday names ("monday".."sunday") to an
// open/close window. A missing day means the business is closed that day.
type BusinessHours map[string]HoursRange

// BusinessProfile describes a tenant business. Optional fields may be empty;
// the prompt builder tolerates that and renders them as empty strings.
type BusinessProfile struct {
	ID           int64  `json:"id"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
	Industry     string `json:"industry"`
	Description  string `json:"description"`

	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
	Website    string `json:"website,omitempty"`

	BusinessHours  BusinessHours `json:"business_hours"`
	Specialties    []string      `json:"specialties,omitempty"`
	PaymentMethods []string      `json:"payment_methods,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatbotConfig describes the tenant-specific chatbot personality and
// behavior limits.
type ChatbotConfig struct {
	ID         int64 `json:"id"`
	BusinessID int64 `json:"business_id"`

	ChatbotName     string `json:"chatbot_name"`
	GreetingMessage string `json:"greeting_message"`
	Tone            string `json:"tone"`

	ShowBusinessHours bool   `json:"show_business_hours"`
	OutOfHoursMessage string `json:"out_of_hours_message,omitempty"`
	MaxMessageLength  int    `json:"max_message_length"`

	EnableAnalytics bool `json:"enable_analytics"`
	SaveChatHistory bool `json:"save_chat_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultMaxMessageLength is applied when a config omits max_message_length.
const DefaultMaxMessageLength = 500

// Conversation roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one entry of a conversation session.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatInteraction is one completed user-message/bot-response pair, tagged
// with a category and sentiment score for analytics. Interactions are
// written once and never mutated.
type ChatInteraction struct {
	ID             string    `json:"id"`
	BusinessID     int64     `json:"business_id"`
	UserMessage    string    `json:"user_message"`
	BotResponse    string    `json:"bot_response"`
	Timestamp      time.Time `json:"timestamp"`
	Category       string    `json:"category,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
}

// CategoryCount is one entry of a category histogram.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ChatAnalysis summarizes the stored interactions of one business.
type ChatAnalysis struct {
	TotalQueries     int             `json:"total_queries"`
	TopCategories    []CategoryCount `json:"top_categories"`
	AverageSentiment float64         `json:"average_sentiment"`
}
