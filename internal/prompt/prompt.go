package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ferateo/bizbot/internal/models"
)

// contextTemplate is the prompt preamble sent ahead of every business chat
// turn. Only the data fields vary per business; the numbered instruction
// block is static.
const contextTemplate = `%s

You are %s, a customer service assistant for %s.

Company Information:
- Business Type: %s
- Industry: %s
- Description: %s

Contact Information:
- Phone: %s
- Address: %s, %s, %s %s
- Website: %s

Business Hours:
%s

Services & Payment:
- Specialties: %s
- Payment Methods: %s

Communication Style:
- Tone: %s

Instructions:
1. Respond in the specified tone (%s)
2. Keep responses short, and use emojis when appropriate.
3. If outside business hours, mention: "%s"
4. If unsure about any information, offer to connect with a human representative
5. Be helpful, accurate, and concise`

// Build assembles the generation context for one business from its profile
// and chatbot config. It is deterministic and never fails: absent optional
// fields render as empty strings, an absent hours table renders as "{}".
func Build(profile *models.BusinessProfile, config *models.ChatbotConfig) string {
	return fmt.Sprintf(contextTemplate,
		config.GreetingMessage,
		config.ChatbotName,
		profile.BusinessName,
		profile.BusinessType,
		profile.Industry,
		profile.Description,
		profile.Phone,
		profile.Address,
		profile.City,
		profile.State,
		profile.PostalCode,
		profile.Website,
		renderHours(profile.BusinessHours),
		strings.Join(profile.Specialties, ", "),
		strings.Join(profile.PaymentMethods, ", "),
		config.Tone,
		config.Tone,
		config.OutOfHoursMessage,
	)
}

func renderHours(hours models.BusinessHours) string {
	if len(hours) == 0 {
		return "{}"
	}
	// json keys sort alphabetically, which keeps the output deterministic
	data, err := json.MarshalIndent(hours, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
