package model

import (
	"strings"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// User is a chat identity. Registered users carry a canonical phone number
// and live in the directory; guests have neither and are never persisted
// beyond the current-identity pointer.
type User struct {
	ID           string    `json:"id"`
	Phone        *string   `json:"phone"`
	CountryCode  *string   `json:"countryCode"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
	SessionToken string    `json:"sessionToken"`
	IsGuest      bool      `json:"isGuest"`
}

// Citation describes where an assistant answer was drawn from.
type Citation struct {
	Document       string `json:"document"`
	Section        string `json:"section"`
	ContentPreview string `json:"contentPreview,omitempty"`
}

// Message is one transcript entry. Ordering within a transcript is by
// insertion; Timestamp is advisory display metadata, not an ordering key.
type Message struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Sender        Sender     `json:"sender"`
	Citations     []Citation `json:"citations"`
	Timestamp     time.Time  `json:"timestamp"`
	UsedRetrieval bool       `json:"usedRetrieval"`
	IsFallback    bool       `json:"isFallback"`
}

// Reply is a normalized assistant response, either from the backend or from
// the local fallback corpus.
type Reply struct {
	Answer        string
	Citations     []Citation
	UsedRetrieval bool
	Timestamp     time.Time
	IsFallback    bool
}

// FirstName returns the first whitespace-separated token of a full name,
// or "Student" when the name is empty. Welcome messages address users this way.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "Student"
	}
	return fields[0]
}
