package remote

import (
	"time"

	"github.com/google/uuid"

	"github.com/Osisami00/Nelfund-Project/internal/model"
)

// Wire types for the backend contract. Field names follow the service's
// snake_case JSON; normalization into model types happens here so the rest
// of the assistant never sees a partially filled shape.

type chatRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

type wireSource struct {
	Source         string `json:"source"`
	Page           string `json:"page"`
	ContentPreview string `json:"content_preview"`
}

type chatResponse struct {
	Response      string       `json:"response"`
	PhoneNumber   string       `json:"phone_number"`
	UsedRetrieval bool         `json:"used_retrieval"`
	Sources       []wireSource `json:"sources"`
	Timestamp     string       `json:"timestamp"`
}

type wireMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type sessionResponse struct {
	PhoneNumber string        `json:"phone_number"`
	Messages    []wireMessage `json:"messages"`
}

// ResetAck acknowledges a server-side session reset.
type ResetAck struct {
	Status      string `json:"status"`
	PhoneNumber string `json:"phone_number"`
}

// SystemStatus reports backend health and session statistics.
type SystemStatus struct {
	Status         string `json:"status"`
	SessionsActive int    `json:"sessions_active"`
	TotalMessages  int    `json:"total_messages"`
	Agent          string `json:"agent"`
}

// normalizeReply converts a raw chat response into a model.Reply, filling
// defaults the backend may omit: missing sources become an empty slice and a
// missing or unparseable timestamp becomes the current time.
func normalizeReply(in *chatResponse) *model.Reply {
	citations := make([]model.Citation, 0, len(in.Sources))
	for _, s := range in.Sources {
		citations = append(citations, model.Citation{
			Document:       s.Source,
			Section:        s.Page,
			ContentPreview: s.ContentPreview,
		})
	}
	ts := time.Now().UTC()
	if in.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, in.Timestamp); err == nil {
			ts = parsed
		}
	}
	return &model.Reply{
		Answer:        in.Response,
		Citations:     citations,
		UsedRetrieval: in.UsedRetrieval,
		Timestamp:     ts,
	}
}

// normalizeHistory converts a remote session transcript into messages. Roles
// other than "user" map to the assistant, mirroring how the widget renders
// unknown roles.
func normalizeHistory(in *sessionResponse) []model.Message {
	out := make([]model.Message, 0, len(in.Messages))
	for _, m := range in.Messages {
		sender := model.SenderAssistant
		if m.Role == "user" {
			sender = model.SenderUser
		}
		ts := time.Now().UTC()
		if m.Timestamp != "" {
			if parsed, err := time.Parse(time.RFC3339Nano, m.Timestamp); err == nil {
				ts = parsed
			}
		}
		out = append(out, model.Message{
			ID:        uuid.New().String(),
			Text:      m.Content,
			Sender:    sender,
			Citations: []model.Citation{},
			Timestamp: ts,
		})
	}
	return out
}
