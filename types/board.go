package types

import "time"

type Recommendation struct {
	ID          string    `json:"id"`
	Place       string    `json:"place"`
	Description string    `json:"description"`
	Replies     []string  `json:"replies"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
