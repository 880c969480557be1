// Package model contains domain models passed between layers.
package model

import "time"

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsUser      bool      `json:"is_user"`
	Timestamp   time.Time `json:"timestamp"`
	StressLevel *int      `json:"stress_level,omitempty"`
}

// StressData is one point of a session's stress history.
type StressData struct {
	Level     int       `json:"level"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context"`
}

// ReplyJob asks a worker to answer a user message after the reply delay.
type ReplyJob struct {
	SessionID   string
	MessageID   string
	Text        string
	StressLevel int
	EnqueuedAt  time.Time
}

// contextRunes caps StressData.Context.
const contextRunes = 50

// NewStressData builds a history point, keeping the first 50 runes of text.
func NewStressData(level int, text string, ts time.Time) StressData {
	r := []rune(text)
	if len(r) > contextRunes {
		r = r[:contextRunes]
	}
	return StressData{Level: level, Timestamp: ts, Context: string(r)}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
