// Package probe drives scripted chat conversations against a running
// server and checks that scores and replies come back consistent with the
// local scorer and reply pools.
package probe

import (
	"time"

	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL      string          // Base URL of the service
	Rounds       int             // Times each scenario is played, each in a fresh session
	Workers      int             // Number of concurrent conversations
	Timeout      time.Duration   // HTTP request timeout
	ReplyTimeout time.Duration   // How long to wait for a pending reply
	PollInterval time.Duration   // Delay between session polls
	Scenarios    []Scenario      // Defaults to DefaultScenarios
	Lexicon      *stress.Lexicon // Server lexicon override, if any
	Pools        response.Pools  // Server reply pool overrides, if any
	Verbose      bool            // Log every conversation
}

// Scenario is one scripted user message.
type Scenario struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// chatRequest mirrors the POST /chat body.
type chatRequest struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
}

// chatMessage mirrors one message of a session.
type chatMessage struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsUser      bool   `json:"is_user"`
	StressLevel *int   `json:"stress_level,omitempty"`
}

// sessionResponse mirrors the session view.
type sessionResponse struct {
	SessionID          string        `json:"session_id"`
	Messages           []chatMessage `json:"messages"`
	Typing             bool          `json:"typing"`
	CurrentStressLevel int           `json:"current_stress_level"`
}

// ackResponse mirrors the POST /chat acknowledgement.
type ackResponse struct {
	Status      string          `json:"status"`
	Duplicate   bool            `json:"duplicate"`
	SessionID   string          `json:"session_id"`
	MessageID   string          `json:"message_id"`
	StressLevel int             `json:"stress_level"`
	Band        string          `json:"band"`
	Session     sessionResponse `json:"session"`
}

// Result is the outcome of one conversation.
type Result struct {
	Scenario  string        `json:"scenario" yaml:"scenario"`
	SessionID string        `json:"session_id" yaml:"session_id"`
	Score     int           `json:"score" yaml:"score"`
	Band      string        `json:"band" yaml:"band"`
	Reply     string        `json:"reply,omitempty" yaml:"reply,omitempty"`
	Latency   time.Duration `json:"latency" yaml:"latency"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the conversation passed every check.
func (r Result) OK() bool { return r.Error == "" }

// Stats holds probe statistics.
type Stats struct {
	Conversations int           `json:"conversations" yaml:"conversations"`
	Passed        int           `json:"passed" yaml:"passed"`
	Failed        int           `json:"failed" yaml:"failed"`
	Duplicates    int           `json:"duplicates" yaml:"duplicates"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	Results       []Result      `json:"results" yaml:"results"`
}
