// Package session models the per-client application state as a value that
// only changes through Reduce.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/mindease/internal/domain/model"
	"github.com/okian/mindease/internal/domain/stress"
)

// Sentinel errors for this package.
var (
	ErrUnknownPage   = errors.New("unknown page")
	ErrReplyPending  = errors.New("reply pending")
	ErrNoPendingTurn = errors.New("no reply pending")
	ErrUnknownAction = errors.New("unknown action")
)

// State is the full view state of one client session.
type State struct {
	ID                 string              `json:"session_id"`
	Page               Page                `json:"page"`
	Messages           []model.ChatMessage `json:"messages"`
	Typing             bool                `json:"typing"`
	CurrentStressLevel int                 `json:"current_stress_level"`
	StressHistory      []model.StressData  `json:"stress_history"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// New returns the initial state: home page, empty chat, neutral level.
func New(id string, now time.Time) State {
	return State{
		ID:                 id,
		Page:               PageHome,
		Messages:           []model.ChatMessage{},
		CurrentStressLevel: stress.BaselineScore,
		StressHistory:      []model.StressData{},
		UpdatedAt:          now,
	}
}

// Action is a state transition request.
type Action interface {
	isAction()
}

// Navigate switches the visible page.
type Navigate struct {
	Page Page
	At   time.Time
}

// SubmitMessage records a user message and its score, and marks a reply as
// pending.
type SubmitMessage struct {
	Message model.ChatMessage
	Score   int
}

// ReceiveReply appends the assistant reply and clears the pending flag.
type ReceiveReply struct {
	Message model.ChatMessage
}

// WithdrawMessage undoes the latest SubmitMessage when its reply could not
// be scheduled.
type WithdrawMessage struct {
	MessageID string
	At        time.Time
}

func (Navigate) isAction()        {}
func (SubmitMessage) isAction()   {}
func (ReceiveReply) isAction()    {}
func (WithdrawMessage) isAction() {}

// Reduce applies a to s and returns the new state. s is never modified; on
// error s is returned unchanged.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case Navigate:
		if !act.Page.Valid() {
			return s, fmt.Errorf("%w: %q", ErrUnknownPage, act.Page)
		}
		next := s.clone()
		next.Page = act.Page
		next.UpdatedAt = act.At
		return next, nil

	case SubmitMessage:
		if s.Typing {
			return s, ErrReplyPending
		}
		score := stress.Clamp(act.Score)
		msg := act.Message
		msg.IsUser = true
		msg.StressLevel = model.IntPtr(score)

		next := s.clone()
		next.Messages = append(next.Messages, msg)
		next.CurrentStressLevel = score
		next.StressHistory = append(next.StressHistory, model.NewStressData(score, msg.Text, msg.Timestamp))
		next.Typing = true
		next.UpdatedAt = msg.Timestamp
		return next, nil

	case ReceiveReply:
		if !s.Typing {
			return s, ErrNoPendingTurn
		}
		msg := act.Message
		msg.IsUser = false

		next := s.clone()
		next.Messages = append(next.Messages, msg)
		next.Typing = false
		next.UpdatedAt = msg.Timestamp
		return next, nil

	case WithdrawMessage:
		n := len(s.Messages)
		if !s.Typing || n == 0 || s.Messages[n-1].ID != act.MessageID {
			return s, ErrNoPendingTurn
		}
		next := s.clone()
		next.Messages = next.Messages[:n-1]
		if h := len(next.StressHistory); h > 0 {
			next.StressHistory = next.StressHistory[:h-1]
		}
		next.CurrentStressLevel = stress.BaselineScore
		if h := len(next.StressHistory); h > 0 {
			next.CurrentStressLevel = next.StressHistory[h-1].Level
		}
		next.Typing = false
		next.UpdatedAt = act.At
		return next, nil
	}
	return s, fmt.Errorf("%w: %T", ErrUnknownAction, a)
}

// Color and Label expose the display helpers for the current level.
func (s State) Color() string { return stress.Color(s.CurrentStressLevel) }
func (s State) Label() string { return stress.Label(s.CurrentStressLevel) }

func (s State) clone() State {
	s.Messages = append(make([]model.ChatMessage, 0, len(s.Messages)+1), s.Messages...)
	s.StressHistory = append(make([]model.StressData, 0, len(s.StressHistory)+1), s.StressHistory...)
	return s
}
