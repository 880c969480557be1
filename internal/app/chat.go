package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/okian/mindease/internal/domain/model"
	"github.com/okian/mindease/internal/domain/session"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/okian/mindease/pkg/logger"
	"github.com/okian/mindease/pkg/metrics"
)

// SubmitInput is one user chat message. Empty ids are generated.
type SubmitInput struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
}

// SubmitResult reports what happened to a submission.
type SubmitResult struct {
	SessionID string          `json:"session_id"`
	MessageID string          `json:"message_id"`
	Analysis  stress.Analysis `json:"analysis"`
	Duplicate bool            `json:"duplicate"`
	State     session.State   `json:"state"`
}

// Analyze scores text without touching any session.
func (s *Service) Analyze(_ context.Context, text string) (stress.Analysis, error) {
	if err := s.running(); err != nil {
		return stress.Analysis{}, err
	}
	a := s.scorer.Analyze(text)
	metrics.RecordStressScore(a.Score, string(a.Band))
	return a, nil
}

// SubmitMessage scores a user message, appends it to the session and
// schedules the assistant reply. A session with a reply still pending gets
// session.ErrReplyPending; a full reply queue gets ErrBackpressure and the
// message is withdrawn again.
func (s *Service) SubmitMessage(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	if err := s.running(); err != nil {
		return SubmitResult{}, err
	}

	text := cleanText(in.Text)
	if strings.TrimSpace(text) == "" {
		metrics.RecordMessageRejected("empty")
		return SubmitResult{}, ErrEmptyMessage
	}
	if n := utf8.RuneCountInString(text); n > s.maxMessageLength {
		metrics.RecordMessageRejected("too_long")
		return SubmitResult{}, fmt.Errorf("%w: %d runes, limit %d", ErrMessageTooLong, n, s.maxMessageLength)
	}

	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	messageID := strings.TrimSpace(in.MessageID)
	if messageID == "" {
		messageID = uuid.NewString()
	}

	st, _, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		metrics.RecordMessageRejected("session")
		return SubmitResult{}, err
	}

	dedupeKey := sessionID + "/" + messageID
	if s.deduper.SeenAndRecord(ctx, dedupeKey) {
		metrics.RecordMessageDuplicate()
		s.logger.Debug(ctx, "duplicate message ignored",
			logger.String("session_id", sessionID),
			logger.String("message_id", messageID),
		)
		return SubmitResult{SessionID: sessionID, MessageID: messageID, Duplicate: true, State: st}, nil
	}

	// Scores come from the text as sent; cleanText only shapes what is
	// stored and displayed.
	analysis := s.scorer.Analyze(in.Text)
	now := s.now().UTC()
	msg := model.ChatMessage{ID: messageID, Text: text, IsUser: true, Timestamp: now}

	st, err = s.sessions.Dispatch(ctx, sessionID, session.SubmitMessage{Message: msg, Score: analysis.Score})
	if err != nil {
		s.deduper.Unrecord(ctx, dedupeKey)
		if errors.Is(err, session.ErrReplyPending) {
			metrics.RecordMessageRejected("reply_pending")
		}
		return SubmitResult{}, err
	}

	job := model.ReplyJob{
		SessionID:   sessionID,
		MessageID:   messageID,
		Text:        text,
		StressLevel: analysis.Score,
		EnqueuedAt:  now,
	}
	// A worker may finish the job before Enqueue returns, so the gauge is
	// raised first.
	metrics.IncPendingReplies()
	if err := s.queue.Enqueue(ctx, job); err != nil {
		metrics.DecPendingReplies()
		s.rollback(ctx, sessionID, messageID, dedupeKey)
		metrics.RecordMessageRejected("backpressure")
		metrics.RecordErrorByComponent("service", "backpressure")
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrBackpressure, err)
	}
	metrics.RecordMessageReceived()
	metrics.RecordStressScore(analysis.Score, string(analysis.Band))

	s.logger.Debug(ctx, "message accepted",
		logger.String("session_id", sessionID),
		logger.String("message_id", messageID),
		logger.Int("stress", analysis.Score),
		logger.String("band", string(analysis.Band)),
	)
	return SubmitResult{SessionID: sessionID, MessageID: messageID, Analysis: analysis, State: st}, nil
}

func (s *Service) rollback(ctx context.Context, sessionID, messageID, dedupeKey string) {
	s.deduper.Unrecord(ctx, dedupeKey)
	_, err := s.sessions.Dispatch(ctx, sessionID, session.WithdrawMessage{MessageID: messageID, At: s.now().UTC()})
	if err != nil {
		s.logger.Error(ctx, "withdraw after refused reply failed",
			logger.String("session_id", sessionID),
			logger.String("message_id", messageID),
			logger.Error(err),
		)
	}
}

// Session returns the stored state of a session.
func (s *Service) Session(ctx context.Context, id string) (session.State, error) {
	if err := s.running(); err != nil {
		return session.State{}, err
	}
	return s.sessions.Get(ctx, id)
}

// Navigate moves a session to page, creating the session if needed. An
// empty id starts a new session.
func (s *Service) Navigate(ctx context.Context, id, page string) (session.State, error) {
	if err := s.running(); err != nil {
		return session.State{}, err
	}
	p, err := session.ParsePage(page)
	if err != nil {
		return session.State{}, err
	}
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	if _, _, err := s.sessions.GetOrCreate(ctx, id); err != nil {
		return session.State{}, err
	}
	return s.sessions.Dispatch(ctx, id, session.Navigate{Page: p, At: s.now().UTC()})
}
