package probe

import (
	"errors"
	"fmt"

	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
)

// Verification errors.
var (
	ErrScoreMismatch = errors.New("score mismatch")
	ErrReplyMismatch = errors.New("reply not from expected pool")
	ErrReplyTimeout  = errors.New("reply did not arrive in time")
	ErrNotDuplicate  = errors.New("resubmission not flagged as duplicate")
	ErrFailed        = errors.New("probe failed")
)

// verifier recomputes what the server should answer.
type verifier struct {
	scorer   *stress.Scorer
	selector *response.Selector
}

func newVerifier(cfg Config) (*verifier, error) {
	var scorerOpts []stress.Option
	if cfg.Lexicon != nil {
		scorerOpts = append(scorerOpts, stress.WithLexicon(*cfg.Lexicon))
	}
	scorer, err := stress.NewScorer(scorerOpts...)
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}
	selector, err := response.New(response.WithPools(cfg.Pools))
	if err != nil {
		return nil, fmt.Errorf("build selector: %w", err)
	}
	return &verifier{scorer: scorer, selector: selector}, nil
}

func (v *verifier) expect(text string) stress.Analysis {
	return v.scorer.Analyze(text)
}

// checkAck compares the acknowledged score and band with the local result.
func (v *verifier) checkAck(ack ackResponse, want stress.Analysis) error {
	if ack.StressLevel != want.Score || ack.Band != string(want.Band) {
		return fmt.Errorf("%w: got %d/%s, want %d/%s",
			ErrScoreMismatch, ack.StressLevel, ack.Band, want.Score, want.Band)
	}
	return nil
}

// checkReply verifies the session holds the user message followed by one
// reply drawn from the band of want, and returns that reply.
func (v *verifier) checkReply(sess sessionResponse, want stress.Analysis) (string, error) {
	if n := len(sess.Messages); n != 2 {
		return "", fmt.Errorf("%w: session has %d messages, want 2", ErrReplyMismatch, n)
	}
	user, reply := sess.Messages[0], sess.Messages[1]
	if !user.IsUser || user.StressLevel == nil || *user.StressLevel != want.Score {
		return "", fmt.Errorf("%w: user message not annotated with %d", ErrScoreMismatch, want.Score)
	}
	if reply.IsUser {
		return "", fmt.Errorf("%w: last message is from the user", ErrReplyMismatch)
	}
	if !v.selector.Contains(want.Band, reply.Text) {
		return reply.Text, fmt.Errorf("%w: %s", ErrReplyMismatch, want.Band)
	}
	if sess.CurrentStressLevel != want.Score {
		return reply.Text, fmt.Errorf("%w: current level %d, want %d",
			ErrScoreMismatch, sess.CurrentStressLevel, want.Score)
	}
	return reply.Text, nil
}
