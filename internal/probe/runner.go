package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mindease/pkg/logger"
)

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Rounds < 1 {
		c.Rounds = DefaultRounds
	}
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ReplyTimeout <= 0 {
		c.ReplyTimeout = DefaultReplyTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = DefaultScenarios()
	}
	return c
}

// Run plays every scenario Rounds times against the server, each in its own
// session, and verifies scores, duplicate handling and replies. It returns
// the collected stats and an error wrapping ErrFailed when any conversation
// failed.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg = cfg.withDefaults()
	log := logger.Named("probe")
	start := time.Now()

	v, err := newVerifier(cfg)
	if err != nil {
		return nil, err
	}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting mindease probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("scenarios", len(cfg.Scenarios)),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers))

	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	total := cfg.Rounds * len(cfg.Scenarios)
	results := make([]Result, total)
	dups := make([]bool, total)

	jobs := make(chan int, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sc := cfg.Scenarios[i%len(cfg.Scenarios)]
				results[i], dups[i] = playConversation(ctx, client, v, cfg, sc)
				if cfg.Verbose || !results[i].OK() {
					log.Info(ctx, "conversation finished",
						logger.String("scenario", sc.Name),
						logger.String("session", results[i].SessionID),
						logger.Int("score", results[i].Score),
						logger.String("error", results[i].Error))
				}
			}
		}()
	}

feed:
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	stats := &Stats{Results: results, Duration: time.Since(start)}
	for i, r := range results {
		if r.Scenario == "" {
			continue
		}
		stats.Conversations++
		if r.OK() {
			stats.Passed++
		} else {
			stats.Failed++
		}
		if dups[i] {
			stats.Duplicates++
		}
	}

	log.Info(ctx, "probe completed",
		logger.Int("conversations", stats.Conversations),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()))

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrFailed, err)
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d conversations", ErrFailed, stats.Failed, stats.Conversations)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	return client.getJSON(ctx, "/healthz", nil)
}

// playConversation submits one scenario, resubmits it to check
// deduplication, then waits for the reply. The second return value reports
// whether the resubmission was acknowledged as a duplicate.
func playConversation(ctx context.Context, client *httpClient, v *verifier, cfg Config, sc Scenario) (Result, bool) {
	started := time.Now()
	want := v.expect(sc.Text)
	res := Result{Scenario: sc.Name, Score: want.Score, Band: string(want.Band)}
	deduped := false
	fail := func(err error) (Result, bool) {
		res.Error = err.Error()
		res.Latency = time.Since(started)
		return res, deduped
	}

	req := chatRequest{MessageID: uuid.NewString(), Text: sc.Text}
	status, body, err := client.postJSON(ctx, "/chat", req)
	if err != nil {
		return fail(err)
	}
	if status != http.StatusAccepted {
		return fail(fmt.Errorf("%w: POST /chat: %d", ErrUnexpectedStatus, status))
	}
	var ack ackResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fail(fmt.Errorf("decode ack: %w", err))
	}
	res.SessionID = ack.SessionID
	if err := v.checkAck(ack, want); err != nil {
		return fail(err)
	}

	req.SessionID = ack.SessionID
	status, body, err = client.postJSON(ctx, "/chat", req)
	if err != nil {
		return fail(err)
	}
	var dup ackResponse
	if status != http.StatusOK || json.Unmarshal(body, &dup) != nil || !dup.Duplicate {
		return fail(fmt.Errorf("%w: status %d", ErrNotDuplicate, status))
	}
	deduped = true

	sess, err := awaitReply(ctx, client, cfg, ack.SessionID)
	if err != nil {
		return fail(err)
	}
	res.Reply, err = v.checkReply(sess, want)
	if err != nil {
		return fail(err)
	}
	res.Latency = time.Since(started)
	return res, deduped
}

// awaitReply polls the session until it stops typing.
func awaitReply(ctx context.Context, client *httpClient, cfg Config, sessionID string) (sessionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ReplyTimeout)
	defer cancel()

	path := "/chat?session_id=" + url.QueryEscape(sessionID)
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()
	for {
		var sess sessionResponse
		if err := client.getJSON(ctx, path, &sess); err != nil {
			if ctx.Err() != nil {
				return sessionResponse{}, ErrReplyTimeout
			}
			return sessionResponse{}, err
		}
		if !sess.Typing {
			return sess, nil
		}
		select {
		case <-ctx.Done():
			return sessionResponse{}, ErrReplyTimeout
		case <-ticker.C:
		}
	}
}
