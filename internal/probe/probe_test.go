package probe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/mindease/internal/adapters/http/api"
	service "github.com/okian/mindease/internal/app"
	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/okian/mindease/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newServer(opts ...service.Option) (*httptest.Server, func()) {
	_ = logger.Init()
	svc := service.New(append([]service.Option{
		service.WithReplyDelay(10 * time.Millisecond),
		service.WithWorkerCount(2),
	}, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	return srv, func() {
		srv.Close()
		svc.Stop()
	}
}

func fastConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Workers:      3,
		Timeout:      2 * time.Second,
		ReplyTimeout: 2 * time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running server with default pools", t, func() {
		srv, stop := newServer()
		defer stop()

		Convey("When the probe plays the default scenarios twice", func() {
			cfg := fastConfig(srv.URL)
			cfg.Rounds = 2
			stats, err := Run(context.Background(), cfg)

			Convey("Then every conversation passes", func() {
				So(err, ShouldBeNil)
				So(stats.Conversations, ShouldEqual, 2*len(DefaultScenarios()))
				So(stats.Passed, ShouldEqual, stats.Conversations)
				So(stats.Duplicates, ShouldEqual, stats.Conversations)
				for _, r := range stats.Results {
					So(r.OK(), ShouldBeTrue)
					So(r.SessionID, ShouldNotBeEmpty)
					So(r.Reply, ShouldNotBeEmpty)
				}
			})
		})
	})

	Convey("Given a server with a custom lexicon", t, func() {
		lx := stress.Lexicon{High: []string{"deadline"}}
		srv, stop := newServer(service.WithLexicon(lx))
		defer stop()

		cfg := fastConfig(srv.URL)
		cfg.Scenarios = []Scenario{{Name: "deadline", Text: "the deadline is close"}}

		Convey("When the probe uses the default lexicon", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then it reports a score mismatch", func() {
				So(errors.Is(err, ErrFailed), ShouldBeTrue)
				So(stats.Failed, ShouldEqual, 1)
				So(stats.Results[0].Error, ShouldContainSubstring, ErrScoreMismatch.Error())
			})
		})

		Convey("When the probe is told about the override", func() {
			cfg.Lexicon = &lx
			stats, err := Run(context.Background(), cfg)

			Convey("Then it passes", func() {
				So(err, ShouldBeNil)
				So(stats.Results[0].Score, ShouldEqual, 7)
			})
		})
	})

	Convey("Given a server with custom reply pools", t, func() {
		pools := response.Pools{stress.BandLow: {"nice to hear"}}
		srv, stop := newServer(service.WithResponsePools(pools))
		defer stop()

		cfg := fastConfig(srv.URL)
		cfg.Scenarios = []Scenario{{Name: "low", Text: "calm and relaxed"}}

		Convey("When the probe expects the default pools", func() {
			_, err := Run(context.Background(), cfg)

			Convey("Then the reply is rejected", func() {
				So(errors.Is(err, ErrFailed), ShouldBeTrue)
			})
		})

		Convey("When the probe is given the same pools", func() {
			cfg.Pools = pools
			stats, err := Run(context.Background(), cfg)

			Convey("Then the reply is accepted", func() {
				So(err, ShouldBeNil)
				So(stats.Results[0].Reply, ShouldEqual, "nice to hear")
			})
		})
	})

	Convey("Given a server that is down", t, func() {
		srv, stop := newServer()
		url := srv.URL
		stop()

		Convey("Then the health check fails", func() {
			_, err := Run(context.Background(), fastConfig(url))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}

func TestAwaitReply(t *testing.T) {
	Convey("Given a session that never stops typing", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(sessionResponse{SessionID: "s", Typing: true})
		}))
		defer srv.Close()

		cfg := fastConfig(srv.URL).withDefaults()
		cfg.ReplyTimeout = 30 * time.Millisecond

		Convey("Then waiting times out", func() {
			_, err := awaitReply(context.Background(), newHTTPClient(srv.URL, time.Second), cfg, "s")
			So(errors.Is(err, ErrReplyTimeout), ShouldBeTrue)
		})
	})
}

func TestVerifier(t *testing.T) {
	Convey("Given the default verifier", t, func() {
		v, err := newVerifier(Config{})
		So(err, ShouldBeNil)
		want := v.expect("I feel anxious and overwhelmed")
		pool := response.DefaultPools()[stress.BandHigh]
		level := want.Score

		Convey("When the ack disagrees on the band", func() {
			err := v.checkAck(ackResponse{StressLevel: want.Score, Band: "low"}, want)
			So(errors.Is(err, ErrScoreMismatch), ShouldBeTrue)
		})

		Convey("When the session holds a matching reply", func() {
			reply, err := v.checkReply(sessionResponse{
				CurrentStressLevel: level,
				Messages: []chatMessage{
					{Text: "I feel anxious and overwhelmed", IsUser: true, StressLevel: &level},
					{Text: pool[2]},
				},
			}, want)
			So(err, ShouldBeNil)
			So(reply, ShouldEqual, pool[2])
		})

		Convey("When the reply comes from another band", func() {
			_, err := v.checkReply(sessionResponse{
				CurrentStressLevel: level,
				Messages: []chatMessage{
					{IsUser: true, StressLevel: &level},
					{Text: response.DefaultPools()[stress.BandLow][0]},
				},
			}, want)
			So(errors.Is(err, ErrReplyMismatch), ShouldBeTrue)
		})

		Convey("When the reply is missing", func() {
			_, err := v.checkReply(sessionResponse{Messages: []chatMessage{{IsUser: true}}}, want)
			So(errors.Is(err, ErrReplyMismatch), ShouldBeTrue)
			So(strings.Contains(err.Error(), "1 messages"), ShouldBeTrue)
		})
	})
}
