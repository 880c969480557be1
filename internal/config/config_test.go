package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/mindease/internal/config"
	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.MaxMessageLength, convey.ShouldEqual, 2000)
			convey.So(cfg.ReplyDelay(), convey.ShouldEqual, 2*time.Second)
			convey.So(cfg.SessionTTL(), convey.ShouldEqual, 30*time.Minute)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When a range is violated", func() {
			cases := map[string]func(){
				"addr":               func() { cfg.Addr = " " },
				"log_format":         func() { cfg.LogFormat = "xml" },
				"queue_size":         func() { cfg.QueueSize = 0 },
				"worker_count":       func() { cfg.WorkerCount = -1 },
				"max_sessions":       func() { cfg.MaxSessions = -1 },
				"session_ttl_ms":     func() { cfg.SessionTTLMS = -1 },
				"max_message_length": func() { cfg.MaxMessageLength = 0 },
				"reply_delay_ms":     func() { cfg.ReplyDelayMS = -5 },
			}
			for name, mutate := range cases {
				c := *config.New()
				cfg = &c
				mutate()
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, name)
			}
		})

		convey.Convey("When a response band is emptied", func() {
			cfg.Responses = map[string][]string{"high": {}}
			err := cfg.Validate()

			convey.Convey("Then validation fails with the pool error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, response.ErrEmptyPool), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a response band name is unknown", func() {
			cfg.Responses = map[string][]string{"severe": {"hang in there"}}

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(), stress.ErrUnknownBand), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When one response band is overridden", func() {
			cfg.Responses = map[string][]string{"Low": {"Nice!"}}
			pools, err := cfg.ResponsePools()

			convey.Convey("Then only that band is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pools, convey.ShouldResemble, response.Pools{stress.BandLow: {"Nice!"}})
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When one lexicon tier is overridden", func() {
			cfg.Lexicon = map[string][]string{"medium": {"deadline"}}
			lx, ok, err := cfg.LexiconOverride()

			convey.Convey("Then the other tiers keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(lx.Medium, convey.ShouldResemble, []string{"deadline"})
				convey.So(lx.High, convey.ShouldResemble, stress.DefaultLexicon().High)
			})
		})

		convey.Convey("When a lexicon keyword is blank", func() {
			cfg.Lexicon = map[string][]string{"low": {"  "}}

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(), stress.ErrInvalidLexicon), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no lexicon is configured", func() {
			_, ok, err := cfg.LexiconOverride()

			convey.Convey("Then there is no override", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}
