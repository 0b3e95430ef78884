// Package events публикует доменные события лиги в NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	TypeScheduleGenerated    = "schedule.generated"
	TypeSeasonPointsComputed = "season_points.computed"
	TypeRatingVersionCreated = "rating.version.created"
	TypeMatchScoreChanged    = "match.score.changed"
)

// Publisher отправляет событие; ошибка публикации не должна откатывать уже сохранённые данные.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type JetStreamConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	MaxAge          time.Duration
	Replicas        int
	DuplicateWindow time.Duration
}

func DefaultJetStreamConfig(url string) JetStreamConfig {
	return JetStreamConfig{
		URL:             url,
		StreamName:      "LEAGUE_EVENTS",
		SubjectPrefix:   "league.events",
		MaxReconnects:   -1,
		ReconnectWait:   2 * time.Second,
		MaxAge:          30 * 24 * time.Hour,
		Replicas:        1,
		DuplicateWindow: 2 * time.Hour,
	}
}

type JetStreamPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewJetStreamPublisher(ctx context.Context, cfg JetStreamConfig, clock clockwork.Clock, logger *slog.Logger) (*JetStreamPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Error("NATS disconnected", slog.Any("error", err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	p := &JetStreamPublisher{nc: nc, js: js, config: cfg, clock: clock, logger: logger}
	if err := p.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	return p, nil
}

func (p *JetStreamPublisher) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:        p.config.StreamName,
		Description: "League schedule, score and rating events",
		Subjects:    []string{p.config.SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      p.config.MaxAge,
		MaxMsgs:     -1,
		Storage:     jetstream.FileStorage,
		Replicas:    p.config.Replicas,
		Duplicates:  p.config.DuplicateWindow,
	}

	if _, err := p.js.Stream(ctx, p.config.StreamName); err != nil {
		if _, err := p.js.CreateStream(ctx, sc); err != nil {
			return fmt.Errorf("create stream: %w", err)
		}
		p.logger.Info("created JetStream stream", slog.String("stream", sc.Name))
		return nil
	}
	if _, err := p.js.UpdateStream(ctx, sc); err != nil {
		return fmt.Errorf("update stream: %w", err)
	}
	return nil
}

func (p *JetStreamPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	env, err := NewEnvelope(p.clock, eventType, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	subject := p.config.SubjectPrefix + "." + eventType
	ack, err := p.js.PublishMsg(ctx, &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Event-Type": []string{eventType},
			"Event-ID":   []string{env.EventID},
		},
	},
		jetstream.WithMsgID(env.EventID),
		jetstream.WithExpectStream(p.config.StreamName),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	p.logger.Info("event published",
		slog.String("subject", subject),
		slog.String("event_id", env.EventID),
		slog.Uint64("sequence", ack.Sequence),
	)
	return nil
}

func (p *JetStreamPublisher) Close() error {
	if p.nc != nil {
		return p.nc.Drain()
	}
	return nil
}

func NewEnvelope(clock clockwork.Clock, eventType string, payload interface{}) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: clock.Now().UTC(),
		Payload:   raw,
	}, nil
}

// LogPublisher используется, когда NATS не настроен: события только пишутся в лог.
type LogPublisher struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewLogPublisher(clock clockwork.Clock, logger *slog.Logger) *LogPublisher {
	return &LogPublisher{clock: clock, logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	env, err := NewEnvelope(p.clock, eventType, payload)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "event",
		slog.String("event_type", env.EventType),
		slog.String("event_id", env.EventID),
		slog.String("payload", string(env.Payload)),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
