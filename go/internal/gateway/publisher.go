package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/engine"
)

type JetStreamConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	MaxAge          time.Duration // How long to keep messages
	Replicas        int
	DuplicateWindow time.Duration
	QueueSize       int // Snapshots waiting to be published
}

func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:             nats.DefaultURL,
		StreamName:      "MATCH_STATE",
		SubjectPrefix:   "match.state",
		MaxReconnects:   -1, // Infinite
		ReconnectWait:   2 * time.Second,
		MaxAge:          24 * time.Hour,
		Replicas:        1,
		DuplicateWindow: 2 * time.Minute,
		QueueSize:       256,
	}
}

type publishFunc func(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)

// StatePublisher publishes match state changes to JetStream. It implements
// engine.Observer; snapshots are queued and published off the tick path.
type StatePublisher struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	config  JetStreamConfig
	publish publishFunc

	queue     chan *engine.Snapshot
	published atomic.Uint64
	dropped   atomic.Uint64
}

func NewStatePublisher(cfg JetStreamConfig) (*StatePublisher, error) {
	opts := []nats.Option{
		nats.Name("matchday"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
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

	p := newStatePublisher(cfg, js.PublishMsg)
	p.nc = nc
	p.js = js

	if err := p.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	return p, nil
}

func newStatePublisher(cfg JetStreamConfig, publish publishFunc) *StatePublisher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultJetStreamConfig().QueueSize
	}
	return &StatePublisher{
		config:  cfg,
		publish: publish,
		queue:   make(chan *engine.Snapshot, cfg.QueueSize),
	}
}

func (p *StatePublisher) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:              p.config.StreamName,
		Description:       "Match state changes",
		Subjects:          []string{fmt.Sprintf("%s.>", p.config.SubjectPrefix)},
		Retention:         jetstream.LimitsPolicy,
		MaxAge:            p.config.MaxAge,
		MaxMsgsPerSubject: 100,
		Storage:           jetstream.FileStorage,
		Replicas:          p.config.Replicas,
		Duplicates:        p.config.DuplicateWindow,
	}

	if _, err := p.js.Stream(ctx, p.config.StreamName); err != nil {
		if _, err = p.js.CreateStream(ctx, sc); err != nil {
			return fmt.Errorf("create stream: %w", err)
		}
		log.Info().Str("stream", p.config.StreamName).Msg("created JetStream stream")
		return nil
	}

	if _, err := p.js.UpdateStream(ctx, sc); err != nil {
		return fmt.Errorf("update stream: %w", err)
	}
	return nil
}

// Observe queues a changed snapshot. It never blocks; when the queue is full
// the snapshot is dropped and counted.
func (p *StatePublisher) Observe(snap *engine.Snapshot) {
	select {
	case p.queue <- snap:
	default:
		p.dropped.Add(1)
		log.Warn().Str("match_id", snap.MatchID).Msg("state publish queue full, dropping change")
	}
}

// Run publishes queued snapshots until ctx is cancelled.
func (p *StatePublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-p.queue:
			if err := p.Publish(ctx, snap); err != nil {
				log.Error().Err(err).Str("match_id", snap.MatchID).Msg("failed to publish match state")
			}
		}
	}
}

// Publish sends one MatchStateChanged event for snap.
func (p *StatePublisher) Publish(ctx context.Context, snap *engine.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	event := StreamEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeMatchStateChanged,
		MatchID:   snap.MatchID,
		Timestamp: snap.At.UTC(),
		Payload:   payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	subject := p.Subject(snap.MatchID)
	ack, err := p.publish(ctx, &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Event-Type": []string{string(event.EventType)},
			"Match-ID":   []string{snap.MatchID},
			"Event-ID":   []string{event.EventID},
		},
	},
		jetstream.WithMsgID(event.EventID),
		jetstream.WithExpectStream(p.config.StreamName),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}
	p.published.Add(1)

	log.Debug().
		Str("subject", subject).
		Str("match_id", snap.MatchID).
		Uint64("sequence", ack.Sequence).
		Msg("published match state")
	return nil
}

// Subject returns the subject for matchID. Characters NATS treats as
// separators or wildcards are replaced.
func (p *StatePublisher) Subject(matchID string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, matchID)
	return fmt.Sprintf("%s.%s", p.config.SubjectPrefix, token)
}

// Stats returns publish counters.
func (p *StatePublisher) Stats() (published, dropped uint64) {
	return p.published.Load(), p.dropped.Load()
}

func (p *StatePublisher) Close() error {
	if p.nc != nil {
		p.nc.Drain()
	}
	return nil
}
