package notify

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Channel identifies a delivery channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Template kinds referenced by the service.
const (
	TemplatePriceAlert       = "price_alert"
	TemplateRecoveryInitial  = "recovery_initial"
	TemplateRecoveryReminder = "recovery_reminder"
	TemplateRecoveryFinal    = "recovery_final"
)

// Sink delivers notifications. Real email/push delivery lives behind this
// interface; the core never retries a failed send inline.
type Sink interface {
	Send(ctx context.Context, channel Channel, recipient, template string, payload map[string]any) error
}

// LogSink writes notifications to the service log. Default sink outside
// production wiring.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("notify")}
}

func (s *LogSink) Send(_ context.Context, channel Channel, recipient, template string, payload map[string]any) error {
	s.log.Info("notification sent",
		zap.String("channel", string(channel)),
		zap.String("recipient", recipient),
		zap.String("template", template),
		zap.Any("payload", payload),
	)
	return nil
}

var errSendFailed = errors.New("send_failed")

// Sent is one captured notification, for assertions in tests.
type Sent struct {
	Channel   Channel
	Recipient string
	Template  string
	Payload   map[string]any
}

// Recorder captures notifications instead of delivering them.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
	Fail bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(_ context.Context, channel Channel, recipient, template string, payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return errSendFailed
	}
	r.sent = append(r.sent, Sent{Channel: channel, Recipient: recipient, Template: template, Payload: payload})
	return nil
}

// All returns a copy of the captured notifications in send order.
func (r *Recorder) All() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

var Module = fx.Module("notify",
	fx.Provide(func(log *zap.Logger) Sink {
		return NewLogSink(log)
	}),
)
