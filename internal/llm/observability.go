package llm

import "go.uber.org/zap"

// AttemptEvent describes one HTTP attempt.
type AttemptEvent struct {
	Mode      Mode
	Model     string
	Attempt   int
	LatencyMs int64
	Err       error
}

// CallEvent describes a whole Generate call after retries.
type CallEvent struct {
	Mode      Mode
	Model     string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode ErrorClass
}

// Observer receives events about generation calls for logging.
type Observer interface {
	OnAttempt(event AttemptEvent)
	OnCallComplete(event CallEvent)
}

// ZapObserver logs events through a zap logger. The credential never
// reaches it.
type ZapObserver struct {
	log *zap.Logger
}

func NewZapObserver(log *zap.Logger) *ZapObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapObserver{log: log.Named("llm")}
}

func (o *ZapObserver) OnAttempt(e AttemptEvent) {
	fields := []zap.Field{
		zap.String("mode", string(e.Mode)),
		zap.String("model", e.Model),
		zap.Int("attempt", e.Attempt),
		zap.Int64("latency_ms", e.LatencyMs),
	}
	if e.Err != nil {
		o.log.Warn("llm_attempt", append(fields, zap.String("status", string(Classify(e.Err))), zap.Error(e.Err))...)
		return
	}
	o.log.Debug("llm_attempt", append(fields, zap.String("status", "ok"))...)
}

func (o *ZapObserver) OnCallComplete(e CallEvent) {
	status := "ok"
	if !e.Success {
		status = "err:" + string(e.ErrorCode)
	}
	o.log.Info("llm_call",
		zap.String("mode", string(e.Mode)),
		zap.String("model", e.Model),
		zap.Int("attempts", e.Attempts),
		zap.Int64("latency_ms", e.LatencyMs),
		zap.String("status", status),
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnAttempt(AttemptEvent)   {}
func (NoopObserver) OnCallComplete(CallEvent) {}
