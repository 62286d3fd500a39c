package commands

import (
	"context"
	"maps"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// DefaultTimeout bounds one pipeline run started through a handler.
const DefaultTimeout = 2 * time.Minute

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a pipeline operation for one message type. Messages are
// validated first, execution is bounded by a timeout, and every failure is
// returned as a categorized go-errors value.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	now       func() time.Time
}

// NewHandler wraps fn. It panics on a nil fn.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: nil command func")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute satisfies command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return classify(stageValidate, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return classify(stageContext, err)
	}

	logger := logging.WithFields(h.logger, h.messageFields(msg)).WithContext(ctx)
	logger.Debug("command.execute.start")
	start := h.now()
	elapsed := func() int64 { return h.now().Sub(start).Milliseconds() }

	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Error("command.execute.failed", "error", err, "duration_ms", elapsed())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return classify(stageContext, ctxErr)
		}
		return classify(stageExecute, err)
	}

	logger.Info("command.execute.success", "duration_ms", elapsed())
	return nil
}

func (h *Handler[T]) messageFields(msg T) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	return fields
}

// WithTimeout replaces DefaultTimeout. Zero or negative runs without a deadline.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the execution logger. Nil keeps the no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithOperation tags every entry with an operation name such as trip.generate.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}
