package elicit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/parley-mcp/parley/internal/models"
)

// ErrTimeout marks an elicitation that exceeded its deadline. Errors
// wrapping it carry the models.TimeoutMarker text, which is what the
// log reader keys its timedOut predicate on.
var ErrTimeout = errors.New("elicitation " + models.TimeoutMarker)

// Channel delivers one elicitation request to a human and returns the
// reply. Implementations sit on whatever transport carries the
// session; the engine only relies on the call returning once.
type Channel interface {
	Elicit(ctx context.Context, req models.ElicitationRequest) (models.Outcome, error)
}

// Recorder receives one record per completed transaction.
type Recorder interface {
	Append(rec models.ConfirmationRecord)
}

// Engine drives the elicitation request/response protocol and records
// every completed transaction. Multiple transactions may be in flight
// at once; each Send owns its own reply channel, so replies cannot
// cross between transactions.
type Engine struct {
	channel Channel
	history Recorder
}

func NewEngine(channel Channel, history Recorder) *Engine {
	return &Engine{channel: channel, history: history}
}

type channelReply struct {
	outcome models.Outcome
	err     error
}

// Send delivers one elicitation request and waits for the reply or
// the request's timeout, whichever comes first. Exactly one
// confirmation record is appended per call, on success and failure
// alike. A reply arriving after the timeout is discarded rather than
// applied to a later transaction.
func (e *Engine) Send(ctx context.Context, req models.ElicitationRequest) (models.Outcome, error) {
	start := time.Now()
	txn := uuid.NewString()
	confirmationType := Classify(req.Message)

	log.Debug().
		Str("txn", txn).
		Str("confirmation_type", string(confirmationType)).
		Int("timeout_ms", req.TimeoutMs).
		Msg("elicitation started")

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	replyCh := make(chan channelReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				replyCh <- channelReply{err: fmt.Errorf("elicitation channel panic: %v", r)}
			}
		}()
		outcome, err := e.channel.Elicit(callCtx, req)
		replyCh <- channelReply{outcome: outcome, err: err}
	}()

	timer := time.NewTimer(time.Duration(req.TimeoutMs) * time.Millisecond)
	defer timer.Stop()

	var outcome models.Outcome
	var callErr error
	select {
	case reply := <-replyCh:
		outcome = reply.outcome
		if reply.err != nil {
			callErr = fmt.Errorf("elicitation failed: %w", reply.err)
		}
	case <-timer.C:
		callErr = fmt.Errorf("%w after %dms", ErrTimeout, req.TimeoutMs)
	case <-ctx.Done():
		callErr = fmt.Errorf("elicitation aborted: %w", ctx.Err())
	}

	elapsedMs := time.Since(start).Milliseconds()

	if callErr != nil {
		e.record(confirmationType, req, models.Outcome{Action: models.ActionCancel}, elapsedMs, callErr)
		log.Debug().
			Str("txn", txn).
			Err(callErr).
			Int64("response_time_ms", elapsedMs).
			Msg("elicitation failed")
		return models.Outcome{}, callErr
	}

	if outcome.Action == models.ActionAccept {
		for _, name := range req.Schema.Required {
			if _, ok := outcome.Content[name]; !ok {
				// protocol violation on the reply side; the caller
				// must treat the content as untrusted
				log.Warn().
					Str("txn", txn).
					Str("field", name).
					Msg("accepted reply missing required field")
			}
		}
	}

	e.record(confirmationType, req, outcome, elapsedMs, nil)
	log.Debug().
		Str("txn", txn).
		Str("action", string(outcome.Action)).
		Int64("response_time_ms", elapsedMs).
		Msg("elicitation resolved")
	return outcome, nil
}

func (e *Engine) record(ct models.ConfirmationType, req models.ElicitationRequest, outcome models.Outcome, elapsedMs int64, callErr error) {
	rec := models.ConfirmationRecord{
		Timestamp:        time.Now().UTC().Format(time.RFC3339Nano),
		ConfirmationType: ct,
		Request:          req,
		Response:         outcome,
		ResponseTimeMs:   elapsedMs,
		Success:          callErr == nil,
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}
	e.history.Append(rec)
}
