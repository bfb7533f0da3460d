package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/telemetry"
)

// Logger is the default collaborator: it writes the payload to the log and
// confirms, standing in for a real delivery channel.
type Logger struct {
	log zerolog.Logger
}

// NewLogger builds a Logger writing through log.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: telemetry.Component(log, "submission")}
}

// Submit logs the record as indented JSON.
func (l *Logger) Submit(ctx context.Context, record model.Record) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return Outcome{}, fmt.Errorf("submission: encode payload: %w", err)
	}
	l.log.Info().
		Int("rating", record.Rating).
		Int("interests", record.Interests.Len()).
		RawJSON("payload", compact(payload)).
		Msg("form submitted successfully")
	return Outcome{Message: "Form submitted successfully! Check console for data."}, nil
}

func compact(payload []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return payload
	}
	return buf.Bytes()
}
