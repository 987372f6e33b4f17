// Package humanelog forwards humane annotations to structured loggers.
//
// The zap helpers put every collected context under a single "error.humane"
// array so console and JSON encoders show the explanation next to the error.
// LogrError does the same for logr sinks using flat key/value pairs.
package humanelog

import (
	"fmt"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"humane-errors/pkg/humane"
)

// FieldKey is the zap field that carries the collected contexts.
const FieldKey = "error.humane"

// Contexts returns a zap array field describing every annotated error reachable
// from err, in collection order. It returns zap.Skip() when there is nothing
// to report.
func Contexts(err error) zap.Field {
	contexts := humane.Collect(err)
	if len(contexts) == 0 {
		return zap.Skip()
	}
	return zap.Array(FieldKey, contextArray(contexts))
}

// Fields returns zap.Error(err) followed by the contexts field, if any.
func Fields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	fields := []zap.Field{zap.Error(err)}
	if f := Contexts(err); f.Type != zapcore.SkipType {
		fields = append(fields, f)
	}
	return fields
}

// LogrError logs err through logger. When err carries an annotation anywhere
// in its chain, the first one found is added as error.failure_mode,
// error.suggestions and error.location.
func LogrError(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}

	var keysAndValues []interface{}
	for c := range humane.Contexts(err) {
		keysAndValues = append(keysAndValues,
			"error.failure_mode", c.FailureMode(),
			"error.suggestions", c.Suggestions(),
			"error.location", location(c),
		)
		break
	}
	logger.Error(err, msg, keysAndValues...)
}

type contextArray []humane.ErrorContext

func (a contextArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, c := range a {
		if err := enc.AppendObject(contextObject(c)); err != nil {
			return err
		}
	}
	return nil
}

type contextObject humane.ErrorContext

func (o contextObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	c := humane.ErrorContext(o)
	enc.AddString("failure_mode", c.FailureMode())
	if err := enc.AddArray("suggestions", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, s := range c.Suggestions() {
			ae.AppendString(s)
		}
		return nil
	})); err != nil {
		return err
	}
	enc.AddString("type", fmt.Sprintf("%T", c.Err))
	enc.AddString("location", location(c))
	return nil
}

func location(c humane.ErrorContext) string {
	return fmt.Sprintf("%s:%d", c.File(), c.Line())
}
