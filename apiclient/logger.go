package apiclient

import "github.com/rs/zerolog"

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger.
// retryablehttp reports every attempt, so everything below errors goes to debug.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.write(l.logger.Warn(), msg, keysAndValues)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.write(l.logger.Warn(), msg, keysAndValues)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.write(l.logger.Debug(), msg, keysAndValues)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.write(l.logger.Debug(), msg, keysAndValues)
}

func (l leveledLogger) write(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	event.Msg(msg)
}
