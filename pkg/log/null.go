package log

type nullLogger struct{}

// Null returns a Logger that discards everything, for use in tests.
func Null() Logger { return nullLogger{} }

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Warnf(string, ...interface{})  {}
