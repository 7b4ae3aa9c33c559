package editor

import "github.com/sirupsen/logrus"

// Notifier is the editor's user-facing message sink, the toast analog of the
// settings form.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the process log. Default sink for
// headless use.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	logrus.WithField("notice", message).Info("Editor notice.")
}

func (LogNotifier) Error(message string) {
	logrus.WithField("notice", message).Warn("Editor notice.")
}
