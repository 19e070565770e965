/*
Package log provides diagnostic logging to stderr.

Log entries are written in the following format:

	timestamp tag[pid]: SEVERITY Message key=value ...

Stdout is reserved for progress output, so nothing here ever writes to it.
*/
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Fields is an alias for logrus.Fields.
type Fields = logrus.Fields

// tag represents the application name generating the log message.
var tag string

func init() {
	tag = filepath.Base(os.Args[0])
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&TextFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}

// TextFormatter renders entries as a single line with sorted fields.
type TextFormatter struct{}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s[%d]: %s %s",
		entry.Time.Format(time.RFC3339), tag, os.Getpid(),
		strings.ToUpper(entry.Level.String()), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// SetTag sets the tag.
func SetTag(t string) {
	tag = t
}

// SetLevel sets the minimum severity that is written.
func SetLevel(level logrus.Level) {
	logrus.SetLevel(level)
}

// SetOutput redirects log output. Mostly useful in tests.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

// Debug logs a message with severity DEBUG.
func Debug(format string, v ...interface{}) {
	logrus.Debug(fmt.Sprintf(format, v...))
}

// Error logs a message with severity ERROR.
func Error(format string, v ...interface{}) {
	logrus.Error(fmt.Sprintf(format, v...))
}

// Info logs a message with severity INFO.
func Info(format string, v ...interface{}) {
	logrus.Info(fmt.Sprintf(format, v...))
}

// Warning logs a message with severity WARNING.
func Warning(format string, v ...interface{}) {
	logrus.Warning(fmt.Sprintf(format, v...))
}
