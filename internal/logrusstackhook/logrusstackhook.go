package logrusstackhook

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// StackHook attaches stack.NN fields to entries at the configured levels.
// Frames inside logrus itself and this package are skipped.
type StackHook struct {
	levels []logrus.Level
	depth  int
}

func NewStackHook(levels []logrus.Level) *StackHook {
	if len(levels) == 0 {
		levels = []logrus.Level{logrus.DebugLevel, logrus.TraceLevel}
	}

	return &StackHook{levels: levels, depth: 16}
}

func (h *StackHook) Levels() []logrus.Level {
	return h.levels
}

func (h *StackHook) Fire(entry *logrus.Entry) error {
	pc := make([]uintptr, h.depth)

	n := runtime.Callers(2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])

	i := 0
	for {
		frame, more := frames.Next()

		if !strings.Contains(frame.Function, "github.com/sirupsen/logrus") && !strings.Contains(frame.Function, "logrusstackhook") {
			entry.Data[fmt.Sprintf("stack.%02d", i)] = fmt.Sprintf("%s:%d: %s", frame.File, frame.Line, frame.Function)
			i++
		}

		if !more {
			break
		}
	}

	return nil
}
