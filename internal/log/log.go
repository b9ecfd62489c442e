// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "CACHEMATRIX_LOG"

// DefaultLevel keeps cache-hit notifications visible.
const DefaultLevel = "INFO"

// InitLogger sets up Apex with a CustomHandler writing to w and a log level
// from the CACHEMATRIX_LOG env variable. An unknown level falls back to
// DefaultLevel.
func InitLogger(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	level := strings.ToUpper(os.Getenv(EnvLevel))
	if level == "" {
		level = DefaultLevel
	}
	log.SetHandler(&CustomHandler{Writer: w})
	if _, err := log.ParseLevel(strings.ToLower(level)); err != nil {
		level = DefaultLevel
	}
	log.SetLevelFromString(strings.ToLower(level))
}

// CustomHandler formats log messages as one line per entry.
type CustomHandler struct {
	Writer io.Writer

	// Now is used for timestamps; time.Now when nil.
	Now func() time.Time

	mu sync.Mutex
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	timestamp := now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.Writer, b.String())
	return err
}
