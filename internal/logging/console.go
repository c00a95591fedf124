package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// correlationPrefixLen shortens batch correlation ids in console output.
const correlationPrefixLen = 8

// consoleHandler renders one human-readable line per record:
//
//	2026-01-02T15:04:05Z INFO parentwork [run=1a2b3c4d item=12 work=abc]: msg key=value
//
// The component, correlation id, item id, and work id are lifted out of the
// attribute list into the prefix so a batch can be followed item by item.
type consoleHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     slog.Level
	addSource bool
	attrs     []slog.Attr
	group     string
}

func newConsoleHandler(out io.Writer, level slog.Level, addSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, out: out, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, qualify(h.group, attr))
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = joinKey(h.group, name)
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var line subjectLine
	for _, attr := range h.attrs {
		line.add("", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		line.add(h.group, attr)
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString(ts.UTC().Format(time.RFC3339))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))
	if line.component != "" {
		buf.WriteByte(' ')
		buf.WriteString(line.component)
	}
	if subject := line.subject(); subject != "" {
		buf.WriteString(" [")
		buf.WriteString(subject)
		buf.WriteByte(']')
	}
	buf.WriteString(": ")
	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf.WriteString(msg)
	} else {
		buf.WriteString("(no message)")
	}
	if h.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		fmt.Fprintf(&buf, " (%s:%d)", filepath.Base(frame.File), frame.Line)
	}
	for _, field := range line.fields {
		buf.WriteByte(' ')
		buf.WriteString(field.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(field.value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

type field struct {
	key   string
	value slog.Value
}

// subjectLine sorts attributes into the prefix slots and the trailing
// key=value list. The last value for a slot wins.
type subjectLine struct {
	component   string
	correlation string
	itemID      string
	workID      string
	fields      []field
}

func (l *subjectLine) add(group string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		prefix := joinKey(group, attr.Key)
		for _, member := range attr.Value.Group() {
			l.add(prefix, member)
		}
		return
	}
	if group == "" {
		switch attr.Key {
		case FieldComponent:
			l.component = attr.Value.String()
			return
		case FieldCorrelationID:
			l.correlation = attr.Value.String()
			return
		case FieldItemID:
			l.itemID = attr.Value.String()
			return
		case FieldWorkID:
			l.workID = attr.Value.String()
			return
		}
	}
	l.fields = append(l.fields, field{key: joinKey(group, attr.Key), value: attr.Value})
}

func (l *subjectLine) subject() string {
	parts := make([]string, 0, 3)
	if l.correlation != "" {
		id := l.correlation
		if len(id) > correlationPrefixLen {
			id = id[:correlationPrefixLen]
		}
		parts = append(parts, "run="+id)
	}
	if l.itemID != "" {
		parts = append(parts, "item="+l.itemID)
	}
	if l.workID != "" {
		parts = append(parts, "work="+l.workID)
	}
	return strings.Join(parts, " ")
}

func qualify(group string, attr slog.Attr) slog.Attr {
	if group == "" {
		return attr
	}
	return slog.Attr{Key: joinKey(group, attr.Key), Value: attr.Value}
}

func joinKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + "." + key
	}
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindDuration:
		s = v.Duration().Round(time.Millisecond).String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
