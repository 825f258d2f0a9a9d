package apitypes

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownClass = errors.New("unknown device class")

// Class selects a device session. ClassAll is only meaningful for stop.
type Class uint32

const (
	ClassKeyboard Class = iota
	ClassMouse
	ClassTouch
	ClassAll
)

var classNames = [...]string{
	ClassKeyboard: "kbd",
	ClassMouse:    "mouse",
	ClassTouch:    "touch",
	ClassAll:      "all",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint32(c))
}

func ParseClass(s string) (Class, error) {
	for i, n := range classNames {
		if strings.EqualFold(s, n) {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// StatusLine describes one online device in the status text, rendered as
// "<class>: <sysfs path> key=value ...".
type StatusLine struct {
	Class Class
	Path  string
	Attrs []Attr
}

type Attr struct {
	Key   string
	Value string
}

func (l StatusLine) String() string {
	var b strings.Builder
	b.WriteString(l.Class.String())
	b.WriteString(": ")
	b.WriteString(l.Path)
	for _, a := range l.Attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
	}
	return b.String()
}

// FormatStatus joins lines into the status response text.
func FormatStatus(lines []StatusLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseStatus is the inverse of FormatStatus. Blank lines are skipped.
func ParseStatus(text string) ([]StatusLine, error) {
	var out []StatusLine
	for raw := range strings.Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed status line %q", line)
		}
		c, err := ParseClass(name)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return nil, fmt.Errorf("status line %q has no device path", line)
		}
		sl := StatusLine{Class: c, Path: fields[0]}
		for _, f := range fields[1:] {
			k, v, _ := strings.Cut(f, "=")
			sl.Attrs = append(sl.Attrs, Attr{Key: k, Value: v})
		}
		out = append(out, sl)
	}
	return out, nil
}
