package visits

import (
	"strconv"
	"strings"
)

// Status is the display state of the footer visit counter.
type Status int

const (
	StatusUnknown Status = iota // request in flight
	StatusKnown
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusKnown:
		return "known"
	case StatusFailed:
		return "error"
	default:
		return "unknown"
	}
}

// Count is what the footer shows. Value is only meaningful for StatusKnown.
type Count struct {
	Status Status
	Value  int64
}

func Unknown() Count { return Count{Status: StatusUnknown} }

func Known(n int64) Count { return Count{Status: StatusKnown, Value: n} }

func Failed() Count { return Count{Status: StatusFailed} }

func (c Count) IsKnown() bool { return c.Status == StatusKnown }

// Display renders the count with thousands separators, or a placeholder.
func (c Count) Display() string {
	switch c.Status {
	case StatusKnown:
		return groupThousands(c.Value)
	case StatusFailed:
		return "—"
	default:
		return "…"
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
