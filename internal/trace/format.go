package trace

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Format selects how events are serialised.
type Format uint8

const (
	FormatAuto   Format = iota // by output path: .ndjson/.jsonl, else text
	FormatText                 // one human-readable line per event
	FormatNDJSON               // one JSON object per line
)

func formatFor(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent renders ev as one line, newline included.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id,omitempty"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	ElapsedUS int64             `json:"elapsed_us,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		ElapsedUS: ev.Elapsed.Microseconds(),
		Extra:     ev.Extra,
	})
	if err != nil {
		// map[string]string и строки всегда сериализуются
		panic(err)
	}
	return append(append(dst, data...), '\n')
}

// appendText renders "15:04:05.000 #12 pass   > parse (detail) 1.2ms {k=v}".
func appendText(dst []byte, ev *Event) []byte {
	dst = ev.Time.AppendFormat(dst, "15:04:05.000")
	dst = append(dst, " #"...)
	dst = strconv.AppendUint(dst, ev.Seq, 10)
	dst = append(dst, ' ')
	dst = append(dst, padRight(ev.Scope.String(), 6)...)
	switch ev.Kind {
	case KindSpanBegin:
		dst = append(dst, " > "...)
	case KindSpanEnd:
		dst = append(dst, " < "...)
	default:
		dst = append(dst, " * "...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	if ev.Kind == KindSpanEnd {
		dst = append(dst, ' ')
		dst = append(dst, ev.Elapsed.Round(time.Microsecond).String()...)
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, k...)
			dst = append(dst, '=')
			dst = append(dst, ev.Extra[k]...)
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
