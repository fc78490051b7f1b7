package reqlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/pretty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"

	ruleWidth = 62
)

// Render writes a human-oriented report of ev to w. JSON bodies are
// indented; with color set, ANSI escapes highlight the method and status.
func Render(w io.Writer, ev Event, color bool) {
	p := painter(color)
	var b strings.Builder
	rule := p(ansiBlue, strings.Repeat("═", ruleWidth))

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, title(p, "REQUEST INFORMATION"))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "   Timestamp:     %s\n", p(ansiDim, ev.Timestamp.Format(time.RFC3339Nano)))
	fmt.Fprintf(&b, "   Method:        %s\n", p(ansiGreen, ev.Method))
	fmt.Fprintf(&b, "   URL:           %s\n", p(ansiBlue, ev.URL))
	if ev.RequestID != "" {
		fmt.Fprintf(&b, "   Request ID:    %s\n", ev.RequestID)
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "   %s\n", p(ansiBold, "HEADERS:"))
	writeHeaders(&b, ev)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "   %s\n", p(ansiBold, "BODY:"))
	writeBody(&b, ev.Body, color, "No body")

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, title(p, "RESPONSE INFORMATION"))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "   Status:        %s\n", p(statusColor(ev.Status), fmt.Sprint(ev.Status)))
	fmt.Fprintf(&b, "   Response Time: %s\n", p(ansiYellow, fmt.Sprintf("%.3f ms", float64(ev.Duration.Microseconds())/1000)))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "   %s\n", p(ansiBold, "RESPONSE BODY:"))
	writeBody(&b, ev.ResponseBody, color, "{}")
	if ev.Truncated {
		fmt.Fprintf(&b, "   %s\n", p(ansiDim, fmt.Sprintf("(bodies truncated to %d bytes)", MaxBody)))
	}
	fmt.Fprintln(&b, rule)

	_, _ = io.WriteString(w, b.String())
}

func painter(color bool) func(code, s string) string {
	if !color {
		return func(_, s string) string { return s }
	}
	return func(code, s string) string { return code + s + ansiReset }
}

func title(p func(string, string) string, s string) string {
	pad := (ruleWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + p(ansiBold+ansiBlue, s)
}

// statusColor is green for 2xx, yellow for 3xx, red for 4xx and 5xx.
func statusColor(status int) string {
	switch {
	case status >= 400:
		return ansiRed
	case status >= 300:
		return ansiYellow
	case status >= 200:
		return ansiGreen
	default:
		return ""
	}
}

func writeHeaders(b *strings.Builder, ev Event) {
	if len(ev.Headers) == 0 {
		b.WriteString("   {}\n")
		return
	}
	keys := make([]string, 0, len(ev.Headers))
	for k := range ev.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "     %s: %s\n", k, strings.Join(ev.Headers[k], ", "))
	}
}

func writeBody(b *strings.Builder, body []byte, color bool, empty string) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		fmt.Fprintf(b, "   %s\n", empty)
		return
	}
	out := body
	if json.Valid(body) {
		out = pretty.Pretty(body)
		if color {
			out = pretty.Color(out, nil)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		fmt.Fprintf(b, "   %s\n", line)
	}
}
