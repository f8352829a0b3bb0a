package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// ParseInstalls coerces a Google Play install-count cell. "1,000+" → 1000.
// The literal "Free" is a known data glitch and maps to null, as does any
// token that fails to parse. A bad cell never aborts its row.
func ParseInstalls(v table.Value) table.Value {
	if v.IsNull() || v.IsNumber() {
		return v
	}

	s := strings.TrimSpace(v.Text())
	if s == "Free" {
		return table.Null()
	}

	s = strings.NewReplacer("+", "", ",", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return table.Null()
	}
	return table.Number(f)
}

// SizeToMB coerces a Google Play size cell to megabytes. "15M" → 15,
// "512k" → 0.5. "Varies with device" and anything else → null.
func SizeToMB(v table.Value) table.Value {
	if v.IsNull() {
		return table.Null()
	}

	s := strings.TrimSpace(v.Text())
	switch {
	case strings.HasSuffix(s, "M"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "M"), 64)
		if err != nil {
			return table.Null()
		}
		return table.Number(f)
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		trimmed := strings.TrimSuffix(strings.TrimSuffix(s, "K"), "k")
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return table.Null()
		}
		return table.Number(f / 1024)
	default:
		return table.Null()
	}
}

// ParseNumeric coerces a cell to a number best-effort; unparseable values
// become null, never an error.
func ParseNumeric(v table.Value) table.Value {
	if f, ok := v.Float(); ok {
		return table.Number(f)
	}
	return table.Null()
}

// reviewTimeLayouts are the formats the review API has been observed to use.
var reviewTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp coerces a date cell to RFC 3339, null if unparseable.
func ParseTimestamp(v table.Value) table.Value {
	if v.IsNull() {
		return table.Null()
	}

	s := strings.TrimSpace(v.Text())
	for _, layout := range reviewTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return table.String(ts.UTC().Format(time.RFC3339))
		}
	}
	return table.Null()
}
