package keepalive

import "time"

// tsLayout emite hora local con offset numérico explícito
// (2025-03-01T14:05:09+05:30). El scheduler externo parsea este formato.
const tsLayout = "2006-01-02T15:04:05-07:00"

func FormatTimestamp(t time.Time) string {
	return t.Format(tsLayout)
}

// ParseTimestamp es la inversa exacta de FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(tsLayout, s)
}
