package comment

import "strings"

// Marker is the substring that identifies a ScanImage comment block.
const Marker = "scanimage"

// Sink receives every accepted key/value pair, in comment order.
type Sink interface {
	Record(key, value string)
}

// Parse turns a comment block into a Map. present is false when the file has
// no comment at all, which yields an empty map. Every accepted pair is also
// forwarded to sink when it is non-nil. Parse never fails.
func Parse(text string, present bool, sink Sink) *Map {
	m := NewMap()
	if !present {
		return m
	}
	for _, line := range strings.Split(text, "\n") {
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(line[eq+1:])
		m.Set(key, value)
		if sink != nil {
			sink.Record(key, value)
		}
	}
	return m
}

// HasMarker reports whether text looks like a ScanImage comment block.
// The match is a case-sensitive substring search.
func HasMarker(text string) bool {
	return strings.Contains(text, Marker)
}
