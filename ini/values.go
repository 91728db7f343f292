package ini

import (
	"slices"
	"strings"
)

// ValueSeparator joins the items of a multi-item value when it is written.
const ValueSeparator = ", "

// Values is the item list of a key. An empty Values means the key was
// declared without a value.
type Values []string

// IsNone reports whether v holds no items.
func (v Values) IsNone() bool { return len(v) == 0 }

// Contains reports whether item is one of the items of v.
func (v Values) Contains(item string) bool { return slices.Contains(v, item) }

// Equal reports whether v and o hold the same items in the same order.
func (v Values) Equal(o Values) bool { return slices.Equal(v, o) }

// String returns the encoded value string of v.
func (v Values) String() string { return EncodeValues(v) }

// EncodeValues joins the items of v with [ValueSeparator].
func EncodeValues(v Values) string { return strings.Join(v, ValueSeparator) }

// DecodeValues splits s on ',' into trimmed items, dropping empty ones.
// It returns nil when s holds no items.
func DecodeValues(s string) Values {
	var v Values

	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			v = append(v, item)
		}
	}

	return v
}

// merge appends each item of add not already in v.
func (v Values) merge(add Values) Values {
	for _, item := range add {
		if !v.Contains(item) {
			v = append(v, item)
		}
	}

	return v
}
