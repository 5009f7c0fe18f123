package result

import (
	"fmt"
	"strings"
)

// sep joins key fields. The unit separator never appears in user-authored
// names (NewKey rejects it), which makes Encode collision-free: two distinct
// 4-tuples always produce distinct strings.
const sep = "\x1f"

// Key is the unique address of one computed metric value: the
// (slice, metric, transform, model) tuple. Slice doubles as a filter query
// string for ad-hoc slices.
type Key struct {
	Slice     string
	Metric    string
	Transform string
	Model     string
}

// NewKey validates and creates a Key.
func NewKey(slice, metric, transform, model string) (Key, error) {
	k := Key{Slice: slice, Metric: metric, Transform: transform, Model: model}
	for _, f := range []string{slice, metric, transform, model} {
		if strings.Contains(f, sep) {
			return Key{}, fmt.Errorf("key field %q contains a reserved separator byte", f)
		}
	}
	return k, nil
}

// Encode serializes the 4-tuple into a stable mapping key.
func (k Key) Encode() string {
	return k.Slice + sep + k.Metric + sep + k.Transform + sep + k.Model
}

// DecodeKey inverts Encode.
func DecodeKey(s string) (Key, error) {
	parts := strings.Split(s, sep)
	if len(parts) != 4 {
		return Key{}, fmt.Errorf("malformed result key: %d field(s)", len(parts))
	}
	return Key{Slice: parts[0], Metric: parts[1], Transform: parts[2], Model: parts[3]}, nil
}

// Equal reports exact field-wise equality, with no normalization.
func (k Key) Equal(other Key) bool { return k == other }

// String renders the key for logs.
func (k Key) String() string {
	return fmt.Sprintf("slice=%q metric=%q transform=%q model=%q", k.Slice, k.Metric, k.Transform, k.Model)
}
