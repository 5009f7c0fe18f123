package tag

import "fmt"

// Tag is a named, hand-curated list of row ids. Unlike a slice, a tag is not
// defined by predicates; the user picks the rows directly.
type Tag struct {
	name string
	ids  []string
}

// New validates and creates a Tag.
func New(name string, ids []string) (Tag, error) {
	if name == "" {
		return Tag{}, fmt.Errorf("tag name is required")
	}
	return Tag{name: name, ids: dedupe(ids)}, nil
}

// Name returns the tag name, unique within a workspace.
func (t Tag) Name() string { return t.name }

// IDs returns the tagged row ids in first-seen order.
func (t Tag) IDs() []string { return t.ids }

// With returns a copy with the given ids added.
func (t Tag) With(ids ...string) Tag {
	out := t
	out.ids = dedupe(append(append([]string{}, t.ids...), ids...))
	return out
}

// Without returns a copy with the given ids removed.
func (t Tag) Without(ids ...string) Tag {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]string, 0, len(t.ids))
	for _, id := range t.ids {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	out := t
	out.ids = kept
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
