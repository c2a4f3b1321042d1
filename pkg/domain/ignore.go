package domain

// ignoreMarker has no exported constructor; Ignore is its only value.
type ignoreMarker string

func (m ignoreMarker) String() string { return string(m) }

// Ignore is returned by a value function to skip its augmentation: an Add leaves the output
// unchanged and a conditional Remove keeps the key. It is distinct from nil, which is a value.
const Ignore ignoreMarker = "augmenter.Ignore"

// IsIgnore reports whether v is the Ignore marker.
func IsIgnore(v any) bool {
	m, ok := v.(ignoreMarker)
	return ok && m == Ignore
}
