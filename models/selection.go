package models

import "sort"

// Selection is a set of labels picked by the user in a multiselect.
// How an empty Selection is interpreted is decided by each view.
type Selection map[string]struct{}

// NewSelection builds a Selection from labels. Duplicates collapse.
func NewSelection(labels ...string) Selection {
	s := make(Selection, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return len(s) == 0 }

// Has reports whether label is selected.
func (s Selection) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// MatchAll treats an empty selection as "everything".
func (s Selection) MatchAll(label string) bool {
	return s.Empty() || s.Has(label)
}

// MatchSelected matches only selected labels, so an empty selection matches
// nothing.
func (s Selection) MatchSelected(label string) bool {
	return s.Has(label)
}

// Missing returns the selected labels absent from known, sorted.
func (s Selection) Missing(known []string) []string {
	have := make(map[string]struct{}, len(known))
	for _, k := range known {
		have[k] = struct{}{}
	}
	var out []string
	for l := range s {
		if _, ok := have[l]; !ok {
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
