package utils

// A filter that matches strings.
type StringFilter struct {
	emptyIsAny bool
	contents   map[string]bool
}

func NewStringFilterFromSlice(slice []string) *StringFilter {
	contents := make(map[string]bool)
	for _, item := range slice {
		contents[item] = true
	}

	return &StringFilter{true, contents}
}

// Force the filter to match nothing if it is empty.
func (f *StringFilter) SetStrict() {
	f.emptyIsAny = false
}

// Returns whether the filter has no entries.
func (f *StringFilter) Empty() bool {
	return len(f.contents) == 0
}

func (f *StringFilter) Match(item string) bool {
	if len(f.contents) == 0 {
		return f.emptyIsAny
	}

	_, ok := f.contents[item]
	return ok
}

func (f *StringFilter) MatchAny(items []string) bool {
	if len(f.contents) == 0 {
		return f.emptyIsAny
	}

	for _, item := range items {
		if f.Match(item) {
			return true
		}
	}

	return false
}
