package domain

// DomainSet is the ordered list of distinct domains found in the store.
type DomainSet []string

// Selection is the ordered subset of a DomainSet chosen in the dashboard.
type Selection []string

// Lookup is a membership index over domain names.
type Lookup map[string]struct{}

func NewLookup(values []string) Lookup {
	l := make(Lookup, len(values))
	for _, v := range values {
		l[v] = struct{}{}
	}
	return l
}

func (l Lookup) Has(v string) bool {
	_, ok := l[v]
	return ok
}

// Add inserts v and reports whether it was missing.
func (l Lookup) Add(v string) bool {
	if l.Has(v) {
		return false
	}
	l[v] = struct{}{}
	return true
}

// DefaultSelection selects every domain of the set, in set order.
func DefaultSelection(set DomainSet) Selection {
	sel := make(Selection, len(set))
	copy(sel, set)
	return sel
}

// Restrict keeps the submitted values that belong to the set, in submitted
// order and without duplicates.
func (s DomainSet) Restrict(values []string) Selection {
	known := NewLookup(s)
	seen := make(Lookup, len(values))

	sel := make(Selection, 0, len(values))
	for _, v := range values {
		if !known.Has(v) || !seen.Add(v) {
			continue
		}
		sel = append(sel, v)
	}
	return sel
}

// Dashboard is the result of one render pass.
type Dashboard struct {
	Domains   DomainSet
	Selection Selection
	Count     uint64
}

// SelectedLookup indexes the selection so each option is resolved in
// constant time.
func (d *Dashboard) SelectedLookup() Lookup {
	return NewLookup(d.Selection)
}
