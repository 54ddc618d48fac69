package ast

// Attributes is an insertion-ordered string map. Keys are unique within a
// node; setting an existing key updates the value in place and keeps the
// key's original position. Every consumer iterates in insertion order, so
// formatting and generation are deterministic.
type Attributes struct {
	keys   []string
	values map[string]string
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]string)}
}

// Set adds or replaces the value for key. Last write wins.
func (a *Attributes) Set(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key and whether it is present.
func (a *Attributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the attribute keys in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return a.keys
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}
