package dataset

// Row maps field names to values and remembers the order keys were added.
// Key order drives schema field order, so loaders must insert in source order.
//
// Copying a Row copies references: copies share keys and values. Rows are
// treated as read-only once loaded; use Clone before calling Set on a row
// that may be shared.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow builds a row from parallel key/value slices. Duplicate keys keep
// their first position and last value.
func NewRow(keys []string, values []Value) Row {
	r := Row{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]Value, len(keys)),
	}
	for i, k := range keys {
		v := Null()
		if i < len(values) {
			v = values[i]
		}
		r.Set(k, v)
	}
	return r
}

// Set assigns a value, appending the key if it is new. It writes to storage
// shared with any copy of r.
func (r *Row) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Clone returns a row with its own key order and value storage.
func (r Row) Clone() Row {
	c := Row{
		keys:   append([]string(nil), r.keys...),
		values: make(map[string]Value, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Lookup returns the value under key and whether it is present and non-null.
// Absent keys and Null values are both "missing".
func (r Row) Lookup(key string) (Value, bool) {
	v, ok := r.values[key]
	if !ok || v.IsNull() {
		return Value{}, false
	}
	return v, true
}

// Keys returns the field names in insertion order. The slice must not be
// modified.
func (r Row) Keys() []string { return r.keys }

func (r Row) Len() int { return len(r.keys) }

// Map returns the row as plain Go values, for JSON encoding.
func (r Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.keys))
	for _, k := range r.keys {
		m[k] = r.values[k].Interface()
	}
	return m
}

// Equal reports whether two rows hold the same keys in the same order with
// identical values.
func (r Row) Equal(o Row) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k {
			return false
		}
		a, b := r.values[k], o.values[k]
		if a.kind != b.kind || a.str != b.str || a.b != b.b || !a.t.Equal(b.t) {
			return false
		}
		if a.num != b.num && !(a.num != a.num && b.num != b.num) {
			return false
		}
	}
	return true
}
