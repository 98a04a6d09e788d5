package bencode

// dictEntry pairs a raw byte-string key with its value, preserving the
// order keys were first set in.
type dictEntry struct {
	key   []byte
	value Value
}

// Dict is a byte-string-keyed mapping that preserves insertion order. Order
// preservation matters for round-tripping the "extra" bag on a handshake:
// unrecognized top-level keys must come back out in the shape they went in.
type Dict struct {
	entries []dictEntry
	index   map[string]int
}

// NewDict returns an empty Dict ready to use.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// Set stores v under key, overwriting any existing entry for that key in
// place (its position in iteration order is unchanged) or appending a new
// entry at the end.
func (d *Dict) Set(key []byte, v Value) {
	k := string(key)
	if i, ok := d.index[k]; ok {
		d.entries[i].value = v
		return
	}
	owned := make([]byte, len(key))
	copy(owned, key)
	d.index[k] = len(d.entries)
	d.entries = append(d.entries, dictEntry{key: owned, value: v})
}

// Get returns the value stored under key, if any.
func (d *Dict) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.entries[i].value, true
}

// Require returns the value stored under key, or MissingDictionaryKey if
// absent.
func (d *Dict) Require(key string) (Value, error) {
	v, ok := d.Get(key)
	if !ok {
		return Value{}, &Error{Kind: KindMissingDictionaryKey, Key: key}
	}
	return v, nil
}

// Len reports the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Each calls fn for every entry in insertion order. It stops and returns
// fn's error as soon as fn returns a non-nil error.
func (d *Dict) Each(fn func(key []byte, v Value) error) error {
	for _, e := range d.entries {
		if err := fn(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the entries' keys in insertion order.
func (d *Dict) Keys() [][]byte {
	keys := make([][]byte, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

// Clone returns a Dict with its own backing storage and deep-cloned values,
// independent of any buffer the original borrows from.
func (d *Dict) Clone() *Dict {
	c := NewDict()
	for _, e := range d.entries {
		c.Set(e.key, e.value.Clone())
	}
	return c
}
