// Package dict provides the per-stream key dictionary.
//
// Ids are assigned in first-seen order starting at 1 and are never
// reassigned. The order in which entries are flushed is an explicit
// part of the wire contract, see [Order].
package dict

import (
	"fmt"
	"slices"
	"strings"
)

// Order selects the order of dictionary entries at flush time.
type Order int

const (
	// OrderKey flushes entries sorted bytewise by key.
	OrderKey Order = iota
	// OrderID flushes entries in id (assignment) order.
	OrderID
)

func (o Order) String() string {
	switch o {
	case OrderKey:
		return "key"
	case OrderID:
		return "id"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder parses "key" or "id".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "key", "":
		return OrderKey, nil
	case "id":
		return OrderID, nil
	default:
		return 0, fmt.Errorf("unknown dictionary order %q", s)
	}
}

func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Order) UnmarshalText(d []byte) error {
	p, err := ParseOrder(string(d))
	if err != nil {
		return err
	}
	*o = p
	return nil
}

// Entry is a (key, id) pair.
type Entry struct {
	Key string
	ID  int
}

// Dictionary maps keys to ids.
type Dictionary struct {
	ids  map[string]int
	keys []string // keys[id-1]
}

func New() *Dictionary {
	return &Dictionary{ids: map[string]int{}}
}

// GetOrAssign returns the id of key, assigning the next id if key is new.
func (d *Dictionary) GetOrAssign(key string) int {
	if id, ok := d.ids[key]; ok {
		return id
	}
	d.keys = append(d.keys, key)
	id := len(d.keys)
	d.ids[key] = id
	return id
}

// Lookup returns the id of key, if assigned.
func (d *Dictionary) Lookup(key string) (int, bool) {
	id, ok := d.ids[key]
	return id, ok
}

// Key returns the key with the given id.
func (d *Dictionary) Key(id int) (string, bool) {
	if id < 1 || id > len(d.keys) {
		return "", false
	}
	return d.keys[id-1], true
}

func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Mark records the current size of the dictionary.
type Mark int

func (d *Dictionary) Mark() Mark {
	return Mark(len(d.keys))
}

// Rollback forgets every key assigned after m. It must only be used for
// ids which were never written out.
func (d *Dictionary) Rollback(m Mark) {
	n := int(m)
	if n < 0 || n >= len(d.keys) {
		return
	}
	for _, k := range d.keys[n:] {
		delete(d.ids, k)
	}
	clear(d.keys[n:])
	d.keys = d.keys[:n]
}

// Entries returns every entry in the given order.
func (d *Dictionary) Entries(o Order) []Entry {
	res := make([]Entry, len(d.keys))
	for i, k := range d.keys {
		res[i] = Entry{Key: k, ID: i + 1}
	}
	if o == OrderKey {
		slices.SortFunc(res, func(a, b Entry) int {
			return strings.Compare(a.Key, b.Key)
		})
	}
	return res
}

// Clone returns a deep copy of d.
func (d *Dictionary) Clone() *Dictionary {
	c := &Dictionary{
		ids:  make(map[string]int, len(d.ids)),
		keys: slices.Clone(d.keys),
	}
	for k, id := range d.ids {
		c.ids[k] = id
	}
	return c
}
