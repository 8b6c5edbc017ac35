// Package datamap holds the per-file mappings built while a script is
// transformed: the ordered data record, the value-to-reference lookup and
// the dynamic identifier table.
package datamap

import (
	"sort"
	"strconv"
	"strings"
)

// Entry is one key/value pair of an ordered map.
type Entry struct {
	Key   string
	Value string
}

// Ordered is an insertion-ordered string map with unique keys. It backs the
// generated data record.
type Ordered struct {
	entries []Entry
	index   map[string]int
}

// NewOrdered returns an empty ordered map.
func NewOrdered() *Ordered {
	return &Ordered{index: make(map[string]int)}
}

// PutUnique stores value under key, or under key_1, key_2, ... when key is
// taken. It returns the key actually used.
func (o *Ordered) PutUnique(key, value string) string {
	candidate := key
	for i := 1; ; i++ {
		if _, taken := o.index[candidate]; !taken {
			break
		}
		candidate = key + "_" + strconv.Itoa(i)
	}
	o.index[candidate] = len(o.entries)
	o.entries = append(o.entries, Entry{Key: candidate, Value: value})
	return candidate
}

// Get returns the value stored under key.
func (o *Ordered) Get(key string) (string, bool) {
	i, ok := o.index[key]
	if !ok {
		return "", false
	}
	return o.entries[i].Value, true
}

// Len returns the number of entries.
func (o *Ordered) Len() int { return len(o.entries) }

// Entries returns the entries in insertion order.
func (o *Ordered) Entries() []Entry {
	return append([]Entry(nil), o.entries...)
}

// Reverse maps literal values to data reference expressions. It is kept
// sorted by key length, longest first, after every insertion so substring
// lookups prefer the most specific literal.
type Reverse struct {
	entries []Entry
}

// NewReverse returns an empty reverse map.
func NewReverse() *Reverse {
	return &Reverse{}
}

// Put records value -> ref unless value is already present. The first
// writer wins.
func (r *Reverse) Put(value, ref string) {
	if _, ok := r.Get(value); !ok {
		r.entries = append(r.entries, Entry{Key: value, Value: ref})
	}
	sort.SliceStable(r.entries, func(i, j int) bool {
		return len(r.entries[i].Key) > len(r.entries[j].Key)
	})
}

// Get returns the reference recorded for value.
func (r *Reverse) Get(value string) (string, bool) {
	for _, e := range r.entries {
		if e.Key == value {
			return e.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (r *Reverse) Len() int { return len(r.entries) }

// Entries returns the entries, longest key first.
func (r *Reverse) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// MatchingSubset returns, longest first, the entries whose keys occur in text.
// Each matched key is removed from the working text once, so a shorter key
// that only appears inside an already matched longer key is not reported.
func (r *Reverse) MatchingSubset(text string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if strings.Contains(text, e.Key) {
			text = strings.Replace(text, e.Key, "", 1)
			out = append(out, e)
		}
	}
	return out
}

// DynamicIDs maps an asserted text to the generated identifier that holds its
// runtime value.
type DynamicIDs struct {
	ids   map[string]string
	names map[string]struct{}
}

// NewDynamicIDs returns an empty table.
func NewDynamicIDs() *DynamicIDs {
	return &DynamicIDs{ids: make(map[string]string), names: make(map[string]struct{})}
}

// Allocate assigns a fresh identifier derived from base (base, base_1, ...)
// to text and returns it. An identifier is never handed out twice, so a text
// asserted again gets a new one and the table points at the latest.
func (d *DynamicIDs) Allocate(text, base string) string {
	name := base
	for i := 1; ; i++ {
		if _, taken := d.names[name]; !taken {
			break
		}
		name = base + "_" + strconv.Itoa(i)
	}
	d.names[name] = struct{}{}
	d.ids[text] = name
	return name
}

// Get returns the identifier for text.
func (d *DynamicIDs) Get(text string) (string, bool) {
	name, ok := d.ids[text]
	return name, ok
}

// Has reports whether text has an identifier.
func (d *DynamicIDs) Has(text string) bool {
	_, ok := d.ids[text]
	return ok
}

// Entries returns text -> identifier pairs sorted by text, longest first, so
// whole-word lookups behave like the reverse map.
func (d *DynamicIDs) Entries() []Entry {
	out := make([]Entry, 0, len(d.ids))
	for k, v := range d.ids {
		out = append(out, Entry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Key) != len(out[j].Key) {
			return len(out[i].Key) > len(out[j].Key)
		}
		return out[i].Key < out[j].Key
	})
	return out
}
