/*
Copyright 2025 Whatwgurl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package whatwgurl

import (
	"encoding/json"
	"sort"

	"github.com/jplu/whatwgurl/internal/parser"
)

// Pair is one name-value tuple of a SearchParams list.
type Pair struct {
	Key   string
	Value string
}

// indexedPair carries the pair's insertion index, which breaks ties when
// sorting.
type indexedPair struct {
	key   string
	value string
	index uint32
}

// SearchParams is an ordered multimap over a URL's query component,
// serialized as application/x-www-form-urlencoded. A SearchParams may be
// owned independently, or by a URL obtained through URL.SearchParams; in
// the latter case every mutating operation re-serializes the list into the
// owner's query.
type SearchParams struct {
	list []indexedPair
	url  *URL

	onPassivelyUpdate func()
}

// NewSearchParams parses init as application/x-www-form-urlencoded, with
// one leading U+003F (?) removed first, if any.
func NewSearchParams(init string) *SearchParams {
	if init != "" && init[0] == '?' {
		init = init[1:]
	}

	p := &SearchParams{}
	p.initialize(init)
	return p
}

// NewSearchParamsFromPairs copies an ordered pair sequence.
func NewSearchParamsFromPairs(pairs []Pair) *SearchParams {
	p := &SearchParams{}
	for _, pair := range pairs {
		p.list = append(p.list, indexedPair{
			key:   pair.Key,
			value: pair.Value,
			index: uint32(len(p.list)),
		})
	}
	return p
}

// NewSearchParamsFromMap copies a record of name-value entries. Iteration
// order of a Go map is unspecified, so entries are inserted in sorted key
// order.
func NewSearchParamsFromMap(init map[string]string) *SearchParams {
	keys := make([]string, 0, len(init))
	for key := range init {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	p := &SearchParams{}
	for _, key := range keys {
		p.list = append(p.list, indexedPair{
			key:   key,
			value: init[key],
			index: uint32(len(p.list)),
		})
	}
	return p
}

// initialize sets the list to the result of parsing init.
func (p *SearchParams) initialize(init string) {
	p.list = nil
	for _, pair := range parser.ParseFormEncoded(init) {
		p.list = append(p.list, indexedPair{
			key:   pair.Key,
			value: pair.Value,
			index: uint32(len(p.list)),
		})
	}
}

// Append pushes a new name-value pair onto the list.
func (p *SearchParams) Append(name, value string) {
	p.list = append(p.list, indexedPair{
		key:   name,
		value: value,
		index: uint32(len(p.list)),
	})
	p.update()
}

// Delete removes all pairs whose name is name and reassigns insertion
// indices sequentially.
func (p *SearchParams) Delete(name string) {
	kept := p.list[:0]
	var index uint32
	for _, pair := range p.list {
		if pair.key == name {
			continue
		}
		pair.index = index
		index++
		kept = append(kept, pair)
	}
	p.list = kept
	p.update()
}

// Get returns the value of the first pair whose name is name.
func (p *SearchParams) Get(name string) (string, bool) {
	for _, pair := range p.list {
		if pair.key == name {
			return pair.value, true
		}
	}
	return "", false
}

// GetAll returns the values of all pairs whose name is name, in insertion
// order.
func (p *SearchParams) GetAll(name string) []string {
	var values []string
	for _, pair := range p.list {
		if pair.key == name {
			values = append(values, pair.value)
		}
	}
	return values
}

// Has reports whether the list contains a pair whose name is name.
func (p *SearchParams) Has(name string) bool {
	for _, pair := range p.list {
		if pair.key == name {
			return true
		}
	}
	return false
}

// Set replaces the value of the first pair whose name is name and removes
// the others, or appends a new pair when none exists.
func (p *SearchParams) Set(name, value string) {
	found := false
	kept := p.list[:0]
	var index uint32
	for _, pair := range p.list {
		if pair.key == name {
			if found {
				continue
			}
			pair.value = value
			found = true
		}
		pair.index = index
		index++
		kept = append(kept, pair)
	}
	p.list = kept

	if !found {
		p.list = append(p.list, indexedPair{
			key:   name,
			value: value,
			index: uint32(len(p.list)),
		})
	}

	p.update()
}

// Sort stably sorts the list by name. Names compare by UTF-16 code units;
// pairs with equal names keep their relative order.
func (p *SearchParams) Sort() {
	sort.SliceStable(p.list, func(i, j int) bool {
		ret := parser.CompareCodeUnits(p.list[i].key, p.list[j].key)
		if ret != 0 {
			return ret < 0
		}
		return p.list[i].index < p.list[j].index
	})

	for i := range p.list {
		p.list[i].index = uint32(i)
	}

	p.update()
}

// Size returns the number of pairs.
func (p *SearchParams) Size() int {
	return len(p.list)
}

// Pairs returns a copy of the list in order.
func (p *SearchParams) Pairs() []Pair {
	out := make([]Pair, 0, len(p.list))
	for _, pair := range p.list {
		out = append(out, Pair{Key: pair.key, Value: pair.value})
	}
	return out
}

// String serializes the list as application/x-www-form-urlencoded.
func (p *SearchParams) String() string {
	return parser.SerializeFormEncoded(p.formPairs())
}

func (p *SearchParams) formPairs() []parser.FormPair {
	out := make([]parser.FormPair, 0, len(p.list))
	for _, pair := range p.list {
		out = append(out, parser.FormPair{Key: pair.key, Value: pair.value})
	}
	return out
}

// SetOnPassivelyUpdate installs a callback fired when the list is rebuilt
// because the owning URL's query changed.
func (p *SearchParams) SetOnPassivelyUpdate(fn func()) {
	p.onPassivelyUpdate = fn
}

func (p *SearchParams) emitPassivelyUpdate() {
	if p.onPassivelyUpdate != nil {
		p.onPassivelyUpdate()
	}
}

// update re-serializes the list into the owning URL's query (the empty
// list clears it to null) and notifies the owner's passive-update hook.
func (p *SearchParams) update() {
	if p.url == nil {
		return
	}

	serialized := parser.SerializeFormEncoded(p.formPairs())
	if serialized == "" {
		p.url.record.Query.Clear()
	} else {
		p.url.record.Query.Set(serialized)
	}
	p.url.emitPassivelyUpdate()
}

// MarshalJSON implements the json.Marshaler interface, encoding the list
// as its serialization.
func (p *SearchParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface, decoding a JSON
// string into an independently owned SearchParams.
func (p *SearchParams) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = *NewSearchParams(s)
	return nil
}
