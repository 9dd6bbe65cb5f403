package dispmodel

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// Map is an insertion ordered map. The zero value is empty and ready to use.
type Map[K ~string, V any] struct {
	om *orderedmap.OrderedMap[K, V]
}

// Pair is one entry of a Map.
type Pair[K ~string, V any] struct {
	Key   K
	Value V
}

func NewMap[K ~string, V any](pairs ...Pair[K, V]) Map[K, V] {
	var m Map[K, V]
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set inserts or replaces k. Replacing keeps the original position.
func (m *Map[K, V]) Set(k K, v V) {
	if m.om == nil {
		m.om = orderedmap.New[K, V]()
	}
	m.om.Set(k, v)
}

func (m Map[K, V]) Get(k K) (V, bool) {
	if m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(k)
}

func (m Map[K, V]) Has(k K) bool {
	_, ok := m.Get(k)
	return ok
}

func (m *Map[K, V]) Delete(k K) {
	if m.om != nil {
		m.om.Delete(k)
	}
}

func (m Map[K, V]) Len() int {
	if m.om == nil {
		return 0
	}
	return m.om.Len()
}

func (m Map[K, V]) IsZero() bool {
	return m.Len() == 0
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m Map[K, V]) Range(fn func(K, V) bool) {
	if m.om == nil {
		return
	}
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m Map[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, m.Len())
	m.Range(func(k K, v V) bool {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
		return true
	})
	return pairs
}

// Clone returns a shallow copy.
func (m Map[K, V]) Clone() Map[K, V] {
	var c Map[K, V]
	m.Range(func(k K, v V) bool {
		c.Set(k, v)
		return true
	})
	return c
}

// Merge sets every entry of other on m, other's values winning.
func (m *Map[K, V]) Merge(other Map[K, V]) {
	other.Range(func(k K, v V) bool {
		m.Set(k, v)
		return true
	})
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// deref follows alias nodes to their anchors.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// UnmarshalYAML validates keys that know how to validate themselves and
// rejects duplicate keys.
func (m *Map[K, V]) UnmarshalYAML(n *yaml.Node) error {
	*m = Map[K, V]{}
	n = deref(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return parseFailure(n, "expected a mapping, got %s", kindName(n))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		k := K(kn.Value)
		if v, ok := any(k).(validator); ok {
			if err := v.Validate(); err != nil {
				var e *Error
				if errors.As(err, &e) {
					return e.at(kn)
				}
				return err
			}
		}
		if m.Has(k) {
			return (&Error{Kind: DuplicateKey, ID: kn.Value}).at(kn)
		}
		var v V
		if err := vn.Decode(&v); err != nil {
			return withContainer(wrapDecode(vn, err), kn.Value)
		}
		m.Set(k, v)
	}
	return nil
}

func (m Map[K, V]) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.Range(func(k K, v V) bool {
		vn := &yaml.Node{}
		if err = vn.Encode(v); err != nil {
			return false
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(k)}, vn)
		return true
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Set is an insertion ordered set, written in YAML as a sequence.
type Set[K ~string] struct {
	m Map[K, struct{}]
}

func NewSet[K ~string](items ...K) Set[K] {
	var s Set[K]
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func (s *Set[K]) Add(k K) {
	s.m.Set(k, struct{}{})
}

func (s Set[K]) Has(k K) bool {
	return s.m.Has(k)
}

func (s Set[K]) Len() int {
	return s.m.Len()
}

func (s Set[K]) IsZero() bool {
	return s.m.Len() == 0
}

func (s Set[K]) Items() []K {
	return s.m.Keys()
}

func (s *Set[K]) UnmarshalYAML(n *yaml.Node) error {
	*s = Set[K]{}
	n = deref(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return parseFailure(n, "expected a sequence, got %s", kindName(n))
	}
	for _, c := range n.Content {
		c = deref(c)
		if c.Kind != yaml.ScalarNode {
			return parseFailure(c, "expected an id, got %s", kindName(c))
		}
		k := K(c.Value)
		if v, ok := any(k).(validator); ok {
			if err := v.Validate(); err != nil {
				var e *Error
				if errors.As(err, &e) {
					return e.at(c)
				}
				return err
			}
		}
		s.Add(k)
	}
	return nil
}

func (s Set[K]) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, k := range s.Items() {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(k)})
	}
	return n, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "scalar " + n.Value
	}
}

// withContainer prefixes key onto the container path of a DuplicateKey
// error as it propagates out of nested mappings.
func withContainer(err error, key string) error {
	var e *Error
	if !errors.As(err, &e) || e.Kind != DuplicateKey {
		return err
	}
	if e.Container == "" {
		e.Container = key
	} else {
		e.Container = key + "." + e.Container
	}
	return e
}

func wrapDecode(n *yaml.Node, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var te *yaml.TypeError
	if errors.As(err, &te) {
		return fromYAMLError(err)
	}
	return parseFailure(n, "%v", err)
}
