package dispmodel

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeStruct decodes a mapping into the struct pointed to by dst, field by
// field, rejecting keys that no yaml tag names.
func decodeStruct(n *yaml.Node, what string, dst interface{}) error {
	n = deref(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return parseFailure(n, "%s: expected a mapping, got %s", what, kindName(n))
	}

	rv := reflect.ValueOf(dst).Elem()
	fields := yamlFields(rv.Type())
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		idx, ok := fields[kn.Value]
		if !ok {
			return parseFailure(kn, "unknown field %q in %s", kn.Value, what)
		}
		if _, dup := seen[kn.Value]; dup {
			return (&Error{Kind: DuplicateKey, ID: kn.Value}).at(kn)
		}
		seen[kn.Value] = struct{}{}

		f := rv.Field(idx)
		if err := vn.Decode(f.Addr().Interface()); err != nil {
			return withContainer(wrapDecode(vn, err), kn.Value)
		}
	}
	return nil
}

func yamlFields(t reflect.Type) map[string]int {
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = i
	}
	return fields
}
