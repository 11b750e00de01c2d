package prefabs

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// UnknownKeyError names a key the target type has no field for.
type UnknownKeyError struct {
	Path       string
	Line       int
	Suggestion string
}

func (e *UnknownKeyError) Error() string {
	msg := fmt.Sprintf("unknown key %q at line %d", e.Path, e.Line)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// checkKeys walks the mapping nodes under root against the yaml fields of
// target and reports every key without a matching field.
func checkKeys(root *yaml.Node, target any) error {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	var errs []error
	walkKeys(node, reflect.TypeOf(target), "", &errs)
	return errors.Join(errs...)
}

func walkKeys(node *yaml.Node, t reflect.Type, prefix string, errs *[]error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || node.Kind != yaml.MappingNode {
		return
	}

	fields := yamlFields(t)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + key.Value
		}

		ft, ok := fields[key.Value]
		if !ok {
			*errs = append(*errs, &UnknownKeyError{Path: path, Line: key.Line, Suggestion: closest(key.Value, fields)})
			continue
		}
		walkKeys(value, ft, path, errs)
	}
}

// yamlFields maps the yaml key of every exported field to its type, using the
// same naming rule as yaml.v3: the tag name, else the lowercased field name.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	out := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.ToLower(f.Name)
		if tag, ok := f.Tag.Lookup("yaml"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out[name] = f.Type
	}
	return out
}

func closest(key string, fields map[string]reflect.Type) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestDist := "", -1
	for _, name := range names {
		d := levenshtein.ComputeDistance(key, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(key)/3) {
		return ""
	}
	return best
}
