package flowexpr

import (
	"reflect"
	"regexp"
)

// variablePrefix prefixes rewritten context variables inside the sandbox.
// No library name starts with it, and distinct identifiers rewrite to
// distinct names, so the scheme is collision-free.
const variablePrefix = "var_"

// variablePattern matches a sigil-prefixed identifier: $ followed by a
// letter or underscore, then letters, digits, or underscores.
var variablePattern = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// resolveVariables rewrites every $name reference in text to a
// sandbox-legal name and builds the binding set for one evaluator
// invocation. Each distinct identifier is read from vars exactly once;
// missing identifiers bind to nil. Mapping values are normalized so
// dotted field access works in the sandbox.
func resolveVariables(text string, vars map[string]any) (string, map[string]any) {
	bindings := make(map[string]any)
	rewritten := variablePattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1:]
		bound := variablePrefix + name
		if _, seen := bindings[bound]; !seen {
			bindings[bound] = normalizeValue(vars[name])
		}
		return bound
	})
	return rewritten, bindings
}

// normalizeValue converts mapping values to map[string]any recursively
// so expressions can access their keys as attributes ($user.name). Other
// values pass through unchanged.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	}

	// Other map types (map[string]string, yaml's map[any]any) flatten to
	// map[string]any as well. Non-string keys are rendered with Stringify.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		out := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			key, ok := k.Interface().(string)
			if !ok {
				key = Stringify(k.Interface())
			}
			out[key] = normalizeValue(rv.MapIndex(k).Interface())
		}
		return out
	}

	return v
}
