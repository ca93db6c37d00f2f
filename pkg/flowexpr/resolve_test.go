package flowexpr

import (
	"reflect"
	"testing"
)

func TestResolveVariables(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		vars         map[string]any
		wantText     string
		wantBindings map[string]any
	}{
		{
			name:         "no variables",
			text:         "1 + 1",
			vars:         map[string]any{"x": 1},
			wantText:     "1 + 1",
			wantBindings: map[string]any{},
		},
		{
			name:         "single variable",
			text:         "$count + 1",
			vars:         map[string]any{"count": 2},
			wantText:     "var_count + 1",
			wantBindings: map[string]any{"var_count": 2},
		},
		{
			name:         "repeated variable binds once",
			text:         "$x + $x",
			vars:         map[string]any{"x": 3},
			wantText:     "var_x + var_x",
			wantBindings: map[string]any{"var_x": 3},
		},
		{
			name:         "missing variable binds nil",
			text:         "$gone",
			vars:         map[string]any{},
			wantText:     "var_gone",
			wantBindings: map[string]any{"var_gone": nil},
		},
		{
			name:     "dotted access keeps suffix",
			text:     "$speaker.name",
			vars:     map[string]any{"speaker": map[string]any{"name": "Bob"}},
			wantText: "var_speaker.name",
			wantBindings: map[string]any{
				"var_speaker": map[string]any{"name": "Bob"},
			},
		},
		{
			name:     "string-keyed map flattens",
			text:     "$cfg.host",
			vars:     map[string]any{"cfg": map[string]string{"host": "a"}},
			wantText: "var_cfg.host",
			wantBindings: map[string]any{
				"var_cfg": map[string]any{"host": "a"},
			},
		},
		{
			name:         "sigil without identifier is untouched",
			text:         "$ + 1",
			vars:         nil,
			wantText:     "$ + 1",
			wantBindings: map[string]any{},
		},
		{
			name:         "identifier cannot start with digit",
			text:         "$1x",
			vars:         nil,
			wantText:     "$1x",
			wantBindings: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotBindings := resolveVariables(tt.text, tt.vars)
			if gotText != tt.wantText {
				t.Errorf("text = %q, want %q", gotText, tt.wantText)
			}
			if !reflect.DeepEqual(gotBindings, tt.wantBindings) {
				t.Errorf("bindings = %#v, want %#v", gotBindings, tt.wantBindings)
			}
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	t.Run("nested maps flatten recursively", func(t *testing.T) {
		in := map[string]any{
			"profile": map[string]string{"city": "Oslo"},
			"tags":    []any{map[string]string{"k": "v"}},
		}
		got := normalizeValue(in)

		want := map[string]any{
			"profile": map[string]any{"city": "Oslo"},
			"tags":    []any{map[string]any{"k": "v"}},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("normalizeValue = %#v, want %#v", got, want)
		}
	})

	t.Run("interface-keyed map flattens", func(t *testing.T) {
		in := map[any]any{"name": "Bob", 7: "seven"}
		got := normalizeValue(in)

		want := map[string]any{"name": "Bob", "7": "seven"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("normalizeValue = %#v, want %#v", got, want)
		}
	})

	t.Run("scalars pass through", func(t *testing.T) {
		for _, v := range []any{nil, 1, "s", true, 2.5} {
			if got := normalizeValue(v); got != v {
				t.Errorf("normalizeValue(%v) = %v, want unchanged", v, got)
			}
		}
	})
}
