package flowexpr

import (
	"context"
	"testing"
)

func TestInterpolate(t *testing.T) {
	engine := New()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		vars map[string]any
		want string
	}{
		{
			name: "no literals pass through",
			text: "$x + 1",
			want: "$x + 1",
		},
		{
			name: "literal without sites passes through",
			text: `"plain" + $x`,
			want: `"plain" + $x`,
		},
		{
			name: "single site",
			text: `"a {1+1} b"`,
			want: `"a 2 b"`,
		},
		{
			name: "sites replaced in order",
			text: `"{1}-{2}" + "{3}"`,
			want: `"1-2" + "3"`,
		},
		{
			name: "doubled braces collapse",
			text: `"{{literal}}"`,
			want: `"{literal}"`,
		},
		{
			name: "doubled braces next to a site",
			text: `"{{ {1+1} }}"`,
			want: `"{ 2 }"`,
		},
		{
			name: "site value with variable",
			text: `"hi {$name}"`,
			vars: map[string]any{"name": "Ada"},
			want: `"hi Ada"`,
		},
		{
			name: "nested literal inside site",
			text: `"x {"{1+1}"} y"`,
			want: `"x 2 y"`,
		},
		{
			name: "escaped quote does not end literal",
			text: `"a \" {1+1}"`,
			want: `"a \" 2"`,
		},
		{
			name: "unterminated quote is plain text",
			text: `3 > 2 ? "yes" : 'no`,
			want: `3 > 2 ? "yes" : 'no`,
		},
		{
			name: "empty site is literal text",
			text: `"a {} b"`,
			want: `"a {} b"`,
		},
		{
			name: "unmatched open brace is literal text",
			text: `"a { b"`,
			want: `"a { b"`,
		},
		{
			name: "quote in site value is escaped",
			text: `"say {$q}"`,
			vars: map[string]any{"q": `"hi"`},
			want: `"say \"hi\""`,
		},
		{
			name: "nil value renders empty",
			text: `"[{$gone}]"`,
			vars: map[string]any{},
			want: `"[]"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.interpolate(ctx, tt.text, tt.vars, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("interpolate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestInterpolate_InnerFailureWrapped(t *testing.T) {
	engine := New()

	_, err := engine.interpolate(context.Background(), `"bad {1 % 0}"`, nil, 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	ierr, ok := err.(*InterpolationError)
	if !ok {
		t.Fatalf("expected *InterpolationError, got %T", err)
	}
	if ierr.Inner != "1 % 0" {
		t.Errorf("Inner = %q, want %q", ierr.Inner, "1 % 0")
	}
}

func TestScanSite(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		pos       int
		wantInner string
		wantOK    bool
	}{
		{"simple site", "{1+1}", 0, "1+1", true},
		{"site with quoted string", `{"a}b"}`, 0, `"a}b"`, true},
		{"nested braces", "{ {'k': 1} }", 0, " {'k': 1} ", true},
		{"empty site", "{}", 0, "", false},
		{"unmatched", "{1+1", 0, "", false},
		{"closing escape pair", "{x}}", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, _, ok := scanSite(tt.text, tt.pos)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && inner != tt.wantInner {
				t.Errorf("inner = %q, want %q", inner, tt.wantInner)
			}
		})
	}
}

func TestEscapeQuotes(t *testing.T) {
	got := escapeQuotes(`he said "hi" and 'bye'`)
	want := `he said \"hi\" and \'bye\'`
	if got != want {
		t.Errorf("escapeQuotes = %q, want %q", got, want)
	}
}
