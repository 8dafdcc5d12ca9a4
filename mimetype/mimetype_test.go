package mimetype

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		typ     string
		subtype string
		want    bool
	}{
		{"wildcard matches everything", Pattern{}, "image", "gif", true},
		{"exact match", Pattern{Type: "image", Subtype: "gif"}, "image", "gif", true},
		{"subtype mismatch", Pattern{Type: "image", Subtype: "gif"}, "image", "png", false},
		{"type mismatch", Pattern{Type: "image", Subtype: "gif"}, "video", "gif", false},
		{"type only", Pattern{Type: "image"}, "image", "png", true},
		{"type only mismatch", Pattern{Type: "image"}, "text", "plain", false},
		{"subtype only", Pattern{Subtype: "xml"}, "application", "xml", true},
		{"case sensitive", Pattern{Type: "image", Subtype: "gif"}, "Image", "gif", false},
		{"no substring match", Pattern{Type: "image", Subtype: "gif"}, "image", "gif2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pattern.Match(tt.typ, tt.subtype)
			if got != tt.want {
				t.Errorf("%v.Match(%q, %q) = %t; want %t",
					tt.pattern, tt.typ, tt.subtype, got, tt.want)
			}
		})
	}
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		input   string
		want    Pattern
		wantErr bool
	}{
		{input: "image/gif", want: Pattern{Type: "image", Subtype: "gif"}},
		{input: "image", want: Pattern{Type: "image"}},
		{input: "image/", want: Pattern{Type: "image"}},
		{input: "/gif", want: Pattern{Subtype: "gif"}},
		{input: "", want: Pattern{}},
		{input: "*/*", want: Pattern{}},
		{input: "*", want: Pattern{}},
		{input: "image/*", want: Pattern{Type: "image"}},
		{input: "a/b/c", wantErr: true},
		{input: "a b/c", wantErr: true},
		{input: "a/b;c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePattern(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePattern(%q) = %v; want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePattern(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePattern(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	typ, subtype, ok := Split("image/gif")
	if !ok || typ != "image" || subtype != "gif" {
		t.Errorf(`Split("image/gif") = %q, %q, %t; want "image", "gif", true`,
			typ, subtype, ok)
	}

	for _, bad := range []string{"imagegif", "image/", "/gif", "a/b/c", ""} {
		if _, _, ok := Split(bad); ok {
			t.Errorf("Split(%q) = ok; want not ok", bad)
		}
	}
}
