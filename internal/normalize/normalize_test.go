package normalize

import (
	"strings"
	"testing"
)

func TestPlainLowercasesOnly(t *testing.T) {
	got := Plain{}.Normalize(`Hello, "World"! **not markdown**`)
	want := `hello, "world"! **not markdown**`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMarkdownStripsMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "emphasis and heading",
			in:   "# Title\n\nSome **bold** and *italic* text.",
			want: "title some bold and italic text.",
		},
		{
			name: "link keeps label",
			in:   "see [the docs](https://example.com) for more",
			want: "see the docs for more",
		},
		{
			name: "newlines become spaces",
			in:   "line one\nline two",
			want: "line one line two",
		},
		{
			name: "inline code keeps content",
			in:   "run `go vet` first",
			want: "run go vet first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Markdown{}.Normalize(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdownKeepsPlainCharacters(t *testing.T) {
	in := "Prices rose 42% in Q3; see figure 7."
	got := Markdown{}.Normalize(in)
	for _, frag := range []string{"42%", "q3", "figure 7."} {
		if !strings.Contains(got, frag) {
			t.Errorf("lost %q in %q", frag, got)
		}
	}
}

func TestMarkdownMalformedInputKeepsText(t *testing.T) {
	in := "**unclosed emphasis and [broken link(x"
	got := Markdown{}.Normalize(in)
	if !strings.Contains(got, "unclosed emphasis") {
		t.Errorf("malformed markup dropped text: %q", got)
	}
}

func TestMarkdownIsDeterministic(t *testing.T) {
	in := "## Repeatable *input*\n\nwith [links](http://x) and `code`"
	first := Markdown{}.Normalize(in)
	for i := 0; i < 3; i++ {
		if got := Markdown{}.Normalize(in); got != first {
			t.Fatalf("run %d differed: %q vs %q", i, got, first)
		}
	}
}
