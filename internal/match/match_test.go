package match

import (
	"testing"

	"github.com/gitpan/XML-Parser-GlobEvents/internal/pattern"
)

func registry(t *testing.T, wantsTree bool, sources ...string) *Registry {
	t.Helper()
	r := &Registry{}
	for i, src := range sources {
		p, err := pattern.Compile(src, i)
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", src, err)
		}
		r.Add(&Entry{Pattern: p, ID: i, WantsTree: wantsTree})
	}
	return r
}

// walk advances the root state set through the given element names.
func walk(a Active, path ...string) Active {
	for _, name := range path {
		a = a.Step(name)
	}
	return a
}

func matchedSources(a Active) []string {
	var out []string
	for _, e := range a.Matched() {
		out = append(out, e.Pattern.Source)
	}
	return out
}

func TestMatching(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    []string
		want    bool
	}{
		{name: "unanchored suffix", pattern: "foo", path: []string{"alpha", "foo"}, want: true},
		{name: "unanchored two segments", pattern: "alpha/foo", path: []string{"root", "alpha", "foo"}, want: true},
		{name: "unanchored wrong suffix", pattern: "alpha/foo", path: []string{"alpha", "bar"}, want: false},
		{name: "anchored full path", pattern: "/alpha/foo", path: []string{"alpha", "foo"}, want: true},
		{name: "anchored below root", pattern: "/alpha/foo", path: []string{"root", "alpha", "foo"}, want: false},
		{name: "descendant direct child", pattern: "alpha//foo", path: []string{"alpha", "foo"}, want: true},
		{name: "descendant deep child", pattern: "alpha//foo", path: []string{"alpha", "beta", "foo"}, want: true},
		{name: "descendant wrong root", pattern: "alpha//foo", path: []string{"root", "foo"}, want: false},
		{name: "single wildcard", pattern: "alpha/*", path: []string{"alpha", "anything"}, want: true},
		{name: "single wildcard depth", pattern: "alpha/*", path: []string{"alpha", "beta", "gamma"}, want: false},
		{name: "lone wildcard matches any element", pattern: "*", path: []string{"deep", "inner"}, want: true},
		{name: "descendant then wildcard", pattern: "alpha//*", path: []string{"alpha", "b", "c"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := registry(t, true, tt.pattern)
			got := len(walk(r.Root(), tt.path...).Matched()) > 0
			if got != tt.want {
				t.Errorf("pattern %q against %v: matched = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchedSpecificityOrder(t *testing.T) {
	r := registry(t, true, "foo", "alpha/foo", "/alpha/foo")
	got := matchedSources(walk(r.Root(), "alpha", "foo"))
	want := []string{"/alpha/foo", "alpha/foo", "foo"}
	if len(got) != len(want) {
		t.Fatalf("matched = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matched = %v, want %v", got, want)
		}
	}
}

func TestPending(t *testing.T) {
	r := registry(t, true, "alpha/beta/foo")

	a := walk(r.Root(), "alpha")
	if !a.Pending() {
		t.Fatal("after <alpha>: pending = false, want true")
	}

	a = walk(r.Root(), "other")
	// The unanchored pattern keeps its leading descendant segment viable
	// everywhere, so interest never dies along a path.
	if !a.Pending() {
		t.Fatal("after <other>: pending = false, want true")
	}

	anchored := registry(t, true, "/alpha/foo")
	if walk(anchored.Root(), "other").Pending() {
		t.Fatal("anchored pattern pending under wrong root, want false")
	}
	if !walk(anchored.Root(), "alpha").Pending() {
		t.Fatal("anchored pattern not pending under matching root")
	}
	if walk(anchored.Root(), "alpha", "bar").Pending() {
		t.Fatal("anchored pattern pending after mismatched child, want false")
	}
}

func TestPendingIgnoresOpenOnlyPatterns(t *testing.T) {
	r := registry(t, false, "alpha/beta")
	a := walk(r.Root(), "alpha")
	if a.Pending() {
		t.Fatal("open-only pattern reported pending, want false")
	}
	// It still matches for open-time notification purposes.
	if len(walk(r.Root(), "alpha", "beta").Matched()) != 1 {
		t.Fatal("open-only pattern did not match its path")
	}
}

func TestAcceptedStateDoesNotExtend(t *testing.T) {
	r := registry(t, true, "/alpha")
	a := walk(r.Root(), "alpha")
	if len(a.Matched()) != 1 {
		t.Fatal("anchored /alpha did not match <alpha>")
	}
	if a.Pending() {
		t.Fatal("fully matched anchored pattern still pending, want false")
	}
	if len(walk(a, "alpha").Matched()) != 0 {
		t.Fatal("/alpha matched nested <alpha>, want no match")
	}
}
