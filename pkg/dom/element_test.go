package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElementRenderEscapesAttributes(t *testing.T) {
	root := New("div")
	root.ID = "root"
	root.AddClass("a b", "a")
	root.SetStyle("padding-top", "4px")
	root.SetAttr("data-options", `{"x":"<y>"}`)

	child := New("span")
	root.AppendChild(child)

	want := `<div id="root" class="a b" style="padding-top: 4px" data-options="{&#34;x&#34;:&#34;&lt;y&gt;&#34;}"><span></span></div>`
	if diff := cmp.Diff(want, root.HTML()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestElementAppendChildReparents(t *testing.T) {
	first := New("div")
	second := New("div")
	child := New("div")

	first.AppendChild(child)
	second.AppendChild(child)

	if len(first.Children()) != 0 {
		t.Fatalf("expected child detached from first parent")
	}
	if child.Parent() != second {
		t.Fatalf("expected second as parent")
	}

	child.Remove()
	child.Remove()
	if len(second.Children()) != 0 || child.Parent() != nil {
		t.Fatalf("expected child removed")
	}
}

func TestElementStyleRemoval(t *testing.T) {
	el := New("")
	el.SetStyle("padding-left", "2px")
	el.SetStyle("padding-left", "")
	if el.Style("padding-left") != "" {
		t.Fatalf("expected style removed")
	}
	if el.Tag != "div" {
		t.Fatalf("expected default tag div, got %q", el.Tag)
	}
}

func TestElementFind(t *testing.T) {
	root := New("div")
	mid := New("div")
	leaf := New("div")
	leaf.ID = "leaf"
	root.AppendChild(mid)
	mid.AppendChild(leaf)

	if got := root.Find("leaf"); got != leaf {
		t.Fatalf("expected to find leaf, got %#v", got)
	}
	if got := root.Find("missing"); got != nil {
		t.Fatalf("expected nil for missing id")
	}
}
