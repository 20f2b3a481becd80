package dialog

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestList_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.nb")
	touch(t, root, "a.nb")
	touch(t, root, "readme.md")
	touch(t, root, "sub/c.nb")

	p := &Picker{Ext: ".nb"}
	got, err := p.List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a.nb", "b.nb", filepath.Join("sub", "c.nb")}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestList_SkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, root, ".cache/x.nb")
	touch(t, root, "visible.nb")

	p := &Picker{Ext: ".nb"}
	got, err := p.List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != "visible.nb" {
		t.Errorf("List = %v, want [visible.nb]", got)
	}
}

func TestList_DepthCap(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "one/a.nb")
	touch(t, root, "one/two/b.nb")

	p := &Picker{Ext: ".nb", MaxDepth: 1}
	got, err := p.List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join("one", "a.nb") {
		t.Errorf("List = %v, want only the depth-1 notebook", got)
	}
}

func TestList_MissingRoot(t *testing.T) {
	p := &Picker{Ext: ".nb"}
	if _, err := p.List(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestList_RootIsFile(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.nb")

	p := &Picker{Ext: ".nb"}
	if _, err := p.List(filepath.Join(root, "a.nb")); err == nil {
		t.Error("expected error for non-directory root")
	}
}
