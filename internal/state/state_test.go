package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/types"
)

// === FocusState Tests ===

func TestNewFocusState(t *testing.T) {
	fs := NewFocusState()

	if fs.Current() != types.NoNode {
		t.Errorf("Current() = %d, want NoNode", fs.Current())
	}
	if len(fs.LastFocusedEntries()) != 0 {
		t.Error("LastFocusedEntries should be empty")
	}
}

func TestSetLastFocused_Chain(t *testing.T) {
	fs := NewFocusState()

	fs.SetLastFocused(7, 1, 2, 3)

	for _, c := range []types.ContainerID{1, 2, 3} {
		id, ok := fs.LastFocused(c)
		if !ok || id != 7 {
			t.Errorf("LastFocused(%d) = (%d, %v), want (7, true)", c, id, ok)
		}
	}
	if _, ok := fs.LastFocused(4); ok {
		t.Error("LastFocused(4) should be unset")
	}
}

func TestForget_PrunesEveryReference(t *testing.T) {
	fs := NewFocusState()
	fs.SetCurrent(5)
	fs.SetLastFocused(5, 1, 2)
	fs.SetLastFocused(6, 3)

	wasCurrent := fs.Forget(5)

	if !wasCurrent {
		t.Error("Forget should report the node was current")
	}
	if fs.Current() != types.NoNode {
		t.Errorf("Current() = %d, want NoNode", fs.Current())
	}
	want := map[types.ContainerID]types.NodeID{3: 6}
	if diff := cmp.Diff(want, fs.LastFocusedEntries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestForget_NotCurrent(t *testing.T) {
	fs := NewFocusState()
	fs.SetCurrent(1)

	if fs.Forget(2) {
		t.Error("Forget of a non-current node should return false")
	}
	if fs.Current() != 1 {
		t.Error("current should be untouched")
	}
}

func TestReset(t *testing.T) {
	fs := NewFocusState()
	fs.SetCurrent(1)
	fs.SetLastFocused(1, 1)

	fs.Reset()

	if fs.Current() != types.NoNode || len(fs.LastFocusedEntries()) != 0 {
		t.Error("Reset should clear everything")
	}
}

// === Persistence Tests ===

func makeScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.NewScene()
	menu, err := s.AddContainer("menu", types.NoContainer, types.Policy{})
	if err != nil {
		t.Fatal(err)
	}
	for _, spec := range []scene.NodeSpec{
		{Name: "a", Container: menu},
		{Name: "b", Container: menu},
		{Name: "c"},
	} {
		if _, err := s.AddNode(spec); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestCaptureRestore_RoundTrip(t *testing.T) {
	s := makeScene(t)
	b, _ := s.NodeByName("b")
	menu, _ := s.ContainerByName("menu")

	fs := NewFocusState()
	fs.SetCurrent(b.ID)
	fs.SetLastFocused(b.ID, menu.ID)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "state.json")
	if err := fs.Capture(s).SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadStateFrom(path)
	if err != nil {
		t.Fatalf("LoadStateFrom: %v", err)
	}
	if loaded.Current != "b" {
		t.Errorf("Current = %q, want %q", loaded.Current, "b")
	}

	restored := NewFocusState()
	dropped := restored.Restore(s, loaded)
	if len(dropped) != 0 {
		t.Errorf("dropped = %v, want none", dropped)
	}
	if restored.Current() != b.ID {
		t.Errorf("Current() = %d, want %d", restored.Current(), b.ID)
	}
	if id, _ := restored.LastFocused(menu.ID); id != b.ID {
		t.Errorf("LastFocused(menu) = %d, want %d", id, b.ID)
	}
}

func TestRestore_DropsUnknownNames(t *testing.T) {
	s := makeScene(t)

	snap := NewSnapshot()
	snap.Current = "ghost"
	snap.LastFocused["menu"] = "c" // c is not inside menu
	snap.LastFocused["nowhere"] = "a"

	fs := NewFocusState()
	dropped := fs.Restore(s, snap)

	want := []string{"ghost", "menu/c", "nowhere"}
	if diff := cmp.Diff(want, dropped); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}
	if fs.Current() != types.NoNode {
		t.Error("unknown current should not be restored")
	}
}

func TestLoadStateFrom_Missing(t *testing.T) {
	snap, err := LoadStateFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadStateFrom: %v", err)
	}
	if snap.Version != StateVersion {
		t.Errorf("Version = %d, want %d", snap.Version, StateVersion)
	}
	if snap.LastFocused == nil {
		t.Error("LastFocused should be initialized")
	}
}

func TestLoadStateFrom_MigratesVersionZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"current":"a"}`), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadStateFrom(path)
	if err != nil {
		t.Fatalf("LoadStateFrom: %v", err)
	}
	if snap.Version != StateVersion {
		t.Errorf("Version = %d, want %d", snap.Version, StateVersion)
	}
	if snap.Current != "a" {
		t.Errorf("Current = %q, want %q", snap.Current, "a")
	}
	if snap.LastFocused == nil {
		t.Error("LastFocused should be initialized after migration")
	}
}

func TestLoadStateFrom_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadStateFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveTo_NoTempFileLeft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	if err := NewSnapshot().SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}
