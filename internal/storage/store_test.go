package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/streamline"
	"github.com/san-kum/efield/internal/summary"
)

func testSnapshot(id string, at time.Time) *scene.Snapshot {
	return &scene.Snapshot{
		ID:        id,
		CreatedAt: at,
		Charges:   field.Dipole(6, 1e-9),
		Lines: []streamline.Line{
			{Charge: 0, Seed: field.Vec3{X: 3.5}, Points: []field.Vec3{{X: 3.5}, {X: 3.7}}},
		},
		Summary: summary.Summary{Flux: 628, CoulombForce: -2.5e-10},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snap := testSnapshot("abc", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	id, err := st.Save(snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id != "abc" {
		t.Errorf("expected id 'abc', got '%s'", id)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Lines != 1 {
		t.Errorf("expected 1 line, got %d", meta.Lines)
	}
	if len(meta.Charges) != 2 {
		t.Errorf("expected 2 charges, got %d", len(meta.Charges))
	}
	if meta.Summary.CoulombForce != -2.5e-10 {
		t.Errorf("expected force -2.5e-10, got %g", meta.Summary.CoulombForce)
	}

	lines, err := st.LoadLines(id)
	if err != nil {
		t.Fatalf("load lines failed: %v", err)
	}
	if diff := cmp.Diff(snap.Lines, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadSnapshot(t *testing.T) {
	b, err := scene.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	snap, err := b.Refresh(t.Context())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	st := New(t.TempDir())
	if _, err := st.Save(snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.LoadSnapshot(snap.ID)
	if err != nil {
		t.Fatalf("load snapshot failed: %v", err)
	}

	opts := []cmp.Option{
		cmp.AllowUnexported(field.ChargeSet{}),
		cmpopts.EquateApprox(0, 1e-9),
		cmpopts.IgnoreFields(scene.Snapshot{}, "Samples"),
	}
	if diff := cmp.Diff(snap, got, opts...); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if len(got.Samples) != len(snap.Samples) {
		t.Errorf("expected %d samples, got %d", len(snap.Samples), len(got.Samples))
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		if _, err := st.Save(testSnapshot(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "new" {
		t.Errorf("expected newest first, got %s", runs[0].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	id, err := st.Save(testSnapshot("layout", time.Now()))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "lines.csv", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, id, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load: expected ErrSnapshotNotFound, got %v", err)
	}
	if _, err := st.LoadLines("missing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("LoadLines: expected ErrSnapshotNotFound, got %v", err)
	}
	if _, err := st.LoadSnapshot("missing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("LoadSnapshot: expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestStoreRejectsBadIDs(t *testing.T) {
	st := New(t.TempDir())
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if _, err := st.Load(id); err == nil {
			t.Errorf("Load(%q): expected error", id)
		}
		if _, err := st.Save(testSnapshot(id, time.Now())); err == nil {
			t.Errorf("Save(%q): expected error", id)
		}
	}
}
