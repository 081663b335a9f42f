package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/efield/internal/export"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/streamline"
	"github.com/san-kum/efield/internal/summary"
)

var ErrSnapshotNotFound = errors.New("storage: snapshot not found")

const (
	metadataFile = "metadata.json"
	linesFile    = "lines.csv"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Charges   []export.Charge `json:"charges"`
	Lines     int             `json:"lines"`
	Samples   int             `json:"samples"`
	Summary   summary.Summary `json:"summary"`
}

// Save writes snap under <baseDir>/<id>/ and returns the id.
func (s *Store) Save(snap *scene.Snapshot) (string, error) {
	if err := checkID(snap.ID); err != nil {
		return "", err
	}
	dir := filepath.Join(s.baseDir, snap.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        snap.ID,
		Timestamp: snap.CreatedAt,
		Charges:   export.Charges(snap.Charges),
		Lines:     len(snap.Lines),
		Samples:   len(snap.Samples),
		Summary:   snap.Summary,
	}
	err := writeFile(filepath.Join(dir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(dir, linesFile), func(f *os.File) error {
		return export.WriteLinesCSV(f, snap.Lines)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(dir, samplesFile), func(f *os.File) error {
		return export.WriteSamplesCSV(f, snap.Samples)
	})
	if err != nil {
		return "", err
	}
	return snap.ID, nil
}

// List returns stored snapshots, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, notFound(id, err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return &meta, nil
}

func (s *Store) LoadLines(id string) ([]streamline.Line, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, id, linesFile))
	if err != nil {
		return nil, notFound(id, err)
	}
	defer f.Close()
	return export.ReadLinesCSV(f)
}

func (s *Store) LoadSamples(id string) ([]grid.Sample, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, id, samplesFile))
	if err != nil {
		return nil, notFound(id, err)
	}
	defer f.Close()
	return export.ReadSamplesCSV(f)
}

// LoadSnapshot reassembles a full snapshot from disk.
func (s *Store) LoadSnapshot(id string) (*scene.Snapshot, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	charges, err := export.ChargeSet(meta.Charges)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	lines, err := s.LoadLines(id)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(id)
	if err != nil {
		return nil, err
	}
	return &scene.Snapshot{
		ID:        meta.ID,
		CreatedAt: meta.Timestamp,
		Charges:   charges,
		Lines:     lines,
		Samples:   samples,
		Summary:   meta.Summary,
	}, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("storage: invalid snapshot id %q", id)
	}
	return nil
}

func notFound(id string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return err
}
