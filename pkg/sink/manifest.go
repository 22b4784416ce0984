package sink

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/mmap"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest's name inside the output directory.
const ManifestFile = "manifest.yaml"

// ErrChecksumMismatch is returned by Verify when a file changed after the run.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Manifest records what a run produced and how to check it.
type Manifest struct {
	RunID        string          `yaml:"run_id"`
	CreatedAt    time.Time       `yaml:"created_at"`
	Seed         uint64          `yaml:"seed"`
	Accounts     int             `yaml:"accounts"`
	Transactions int             `yaml:"transactions"`
	FraudRatio   float64         `yaml:"fraud_ratio"`
	Compression  string          `yaml:"compression"`
	Tables       []ManifestEntry `yaml:"tables"`
}

// ManifestEntry describes one written table file.
type ManifestEntry struct {
	Name    string `yaml:"name"`
	File    string `yaml:"file"`
	Rows    int    `yaml:"rows"`
	Bytes   int64  `yaml:"bytes"`
	BLAKE2b string `yaml:"blake2b"`
}

// Add checksums the file at path and appends it. File is stored relative
// to the manifest's directory.
func (m *Manifest) Add(name, path string, rows int) error {
	sum, size, err := ChecksumFile(path)
	if err != nil {
		return err
	}
	m.Tables = append(m.Tables, ManifestEntry{
		Name:    name,
		File:    filepath.Base(path),
		Rows:    rows,
		Bytes:   size,
		BLAKE2b: sum,
	})
	return nil
}

// WriteFile stores the manifest as YAML.
func (m *Manifest) WriteFile(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteFile.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Verify recomputes the checksum of every listed file under dir.
func (m *Manifest) Verify(dir string) error {
	for _, e := range m.Tables {
		sum, _, err := ChecksumFile(filepath.Join(dir, e.File))
		if err != nil {
			return err
		}
		if sum != e.BLAKE2b {
			return fmt.Errorf("%w: %s", ErrChecksumMismatch, e.File)
		}
	}
	return nil
}

// ChecksumFile returns the hex BLAKE2b-256 digest and size of a file,
// reading it through a memory map.
func ChecksumFile(path string) (string, int64, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("checksum %s: %w", path, err)
	}
	defer r.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", 0, err
	}
	size := int64(r.Len())
	if _, err := io.Copy(h, io.NewSectionReader(r, 0, size)); err != nil {
		return "", 0, fmt.Errorf("checksum %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}
