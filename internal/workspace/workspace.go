package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	VolumesDirName = "volumes"
	SharedCSVName  = "features.csv"
	DBName         = "features.db"
	ReportName     = "run.json"
)

// Layout is the on-disk output of a batch run.
type Layout struct {
	Root       string
	VolumesDir string
	SharedCSV  string
	DBPath     string
	ReportPath string
}

func EnsureAt(base string) (*Layout, error) {
	base = filepath.Clean(strings.TrimSpace(base))
	volumes := filepath.Join(base, VolumesDirName)
	if err := os.MkdirAll(volumes, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", volumes, err)
	}
	return &Layout{
		Root:       base,
		VolumesDir: volumes,
		SharedCSV:  filepath.Join(base, SharedCSVName),
		DBPath:     filepath.Join(base, DBName),
		ReportPath: filepath.Join(base, ReportName),
	}, nil
}

// VolumePath is the per-volume feature file for id.
func (l *Layout) VolumePath(id string) string {
	return filepath.Join(l.VolumesDir, CleanID(id)+".csv")
}

var pairtreeReplacer = strings.NewReplacer(
	":", "+",
	"/", "=",
	".", ",",
)

// CleanID maps a volume id onto a file-name safe form using pairtree rules:
// the namespace before the first period is kept, and in the rest ":" becomes
// "+", "/" becomes "=" and "." becomes ",".
func CleanID(id string) string {
	id = strings.TrimSpace(id)
	prefix, rest, ok := strings.Cut(id, ".")
	if !ok {
		return pairtreeReplacer.Replace(id)
	}
	return prefix + "." + pairtreeReplacer.Replace(rest)
}
