package animset

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// DiskDir holds on-disk overrides of the embedded sets and scripts. Files
// found there win over the embedded copies, which is what hot reload edits.
var DiskDir = "animsets"

//go:embed data/*.yaml
var DataFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a set or config file, preferring the disk override.
func Load(name string) ([]byte, error) {
	clean := cleanDataPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return DataFS.ReadFile("data/" + clean)
}

// LoadScript reads a listener script, preferring the disk override.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanDataPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	for _, prefix := range []string{DiskDir + "/", "data/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
		}
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, DiskDir+"/"); ok {
		s = after
	}
	s = strings.TrimPrefix(s, "scripts/")
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
