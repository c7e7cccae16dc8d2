package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.json *.csv *.tmx
var LevelsFS embed.FS

// Load reads a level by file name. A file of the same name under levels/ on
// disk wins over the embedded copy so levels can be edited without a rebuild.
func Load(name string) ([]TilePlacement, error) {
	clean := cleanLevelPath(name)
	if _, err := os.Stat(diskLevelPath(clean)); err == nil {
		return LoadLevelFromFS(os.DirFS("levels"), clean)
	}
	return LoadLevelFromFS(LevelsFS, clean)
}

// LoadLevelFromFS decodes the level by extension: .json, .csv or .tmx.
func LoadLevelFromFS(fsys fs.FS, name string) ([]TilePlacement, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".tmx":
		return LoadTMX(fsys, name)
	case ".csv":
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
		if IsGridName(name) {
			return DecodeCSVGrid(data)
		}
		return DecodeCSVRows(data)
	default:
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
		placements, err := DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("levels: decode %s: %w", name, err)
		}
		return placements, nil
	}
}

// Names lists the embedded levels.
func Names() []string {
	var names []string
	_ = fs.WalkDir(LevelsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".json", ".csv", ".tmx":
			names = append(names, p)
		}
		return nil
	})
	return names
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".json"
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}
