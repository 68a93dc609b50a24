package tape

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Ext is the script file extension.
const Ext = ".tape"

// File is a saved script.
type File struct {
	Name     string // without extension
	Path     string
	Size     int64
	Modified time.Time
}

// Dir returns the XDG data directory scripts are saved in, creating it.
func Dir() (string, error) {
	// xdg.DataFile creates the parent of the path it is given
	path, err := xdg.DataFile(filepath.Join("folio", "tapes", "x"+Ext))
	if err != nil {
		return "", fmt.Errorf("failed to get tape directory: %w", err)
	}
	return filepath.Dir(path), nil
}

// List returns the scripts in dir, newest first. A missing directory has
// no scripts.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tape directory: %w", err)
	}

	var files []File
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:     strings.TrimSuffix(name, Ext),
			Path:     filepath.Join(dir, name),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// Resolve finds a script by path, then by name in dir with or without the
// extension.
func Resolve(dir, name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	// names never reach outside dir
	base := filepath.Base(name)
	for _, candidate := range []string{base, base + Ext} {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("tape not found: %s", name)
}

// Delete removes the named script from dir.
func Delete(dir, name string) error {
	base := strings.TrimSuffix(filepath.Base(name), Ext)
	if err := os.Remove(filepath.Join(dir, base+Ext)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("tape not found: %s", name)
		}
		return fmt.Errorf("failed to delete tape: %w", err)
	}
	return nil
}
