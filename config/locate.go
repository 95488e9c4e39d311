package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// RuleDirName is the directory rule files live in under each search root.
const RuleDirName = "grc"

// ErrRuleFileNotFound is returned by Locate when no search directory holds the file.
var ErrRuleFileNotFound = errors.New("rule file not found")

// SearchDirs returns the rule file directories in lookup order.
func SearchDirs() []string {
	dirs := []string{
		filepath.Join(xdg.ConfigHome, RuleDirName),
		filepath.Join(xdg.DataHome, RuleDirName),
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+RuleDirName))
	}
	return append(dirs,
		"/usr/local/share/grc",
		"/usr/share/grc",
	)
}

// Locate returns the first dir/name that exists and is not a directory. A name
// containing a path separator is checked as given before the search.
func Locate(name string, dirs []string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) && isFile(name) {
		return name, nil
	}

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrRuleFileNotFound, name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
