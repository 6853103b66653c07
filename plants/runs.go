package plants

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RunNumber parses the run number of a {crop}_{number} folder name.
//
// The number is the part between the first and second underscore, if any.
func RunNumber(crop, name string) (int, bool) {
	if !strings.HasPrefix(name, crop+"_") {
		return 0, false
	}
	parts := strings.Split(name, "_")
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextRunFolder creates the folder for the next simulation run of a crop
// type inside root, and returns its absolute path.
//
// The run number is one more than the highest number among the existing
// {crop}_{number} folders, where the highest number is never less than 1.
// Folder names without a numeric run number are ignored.
func NextRunFolder(root, crop string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.Wrap(err, "next run folder")
	}
	highest := 1
	for _, entry := range entries {
		if !isDirEntry(root, entry) {
			continue
		}
		if n, ok := RunNumber(crop, entry.Name()); ok && n > highest {
			highest = n
		}
	}
	folder, err := filepath.Abs(filepath.Join(root, fmt.Sprintf("%s_%03d", crop, highest+1)))
	if err != nil {
		return "", errors.Wrap(err, "next run folder")
	}
	if err := os.Mkdir(folder, 0755); err != nil {
		return "", errors.Wrap(err, "next run folder")
	}
	return folder, nil
}

func isDirEntry(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(root, entry.Name()))
		return err == nil && info.IsDir()
	}
	return false
}
