// Package report serializes check results to the JSON document consumed by
// the static dashboard.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/CongL3/MobileDependecyManager/domain"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Write serializes the report to path as indented JSON. The parent directory
// is created on demand and the file is written through a temp-file rename so
// the dashboard never reads a partial document.
func Write(rep *domain.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if mkdirErr := os.MkdirAll(dir, dirPerm); mkdirErr != nil {
		return fmt.Errorf("failed to create output directory %q: %w", dir, mkdirErr)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write report: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close report file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tmpName, filePerm); chmodErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set report permissions: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpName, path); renameErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move report into place: %w", renameErr)
	}

	logger.Infof("Report written to %s", path)
	return nil
}
