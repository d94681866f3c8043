package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"playpulse/internal/errors"
)

// FileName is the download name of r in format f
func FileName(r *Report, f Format) string {
	return fmt.Sprintf("google-play-store-%s-report-%s.%s", r.Type, r.GeneratedAt.Format("20060102-150405"), f)
}

// Write renders r and stores it under dir, returning the written path
func Write(dir string, r *Report, f Format) (string, error) {
	content, err := Render(r, f)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create report directory %s", dir)
	}

	path := filepath.Join(dir, FileName(r, f))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write report %s", path)
	}

	log.Printf("[Report] Wrote %s report (%s, %d bytes) to %s", r.Type, f, len(content), path)
	return path, nil
}
