package datasource

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExtractMember copies one member of a zip archive into destDir and returns the
// written path. Only the base name of the member is used for the destination.
func ExtractMember(archivePath, member, destDir string) (string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != member {
			continue
		}
		return writeMember(file, filepath.Join(destDir, filepath.Base(member)))
	}

	return "", fmt.Errorf("%s in %s: %w", member, archivePath, ErrMemberNotFound)
}

func writeMember(file *zip.File, target string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open archive member %s: %w", file.Name, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return target, nil
}
