// # internal/scanner/scanner.go
package scanner

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	apperrors "includecost/internal/errors"
)

// LoadedFile is one (name, contents) pair handed to the engine. Names are
// bare file names: the engine works in one flat namespace.
type LoadedFile struct {
	Name   string
	Data   string
	Source bool
}

type Scanner struct {
	sourceExts []string
	headerExts []string
	excludes   []glob.Glob
}

func New(sourceExts, headerExts, excludePatterns []string) (*Scanner, error) {
	excludes := make([]glob.Glob, 0, len(excludePatterns))
	for _, p := range excludePatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, apperrors.AddContext(
				apperrors.Wrap(err, apperrors.CodeValidation, "invalid exclude pattern"),
				"pattern", p)
		}
		excludes = append(excludes, g)
	}
	return &Scanner{
		sourceExts: sourceExts,
		headerExts: headerExts,
		excludes:   excludes,
	}, nil
}

// Scan reads every recognized file directly under dir, sorted by name.
// Subdirectories are not descended into; files with unrecognized extensions
// or matching an exclude pattern are silently skipped. An unreadable
// directory or file is fatal.
func (s *Scanner) Scan(dir string) ([]LoadedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.AddContext(
			apperrors.Wrap(err, apperrors.CodeNotFound, "unreadable directory"),
			apperrors.CtxPath, dir)
	}

	var files []LoadedFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		isSource := s.hasExt(name, s.sourceExts)
		if !isSource && !s.hasExt(name, s.headerExts) {
			continue
		}
		if s.excluded(name) {
			slog.Debug("excluded by pattern", "file", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, apperrors.AddContext(
				apperrors.Wrap(err, apperrors.CodeNotFound, "unreadable file"),
				apperrors.CtxFile, name)
		}

		files = append(files, LoadedFile{
			Name:   name,
			Data:   string(data),
			Source: isSource,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Recognizes reports whether the file name carries a source or header
// extension. Watch mode uses it to ignore unrelated churn.
func (s *Scanner) Recognizes(name string) bool {
	return s.hasExt(name, s.sourceExts) || s.hasExt(name, s.headerExts)
}

func (s *Scanner) hasExt(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (s *Scanner) excluded(name string) bool {
	for _, g := range s.excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}
