package services

import (
	"bytes"
	"droboapp-panel/models"
	"droboapp-panel/utils/logger"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

//go:embed content/*.html
var defaultContent embed.FS

// FragmentNames lists the informational fragments shown on the page
var FragmentNames = []string{"description", "gettingstarted", "nextsteps", "troubleshooting", "changelog"}

// tailWindow bounds how much of a log file is read to find its last lines
const tailWindow = 256 * 1024

// ContentService reads configuration, fragments and logs from disk
type ContentService struct {
	config *models.Config
	logger logger.Logger
}

// NewContentService creates a new content service
func NewContentService(cfg *models.Config, log logger.Logger) *ContentService {
	return &ContentService{
		config: cfg,
		logger: log,
	}
}

// ConfigView reports how the app is configured and what the config file says
func (s *ContentService) ConfigView() models.ConfigView {
	view := models.ConfigView{
		Mode: models.ConfigModeNone,
		Path: s.config.ConfPath,
	}

	switch {
	case fileExists(s.config.AutoConfPath):
		view.Mode = models.ConfigModeAuto
	case fileExists(s.config.ConfPath):
		view.Mode = models.ConfigModeManual
	default:
		return view
	}

	data, err := os.ReadFile(s.config.ConfPath)
	if err != nil {
		s.logger.Warnf("Failed to read %s: %v", s.config.ConfPath, err)
		view.ReadError = err.Error()
		return view
	}
	view.Content = string(data)
	return view
}

// Fragments renders every informational fragment for the app
func (s *ContentService) Fragments() map[string]template.HTML {
	identity := s.config.Identity()

	fragments := make(map[string]template.HTML, len(FragmentNames))
	for _, name := range FragmentNames {
		html, err := s.renderFragment(name, identity)
		if err != nil {
			s.logger.Errorf("Failed to render fragment %s: %v", name, err)
			continue
		}
		fragments[name] = html
	}
	return fragments
}

func (s *ContentService) renderFragment(name string, identity models.AppIdentity) (template.HTML, error) {
	src, err := s.loadFragment(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse fragment: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, identity); err != nil {
		return "", fmt.Errorf("failed to execute fragment: %w", err)
	}
	// Fragments are operator-installed files, not user input.
	return template.HTML(buf.String()), nil
}

// loadFragment prefers content_dir/<name>.html and falls back to the built-in text
func (s *ContentService) loadFragment(name string) ([]byte, error) {
	if s.config.ContentDir != "" {
		data, err := os.ReadFile(filepath.Join(s.config.ContentDir, name+".html"))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read fragment: %w", err)
		}
	}
	return defaultContent.ReadFile("content/" + name + ".html")
}

// Logs returns the tail of every configured log file
func (s *ContentService) Logs() []models.LogExcerpt {
	excerpts := make([]models.LogExcerpt, 0, len(s.config.LogFiles))
	for _, path := range s.config.LogFiles {
		excerpts = append(excerpts, s.readLog(path))
	}
	return excerpts
}

func (s *ContentService) readLog(path string) models.LogExcerpt {
	excerpt := models.LogExcerpt{
		Name: filepath.Base(path),
		Path: path,
	}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnf("Failed to open log %s: %v", path, err)
		}
		excerpt.Missing = true
		return excerpt
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		excerpt.Missing = true
		return excerpt
	}
	excerpt.Size = humanize.Bytes(uint64(info.Size()))
	excerpt.Modified = humanize.Time(info.ModTime())

	lines, err := tailLines(f, info.Size(), s.config.LogTailLines)
	if err != nil {
		s.logger.Warnf("Failed to read log %s: %v", path, err)
	}
	excerpt.Lines = lines
	return excerpt
}

// tailLines returns the last n lines found in the final tailWindow bytes of r
func tailLines(r io.ReaderAt, size int64, n int) (string, error) {
	offset := int64(0)
	if size > tailWindow {
		offset = size - tailWindow
	}
	buf := make([]byte, size-offset)
	if _, err := r.ReadAt(buf, offset); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" {
		return "", nil
	}
	lines := strings.Split(text, "\n")
	if offset > 0 && len(lines) > 1 {
		// first line is probably cut in half
		lines = lines[1:]
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n"), nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
