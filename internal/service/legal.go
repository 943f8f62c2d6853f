package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dormscout/dormscout/internal/legal"
	"github.com/dormscout/dormscout/internal/markdown"
)

var ErrPageNotFound = errors.New("page not found")

// LegalPage is one rendered legal document. Version comes from the
// frontmatter and should match the compiled-in current version; the
// consent gate compares against the constants, not the file.
type LegalPage struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Version string `json:"version"`
	Content string `json:"content"`
}

type LegalService struct {
	contentDir string

	mu    sync.RWMutex
	pages map[string]*LegalPage
}

func NewLegalService(contentDir string) *LegalService {
	return &LegalService{
		contentDir: filepath.Join(contentDir, "legal"),
		pages:      make(map[string]*LegalPage),
	}
}

// LoadPages parses every markdown file in the legal content directory.
func (s *LegalService) LoadPages() error {
	files, err := os.ReadDir(s.contentDir)
	if err != nil {
		return fmt.Errorf("failed to read legal directory: %w", err)
	}

	pages := make(map[string]*LegalPage)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(file.Name(), ".md")
		page, err := s.loadPage(slug)
		if err != nil {
			return fmt.Errorf("failed to load page %s: %w", slug, err)
		}
		pages[slug] = page
	}

	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()
	return nil
}

func (s *LegalService) loadPage(slug string) (*LegalPage, error) {
	content, err := os.ReadFile(filepath.Join(s.contentDir, slug+".md"))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	parser := markdown.NewParser()
	html, meta, err := parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	version, _ := meta["version"].(string)

	return &LegalPage{
		Title:   title,
		Slug:    slug,
		Version: version,
		Content: string(html),
	}, nil
}

func (s *LegalService) Page(slug string) (*LegalPage, error) {
	s.mu.RLock()
	page, ok := s.pages[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// CurrentVersions reports the legal versions the consent gate enforces.
func (s *LegalService) CurrentVersions() map[string]string {
	return map[string]string{
		"tos_version":     legal.TOSVersion,
		"privacy_version": legal.PrivacyVersion,
	}
}
