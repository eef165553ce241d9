// Package config loads the deck manifest: per-slide metadata the exporters
// need but cannot scrape from the rendered page.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/ports"
)

// Manifest mirrors the deck manifest YAML file.
type Manifest struct {
	Slides []SlideEntry `yaml:"slides"`
}

// SlideEntry is one slide's metadata in the manifest.
type SlideEntry struct {
	Title       string         `yaml:"title"`
	TitleLevel  int            `yaml:"titleLevel"`
	Note        string         `yaml:"note"`
	Frontmatter map[string]any `yaml:"frontmatter"`
}

// LoadManifest reads and parses a deck manifest. Slide indexes follow the
// manifest order, starting at 1.
func LoadManifest(fs ports.FileSystem, path string) ([]deck.Slide, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML into the deck model.
func ParseManifest(data []byte) ([]deck.Slide, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Slides) == 0 {
		return nil, fmt.Errorf("manifest lists no slides")
	}

	slides := make([]deck.Slide, 0, len(m.Slides))
	for i, entry := range m.Slides {
		level := entry.TitleLevel
		if level < 1 {
			level = 1
		}
		slides = append(slides, deck.Slide{
			Index:       i + 1,
			Title:       entry.Title,
			TitleLevel:  level,
			Note:        entry.Note,
			Frontmatter: entry.Frontmatter,
		})
	}
	return slides, nil
}

// PlaceholderSlides builds an untitled deck of the given size, for exports
// that run without a manifest.
func PlaceholderSlides(count int) []deck.Slide {
	slides := make([]deck.Slide, 0, count)
	for i := 1; i <= count; i++ {
		slides = append(slides, deck.Slide{Index: i, TitleLevel: 1})
	}
	return slides
}
