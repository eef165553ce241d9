package deck

import (
	"fmt"
	"strings"
)

// TOCEntry is one node of the table-of-contents tree.
type TOCEntry struct {
	Title    string
	Level    int
	Page     int // 1-based page in the produced document
	Hidden   bool
	Children []*TOCEntry
}

// BuildTOC maps every titled slide into a tree by title level. A slide with a
// deeper level descends under the previous sibling when that sibling's level
// is shallower; otherwise it joins at the current level. Slides flagged
// hideInToc are included but marked Hidden.
//
// pageOf maps a slide index to its 1-based page in the output document; a
// missing entry drops the slide from the TOC.
func BuildTOC(slides []Slide, pageOf map[int]int) []*TOCEntry {
	var roots []*TOCEntry
	var stack []*TOCEntry

	for _, s := range slides {
		if s.Title == "" {
			continue
		}
		page, ok := pageOf[s.Index]
		if !ok {
			continue
		}

		level := s.TitleLevel
		if level < 1 {
			level = 1
		}
		entry := &TOCEntry{
			Title:  s.Title,
			Level:  level,
			Page:   page,
			Hidden: s.HideInToc(),
		}

		// Pop back to the nearest ancestor with a shallower level.
		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, entry)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, entry)
		}
		stack = append(stack, entry)
	}

	return roots
}

// RenderOutline flattens the tree into outline lines of the form
// "<1-based-page>|<"-" repeated level-1>|<title>".
func RenderOutline(entries []*TOCEntry) []string {
	var lines []string
	var walk func(entry *TOCEntry)
	walk = func(entry *TOCEntry) {
		lines = append(lines, fmt.Sprintf("%d|%s|%s",
			entry.Page, strings.Repeat("-", entry.Level-1), entry.Title))
		for _, child := range entry.Children {
			walk(child)
		}
	}
	for _, entry := range entries {
		walk(entry)
	}
	return lines
}
