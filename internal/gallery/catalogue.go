// Package gallery publishes rendered artworks as a static website and serves it.
package gallery

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/user/neongallery/internal/artwork"
)

const (
	// ThumbDir holds thumbnails, mirroring the layout of the output root.
	ThumbDir = "thumbs"
	// VersionFile records the last build.
	VersionFile = "version.json"
)

// Entry is one image found under the output root.
type Entry struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	File        string `json:"file"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Size        int64  `json:"size"`
}

// Catalogue lists the images on disk keyed by category.
type Catalogue struct {
	Version    string             `json:"version,omitempty"`
	Categories map[string][]Entry `json:"categories"`
}

// Group is one category of a catalogue.
type Group struct {
	Category string
	Entries  []Entry
}

// Groups returns the categories sorted by name.
func (c Catalogue) Groups() []Group {
	out := make([]Group, 0, len(c.Categories))
	for name, entries := range c.Categories {
		out = append(out, Group{Category: name, Entries: entries})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Len counts the images.
func (c Catalogue) Len() int {
	n := 0
	for _, entries := range c.Categories {
		n += len(entries)
	}
	return n
}

// Files returns every image path, relative to the root, in group order.
func (c Catalogue) Files() []string {
	var out []string
	for _, g := range c.Groups() {
		for _, e := range g.Entries {
			out = append(out, e.File)
		}
	}
	return out
}

// Scan walks root for PNG files. Images at the root belong to the legacy category,
// others to their directory. A missing root yields an empty catalogue.
func Scan(root string) (Catalogue, error) {
	cat := Catalogue{Categories: map[string][]Entry{}}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return cat, nil
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == ThumbDir {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(path.Ext(rel), ".png") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		category, entry := describe(rel)
		entry.Size = info.Size()
		if _, err := os.Stat(filepath.Join(root, ThumbDir, filepath.FromSlash(rel))); err == nil {
			entry.Thumbnail = path.Join(ThumbDir, rel)
		}
		cat.Categories[category] = append(cat.Categories[category], entry)
		return nil
	})
	if err != nil {
		return Catalogue{}, fmt.Errorf("scan %s: %w", root, err)
	}

	if v, err := ReadVersion(root); err == nil {
		cat.Version = v.Version
	}
	return cat, nil
}

func describe(rel string) (string, Entry) {
	category := path.Dir(rel)
	if category == "." {
		category = string(artwork.Legacy)
	}
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	e := Entry{Name: name, File: rel, Title: titleize(name)}
	if a, err := artwork.Lookup(name); err == nil && a.File() == rel {
		e.Title = a.Title
		e.Description = a.Description
	}
	return category, e
}

// titleize turns "token_stream" into "Token Stream".
func titleize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// VersionInfo is the content of version.json.
type VersionInfo struct {
	Version   string    `json:"version"`
	BuildTime time.Time `json:"buildTime"`
	Commit    string    `json:"commit"`
	Images    int       `json:"images"`
}

// Version formats a build stamp as YYYYMMDD.HHMM in UTC.
func Version(t time.Time) string {
	return t.UTC().Format("20060102.1504")
}

// NewVersionInfo stamps a build at t. The commit comes from GITHUB_SHA when set.
func NewVersionInfo(t time.Time, images int) VersionInfo {
	commit := os.Getenv("GITHUB_SHA")
	if commit == "" {
		commit = "local"
	}
	return VersionInfo{Version: Version(t), BuildTime: t.UTC(), Commit: commit, Images: images}
}

// ReadVersion loads root/version.json.
func ReadVersion(root string) (VersionInfo, error) {
	var v VersionInfo
	data, err := os.ReadFile(filepath.Join(root, VersionFile))
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse %s: %w", VersionFile, err)
	}
	return v, nil
}

// WriteVersion writes root/version.json.
func WriteVersion(root string, v VersionInfo) error {
	return writeJSON(filepath.Join(root, VersionFile), v)
}

func writeJSON(p string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(p), err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filepath.Base(p), err)
	}
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(p), err)
	}
	return nil
}
