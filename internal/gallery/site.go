package gallery

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SiteTitle is the page title of the generated website.
const SiteTitle = "Neon Vision Gallery"

// Assets are the static files copied next to index.html.
var Assets = []string{"styles.css", "gallery.js"}

// Sections are the element ids every index page carries.
var Sections = []string{"hero", "about", "gallery", "process"}

//go:embed site
var siteFS embed.FS

var indexTemplate = template.Must(template.New("index.html.tmpl").
	Funcs(template.FuncMap{"heading": titleize}).
	ParseFS(siteFS, "site/index.html.tmpl"))

type page struct {
	Title   string
	Version string
	Count   int
	Groups  []Group
}

// WriteSite scans root and writes index.html plus the static assets into it.
func WriteSite(root string) (Catalogue, error) {
	cat, err := Scan(root)
	if err != nil {
		return Catalogue{}, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return Catalogue{}, fmt.Errorf("create site root: %w", err)
	}

	var buf bytes.Buffer
	err = indexTemplate.Execute(&buf, page{
		Title:   SiteTitle,
		Version: cat.Version,
		Count:   cat.Len(),
		Groups:  cat.Groups(),
	})
	if err != nil {
		return Catalogue{}, fmt.Errorf("render index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, "index.html"), buf.Bytes(), 0o644); err != nil {
		return Catalogue{}, fmt.Errorf("write index: %w", err)
	}

	for _, name := range Assets {
		data, err := fs.ReadFile(siteFS, "site/"+name)
		if err != nil {
			return Catalogue{}, err
		}
		if strings.HasSuffix(name, ".js") {
			data = bytes.ReplaceAll(data, []byte("__VERSION__"), []byte(cat.Version))
		}
		if err := os.WriteFile(filepath.Join(root, name), data, 0o644); err != nil {
			return Catalogue{}, fmt.Errorf("write %s: %w", name, err)
		}
	}
	return cat, nil
}
