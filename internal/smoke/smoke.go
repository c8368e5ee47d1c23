// Package smoke checks that a running gallery serves its pages, images and assets.
package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/neongallery/internal/gallery"
	"github.com/user/neongallery/internal/logging"
)

// Status is the outcome of one check.
type Status string

const (
	Passed Status = "passed"
	Failed Status = "failed"
)

// Test is one recorded check.
type Test struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Result aggregates a smoke run.
type Result struct {
	Timestamp time.Time `json:"timestamp"`
	Tests     []Test    `json:"tests"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
}

func (r *Result) record(name string, err error) {
	t := Test{Name: name, Status: Passed}
	if err != nil {
		t.Status = Failed
		t.Error = err.Error()
		r.Failed++
	} else {
		r.Passed++
	}
	r.Tests = append(r.Tests, t)
}

// OK reports whether every check passed.
func (r *Result) OK() bool {
	return r.Failed == 0
}

// Write saves the result as JSON.
func (r *Result) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Options selects what to check.
type Options struct {
	BaseURL  string
	Title    string
	Sections []string
	// Images are paths relative to BaseURL. Empty means every image listed by the
	// server's /api/gallery.
	Images  []string
	Assets  []string
	Timeout time.Duration
	// Browser also loads the page in headless Chrome.
	Browser bool
	Client  *http.Client
	Logger  *zap.Logger
}

// DefaultOptions checks the standard gallery page at baseURL.
func DefaultOptions(baseURL string) Options {
	return Options{
		BaseURL:  baseURL,
		Title:    gallery.SiteTitle,
		Sections: gallery.Sections,
		Assets:   gallery.Assets,
		Timeout:  10 * time.Second,
	}
}

type checker struct {
	opts   Options
	base   string
	client *http.Client
	log    *zap.Logger
}

// Run performs every check once. Failures are recorded, never retried.
func Run(ctx context.Context, opts Options) *Result {
	c := &checker{
		opts:   opts,
		base:   strings.TrimRight(opts.BaseURL, "/"),
		client: opts.Client,
		log:    logging.OrNop(opts.Logger),
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: opts.Timeout}
	}

	res := &Result{Timestamp: time.Now()}
	c.log.Info("smoke testing gallery", zap.String("url", c.base))

	body, err := c.homepage(ctx)
	res.record("Homepage loads", err)
	for _, id := range opts.Sections {
		name := id + " section exists"
		if body == "" {
			res.record(name, fmt.Errorf("homepage unavailable"))
			continue
		}
		if !strings.Contains(body, `id="`+id+`"`) {
			res.record(name, fmt.Errorf("no element with id %q", id))
			continue
		}
		res.record(name, nil)
	}

	images := opts.Images
	if len(images) == 0 {
		cat, err := c.catalogue(ctx)
		res.record("Gallery API responds", err)
		if err == nil {
			images = cat.Files()
			if len(images) == 0 {
				res.record("Gallery has images", fmt.Errorf("catalogue is empty"))
			}
		}
	}
	for _, img := range images {
		_, err := c.get(ctx, img, "image/")
		res.record(img+" loads", err)
	}

	for _, asset := range opts.Assets {
		_, err := c.get(ctx, asset, "")
		res.record(asset+" loads", err)
	}

	if opts.Browser {
		res.record("Browser renders page", checkBrowser(ctx, c.base+"/", opts.Title, opts.Timeout))
	}

	for _, t := range res.Tests {
		if t.Status == Failed {
			c.log.Warn("check failed", zap.String("check", t.Name), zap.String("error", t.Error))
		} else {
			c.log.Debug("check passed", zap.String("check", t.Name))
		}
	}
	c.log.Info("smoke test finished", zap.Int("passed", res.Passed), zap.Int("failed", res.Failed))
	return res
}

// homepage fetches the index page. A page that loads without the expected title
// is still returned so its sections can be checked.
func (c *checker) homepage(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "", "text/html")
	if err != nil {
		return "", err
	}
	if !strings.Contains(body, c.opts.Title) {
		return body, fmt.Errorf("page does not mention %q", c.opts.Title)
	}
	return body, nil
}

func (c *checker) catalogue(ctx context.Context) (gallery.Catalogue, error) {
	var cat gallery.Catalogue
	body, err := c.get(ctx, "api/gallery", "application/json")
	if err != nil {
		return cat, err
	}
	if err := json.Unmarshal([]byte(body), &cat); err != nil {
		return cat, fmt.Errorf("decode catalogue: %w", err)
	}
	return cat, nil
}

// get fetches base/rel and checks the status and, when wantType is set, the
// content type prefix.
func (c *checker) get(ctx context.Context, rel, wantType string) (string, error) {
	url := c.base + "/" + strings.TrimLeft(rel, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); wantType != "" && !strings.HasPrefix(ct, wantType) {
		return "", fmt.Errorf("GET %s: content type %q, want %s", url, ct, wantType)
	}
	return string(data), nil
}
