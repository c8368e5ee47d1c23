package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// checkBrowser opens url in headless Chrome and verifies the document title and
// that no image failed to decode. Lazy images that were never requested pass.
func checkBrowser(ctx context.Context, url, title string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	l := launcher.New().Headless(true).Context(ctx)
	defer l.Cleanup()
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}

	got, err := page.Eval(`() => document.title`)
	if err != nil {
		return fmt.Errorf("read title: %w", err)
	}
	if got.Value.String() != title {
		return fmt.Errorf("title %q, want %q", got.Value.String(), title)
	}

	broken, err := page.Eval(`() => Array.from(document.images)
		.filter((img) => img.complete && img.naturalWidth === 0)
		.map((img) => img.getAttribute('src'))`)
	if err != nil {
		return fmt.Errorf("inspect images: %w", err)
	}
	if srcs := broken.Value.Arr(); len(srcs) > 0 {
		return fmt.Errorf("%d images failed to load, first %s", len(srcs), srcs[0].String())
	}
	return nil
}
