package preview

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/user/neongallery/internal/artwork"
	"github.com/user/neongallery/internal/logging"
	"github.com/user/neongallery/internal/pipeline"
)

// maximum on-screen size of the image area
const (
	maxDisplayW = 1024
	maxDisplayH = 768
)

// Run opens a preview window for a and blocks until it is closed. opts.Render sets
// the preview size and quality; Save applies the same post-processing as a batch.
func Run(a artwork.Artwork, opts pipeline.Options) error {
	if opts.Render.Width <= 0 || opts.Render.Height <= 0 {
		return fmt.Errorf("preview size %dx%d is empty", opts.Render.Width, opts.Render.Height)
	}
	log := logging.OrNop(opts.Logger)
	log.Info("opening preview", zap.String("artwork", a.Name), zap.Int64("seed", opts.Seed))

	fa := app.New()
	w := fa.NewWindow("Neon Gallery: " + a.Title)

	v := newViewer(newSession(a, opts), log)
	w.SetContent(v.layout())
	w.SetOnClosed(v.stop)
	v.startRender()
	w.ShowAndRun()
	return nil
}

type viewer struct {
	s   *session
	log *zap.Logger
	rng *rand.Rand

	img    *canvas.Image
	status *widget.Label
	seed   *widget.Label
	live   *widget.Check

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    generation
}

func newViewer(s *session, log *zap.Logger) *viewer {
	v := &viewer{
		s:      s,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		status: widget.NewLabel("Idle"),
		seed:   widget.NewLabel(""),
		live:   widget.NewCheck("Live update while rendering", nil),
	}
	v.live.SetChecked(true)
	v.img = canvas.NewImageFromImage(s.NewFrame())
	v.img.FillMode = canvas.ImageFillContain

	aspect := float32(s.opts.Render.Width) / float32(s.opts.Render.Height)
	dw, dh := float32(maxDisplayW), float32(maxDisplayW)/aspect
	if dh > maxDisplayH {
		dh = maxDisplayH
		dw = dh * aspect
	}
	v.img.SetMinSize(fyne.NewSize(dw, dh))
	v.showSeed()
	return v
}

func (v *viewer) layout() fyne.CanvasObject {
	buttons := container.NewHBox(
		widget.NewButton("Re-render", v.startRender),
		widget.NewButton("New seed", func() {
			v.s.Reseed(v.rng)
			v.showSeed()
			v.startRender()
		}),
		widget.NewButton("Stop", v.stop),
		widget.NewButton("Save image", v.save),
		v.live,
	)
	info := container.NewHBox(v.seed, v.status)
	return container.NewBorder(buttons, info, nil, nil, v.img)
}

func (v *viewer) showSeed() {
	v.seed.SetText(fmt.Sprintf("Seed %d", v.s.Seed()))
}

// startRender cancels any running render and starts a new one. Call from the UI
// goroutine.
func (v *viewer) startRender() {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.mu.Unlock()
	id := v.gen.Next()

	frame := v.s.NewFrame()
	v.img.Image = frame
	v.img.Refresh()
	v.status.SetText("Rendering...")

	var progress func()
	if v.live.Checked {
		progress = func() {
			if ctx.Err() == nil {
				fyne.Do(v.img.Refresh)
			}
		}
	}

	go func() {
		start := time.Now()
		err := v.s.Render(ctx, frame, progress)
		elapsed := time.Since(start)
		fyne.Do(func() {
			// A newer render owns the status line.
			if !v.gen.Current(id) {
				return
			}
			switch {
			case errors.Is(err, context.Canceled):
				v.status.SetText("Stopped")
			case err != nil:
				v.status.SetText(fmt.Sprintf("Render error: %v", err))
				v.log.Error("preview render failed", zap.Error(err))
			default:
				v.img.Refresh()
				v.status.SetText(fmt.Sprintf("Done in %s", elapsed.Round(time.Millisecond)))
				v.log.Debug("preview render finished", zap.Duration("elapsed", elapsed))
			}
		})
	}()
}

func (v *viewer) stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *viewer) save() {
	v.status.SetText("Saving image...")
	go func() {
		path, err := v.s.Save()
		fyne.Do(func() {
			if err != nil {
				v.status.SetText(fmt.Sprintf("Save image error: %v", err))
				return
			}
			v.status.SetText("Image saved to " + path)
			v.log.Info("saved preview", zap.String("path", path))
		})
	}()
}
