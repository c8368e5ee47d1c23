package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/user/neongallery/internal/scene"
)

// ErrInvalidSettings is returned when the render configuration cannot produce an image.
var ErrInvalidSettings = errors.New("engine: invalid render settings")

// WorkersEnv overrides the number of render goroutines.
const WorkersEnv = "NEONGALLERY_WORKERS"

// RenderConfig defines internal render parameters.
type RenderConfig struct {
	Width        int
	Height       int
	SamplesPerPx int
	MaxDepth     int
	Seed         int64
	Transparent  bool
	Workers      int
}

func (cfg RenderConfig) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSettings, cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPx <= 0 {
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidSettings, cfg.SamplesPerPx)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidSettings, cfg.MaxDepth)
	}
	return nil
}

func (cfg RenderConfig) workerCount() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	n := runtime.NumCPU()
	if env := os.Getenv(WorkersEnv); env != "" {
		if custom, err := strconv.Atoi(env); err == nil && custom > 0 && custom <= 128 {
			n = custom
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

// world is the renderer's view of a scene.
type world struct {
	primary    []hittable
	all        []hittable
	background func(ray) vec3
}

// Render performs a path tracing render of the given scene and returns a new image.
func Render(ctx context.Context, sc *scene.Scene, cfg RenderConfig) (*image.NRGBA, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	if err := RenderInto(ctx, sc, cfg, img, nil); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderInto renders the scene into the provided image.
// If progress is not nil, it is called from worker goroutines after finished tiles
// to allow interactive preview. The output only depends on the scene and cfg.Seed.
func RenderInto(ctx context.Context, sc *scene.Scene, cfg RenderConfig, img *image.NRGBA, progress func()) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		return fmt.Errorf("%w: image is %dx%d, config wants %dx%d",
			ErrInvalidSettings, b.Dx(), b.Dy(), cfg.Width, cfg.Height)
	}

	primary, all := sceneToWorld(sc)
	w := &world{primary: primary, all: all, background: backgroundFunc(sc)}
	cam := newCamera(sc.Camera, cfg)

	invWidth := 1.0 / float64(max(cfg.Width-1, 1))
	invHeight := 1.0 / float64(max(cfg.Height-1, 1))
	heightMinus1 := float64(cfg.Height - 1)

	pix := img.Pix
	stride := img.Stride

	const tileSize = 32
	type tile struct {
		index          int
		x0, y0, x1, y1 int
	}
	numTilesX := (cfg.Width + tileSize - 1) / tileSize
	numTilesY := (cfg.Height + tileSize - 1) / tileSize
	totalTiles := numTilesX * numTilesY
	tiles := make(chan tile, totalTiles)
	for ty := 0; ty < cfg.Height; ty += tileSize {
		for tx := 0; tx < cfg.Width; tx += tileSize {
			tiles <- tile{
				index: (ty/tileSize)*numTilesX + tx/tileSize,
				x0:    tx,
				y0:    ty,
				x1:    min(tx+tileSize, cfg.Width),
				y1:    min(ty+tileSize, cfg.Height),
			}
		}
	}
	close(tiles)

	var processedTiles int
	var progressMu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < cfg.workerCount(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tiles {
				if ctx.Err() != nil {
					return
				}
				rng := newRandSource(tileSeed(cfg.Seed, t.index))

				for y := t.y0; y < t.y1; y++ {
					flipY := heightMinus1 - float64(y)
					for x := t.x0; x < t.x1; x++ {
						var col vec3
						hits := 0
						for s := 0; s < cfg.SamplesPerPx; s++ {
							u := (float64(x) + rng.Float64()) * invWidth
							vv := (flipY + rng.Float64()) * invHeight
							c, hit := w.trace(cam.getRay(u, vv, rng), cfg.MaxDepth, rng)
							if hit {
								hits++
							} else if cfg.Transparent {
								continue
							}
							col = col.add(c)
						}
						writePixel(pix[y*stride+x*4:], col, hits, cfg)
					}
				}

				if progress != nil {
					progressMu.Lock()
					processedTiles++
					updateThreshold := max(1, totalTiles/20)
					shouldUpdate := processedTiles%updateThreshold == 0 || processedTiles == totalTiles
					progressMu.Unlock()
					if shouldUpdate {
						progress()
					}
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if progress != nil {
		progress()
	}
	return nil
}

// writePixel stores the averaged sample colour with gamma 2 correction. With a
// transparent film the colour is averaged over the samples that hit geometry and the
// alpha is the fraction of such samples.
func writePixel(px []uint8, col vec3, hits int, cfg RenderConfig) {
	n := cfg.SamplesPerPx
	alpha := uint8(255)
	if cfg.Transparent {
		if hits == 0 {
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			return
		}
		n = hits
		alpha = uint8(math.Round(255 * float64(hits) / float64(cfg.SamplesPerPx)))
	}
	inv := 1.0 / float64(n)
	px[0] = toByte(math.Sqrt(math.Max(col.x*inv, 0)))
	px[1] = toByte(math.Sqrt(math.Max(col.y*inv, 0)))
	px[2] = toByte(math.Sqrt(math.Max(col.z*inv, 0)))
	px[3] = alpha
}

func toByte(c float64) uint8 {
	c *= 255.999
	if c < 0 {
		c = 0
	} else if c > 255.999 {
		c = 255.999
	}
	return uint8(c)
}

// trace returns the radiance along a camera ray and whether it hit camera-visible
// geometry.
func (w *world) trace(r ray, depth int, rng *randSource) (vec3, bool) {
	var rec hitRecord
	if !closestHit(w.primary, r, &rec) {
		return w.background(r), false
	}
	return w.shade(r, &rec, depth, rng), true
}

func (w *world) shade(r ray, rec *hitRecord, depth int, rng *randSource) vec3 {
	emitted := rec.mat.emitted()
	ok, attenuation, scattered := rec.mat.scatter(rng, r, rec)
	if !ok || depth <= 1 {
		return emitted
	}
	next := w.rayColor(scattered, depth-1, rng)
	return emitted.add(attenuation.mulVec(next))
}

func (w *world) rayColor(r ray, depth int, rng *randSource) vec3 {
	if depth <= 0 {
		return vec3{}
	}
	var rec hitRecord
	if !closestHit(w.all, r, &rec) {
		return w.background(r)
	}
	return w.shade(r, &rec, depth, rng)
}

func closestHit(list []hittable, r ray, rec *hitRecord) bool {
	const tMin = 0.001
	hitAnything := false
	closest := math.MaxFloat64
	for i := range list {
		if list[i].hit(r, tMin, closest, rec) {
			hitAnything = true
			closest = rec.t
		}
	}
	return hitAnything
}

func backgroundFunc(sc *scene.Scene) func(ray) vec3 {
	if sc.Sky != nil && sc.Sky.Type == "gradient" {
		horizon := v(sc.Sky.Horizon.R, sc.Sky.Horizon.G, sc.Sky.Horizon.B)
		zenith := v(sc.Sky.Zenith.R, sc.Sky.Zenith.G, sc.Sky.Zenith.B)
		return func(r ray) vec3 {
			dirLen := r.dir.length()
			if dirLen == 0 {
				return horizon
			}
			// Z is up: blend by the elevation of the ray.
			t := clamp((r.dir.z/dirLen+1.0)*0.5, 0, 1)
			return horizon.mul(1 - t).add(zenith.mul(t))
		}
	}

	var bg vec3
	if sc.Sky != nil && sc.Sky.Type == "solid" {
		bg = v(sc.Sky.Color.R, sc.Sky.Color.G, sc.Sky.Color.B)
	} else {
		bg = v(sc.Background.R, sc.Background.G, sc.Background.B)
	}
	return func(ray) vec3 { return bg }
}
