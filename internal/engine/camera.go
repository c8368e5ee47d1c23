package engine

import (
	"math"

	"github.com/user/neongallery/internal/scene"
)

const sensorWidth = 36.0 // mm

type camera struct {
	origin          vec3
	lowerLeftCorner vec3
	horizontal      vec3
	vertical        vec3
	u, v, w         vec3
	lensRadius      float64
}

func newCamera(scCam scene.Camera, cfg RenderConfig) camera {
	aspect := float64(cfg.Width) / float64(cfg.Height)
	if scCam.AspectRatio != 0 {
		aspect = scCam.AspectRatio
	}

	var h float64
	if scCam.LensMM > 0 {
		h = sensorWidth / 2 / scCam.LensMM
		if aspect > 1 {
			h /= aspect
		}
	} else {
		fov := scCam.FOV
		if fov <= 0 {
			fov = 40
		}
		h = math.Tan(fov * math.Pi / 180 / 2)
	}
	viewportHeight := 2.0 * h
	viewportWidth := aspect * viewportHeight

	origin := v(scCam.Position.X, scCam.Position.Y, scCam.Position.Z)
	target := v(scCam.Target.X, scCam.Target.Y, scCam.Target.Z)
	up := v(scCam.Up.X, scCam.Up.Y, scCam.Up.Z)
	if up.length() == 0 {
		up = v(0, 1, 0)
	}

	w := origin.sub(target).unit()
	u := up.cross(w).unit()
	vVec := w.cross(u)

	focusDist := scCam.FocusDist
	if focusDist == 0 {
		focusDist = origin.sub(target).length()
	}
	if focusDist == 0 {
		focusDist = 1
	}

	horizontal := u.mul(viewportWidth * focusDist)
	vertical := vVec.mul(viewportHeight * focusDist)
	lowerLeftCorner := origin.sub(horizontal.div(2)).sub(vertical.div(2)).sub(w.mul(focusDist))

	return camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               vVec,
		w:               w,
		lensRadius:      scCam.Aperture / 2,
	}
}

func (c camera) getRay(s, t float64, rng *randSource) ray {
	if c.lensRadius > 0 {
		rd := randomInUnitSphere(rng).mul(c.lensRadius)
		offset := c.u.mul(rd.x).add(c.v.mul(rd.y))
		return ray{
			orig: c.origin.add(offset),
			dir:  c.lowerLeftCorner.add(c.horizontal.mul(s)).add(c.vertical.mul(t)).sub(c.origin).sub(offset),
		}
	}

	return ray{
		orig: c.origin,
		dir:  c.lowerLeftCorner.add(c.horizontal.mul(s)).add(c.vertical.mul(t)).sub(c.origin),
	}
}
