package engine

import (
	"math"

	"github.com/user/neongallery/internal/scene"
)

type materialType int

const (
	matLambert materialType = iota
	matMetal
	matDielectric
	matEmissive
	matMirror
)

type material struct {
	typ    materialType
	albedo vec3
	rough  float64
	ior    float64
	emit   vec3
}

// defaultMaterial is used for objects whose material id is unknown.
var defaultMaterial = material{typ: matLambert, albedo: v(0.5, 0.5, 0.5)}

func convertMaterial(m scene.Material) material {
	al := v(m.Albedo.R, m.Albedo.G, m.Albedo.B)
	em := v(m.Emit.R*m.Power, m.Emit.G*m.Power, m.Emit.B*m.Power)

	switch m.Type {
	case scene.MaterialMetal:
		return material{typ: matMetal, albedo: al, rough: clamp(m.Rough, 0, 1), emit: em}
	case scene.MaterialDielectric:
		ior := m.IOR
		if ior == 0 {
			ior = 1.5
		}
		return material{typ: matDielectric, albedo: al, ior: ior, emit: em}
	case scene.MaterialEmissive:
		return material{typ: matEmissive, emit: em}
	case scene.MaterialMirror:
		return material{typ: matMirror, albedo: al, emit: em}
	default:
		return material{typ: matLambert, albedo: al, rough: clamp(m.Rough, 0, 1), emit: em}
	}
}

func clamp(x, minVal, maxVal float64) float64 {
	if x < minVal {
		return minVal
	}
	if x > maxVal {
		return maxVal
	}
	return x
}

func (m material) emitted() vec3 {
	return m.emit
}

func (m material) scatter(rng *randSource, rIn ray, rec *hitRecord) (bool, vec3, ray) {
	switch m.typ {
	case matLambert:
		scatteredDir := randomCosineDirection(rec.normal, rng)
		if m.rough > 1e-6 {
			randomOffset := randomInUnitSphere(rng)
			scatteredDir.x += randomOffset.x * m.rough * 0.1
			scatteredDir.y += randomOffset.y * m.rough * 0.1
			scatteredDir.z += randomOffset.z * m.rough * 0.1
			scatteredDir = scatteredDir.unit()
		}
		return true, m.albedo, ray{orig: rec.p, dir: scatteredDir}

	case matMetal:
		unitDir := rIn.dir.unit()
		if unitDir.length() == 0 {
			return false, vec3{}, ray{orig: rec.p, dir: rIn.dir}
		}
		reflected := reflectVec(unitDir, rec.normal)
		if m.rough <= 1e-6 {
			return true, m.albedo, ray{orig: rec.p, dir: reflected}
		}

		// Blend the mirror direction towards a cosine lobe around it by roughness².
		lobe := randomCosineDirection(reflected, rng)
		alpha := m.rough * m.rough
		dir := reflected.mul(1 - alpha).add(lobe.mul(alpha))
		if dir.dot(dir) < 1e-8 {
			dir = reflected
		} else {
			dir = dir.unit()
		}
		if dir.dot(rec.normal) <= 0 {
			dir = reflected
		}
		return true, m.albedo, ray{orig: rec.p, dir: dir}

	case matDielectric:
		attenuation := vec3{x: 1, y: 1, z: 1}
		if m.albedo.length() > 0 {
			attenuation = m.albedo
		}

		refractionRatio := m.ior
		if rec.frontFace {
			refractionRatio = 1.0 / m.ior
		}

		unitDir := rIn.dir.unit()
		if unitDir.length() == 0 {
			return false, attenuation, ray{orig: rec.p, dir: rIn.dir}
		}

		cosTheta := math.Min(-unitDir.dot(rec.normal), 1.0)
		sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

		cannotRefract := refractionRatio*sinTheta > 1.0
		var direction vec3
		if cannotRefract || reflectance(cosTheta, refractionRatio) > rng.Float64() {
			direction = reflectVec(unitDir, rec.normal)
		} else {
			direction = refractVec(unitDir, rec.normal, refractionRatio)
		}
		return true, attenuation, ray{orig: rec.p, dir: direction}

	case matEmissive:
		return false, vec3{}, ray{}

	case matMirror:
		unitDir := rIn.dir.unit()
		if unitDir.length() == 0 {
			return false, vec3{}, ray{orig: rec.p, dir: rIn.dir}
		}
		return true, m.albedo, ray{orig: rec.p, dir: reflectVec(unitDir, rec.normal)}
	}
	return false, vec3{}, ray{}
}

func reflectance(cosine, refIdx float64) float64 {
	// Schlick approximation
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
