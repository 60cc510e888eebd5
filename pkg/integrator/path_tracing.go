package integrator

import (
	"github.com/BlockOG/ray-tracing/pkg/core"
)

// Config contains path tracing parameters
type Config struct {
	MaxBounceCount int       // Bounces after the primary hit; the loop runs MaxBounceCount+1 times
	SkyColor       core.Vec3 // Sky color at the zenith, blended towards white at the horizon
	GroundFactor   float32   // Throughput scale for rays escaping below the horizon
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxBounceCount: 10,
		SkyColor:       core.NewVec3(0, 0.596078431372549, 0.8588235294117647),
		GroundFactor:   0.5,
	}
}

// PathTracingIntegrator implements iterative unidirectional path tracing
// with a diffuse/specular mix per bounce
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// Trace follows ray through the scene and returns the accumulated light.
// The estimate is not normalized by a sampling PDF.
func (pt *PathTracingIntegrator) Trace(scene core.Intersector, ray core.Ray, sampler core.Sampler) core.Vec3 {
	incomingLight := core.Vec3{}
	throughput := core.Splat(1)

	for bounce := 0; bounce <= pt.config.MaxBounceCount; bounce++ {
		if throughput.IsZero() {
			break
		}

		hit, isHit := scene.Intersect(ray)
		if !isHit {
			throughput = throughput.MultiplyVec(pt.Background(ray.Direction))
			incomingLight = incomingLight.Add(throughput)
			break
		}

		var isSpecular bool
		ray, isSpecular = pt.scatter(ray, hit, sampler)

		incomingLight = incomingLight.Add(hit.Material.Emitted().MultiplyVec(throughput))
		if isSpecular {
			throughput = throughput.MultiplyVec(hit.Material.SpecularColor)
		} else {
			throughput = throughput.MultiplyVec(hit.Material.Color)
		}
	}

	return incomingLight
}

// scatter samples the next ray leaving a hit point.
// The unit vector is drawn before the specular coin flip.
func (pt *PathTracingIntegrator) scatter(ray core.Ray, hit core.HitInfo, sampler core.Sampler) (core.Ray, bool) {
	diffuseDirection := hit.Normal.Add(sampler.UnitVector()).Normalize()
	specularDirection := ray.Direction.Subtract(hit.Normal.Multiply(2 * ray.Direction.Dot(hit.Normal)))
	isSpecular := sampler.Get1D() < hit.Material.SpecularProbability

	var smoothness float32
	if isSpecular {
		smoothness = hit.Material.Smoothness
	}

	// The blend is not renormalized
	direction := diffuseDirection.Lerp(specularDirection, smoothness)
	return core.NewRay(hit.Position, direction), isSpecular
}

// Background returns the attenuation applied to rays that escape the scene.
// Below the horizon it is a flat ground factor; above, the sky color fades
// to white towards the horizon.
func (pt *PathTracingIntegrator) Background(direction core.Vec3) core.Vec3 {
	if direction.Y < 0 {
		return core.Splat(pt.config.GroundFactor)
	}
	t := (1 - direction.Y) * (1 - direction.Y)
	return pt.config.SkyColor.Lerp(core.Splat(1), t)
}
