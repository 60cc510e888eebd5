package core

// Material describes how a surface reflects and emits light.
// Materials are small values copied into every HitInfo.
type Material struct {
	Color               Vec3    // Attenuation for diffuse bounces
	EmissionColor       Vec3    // Color of emitted light
	EmissionStrength    float32 // Scale applied to EmissionColor, >= 0
	Smoothness          float32 // 0 = fully diffuse, 1 = perfect mirror on specular bounces
	SpecularProbability float32 // Chance that a bounce is specular
	SpecularColor       Vec3    // Attenuation for specular bounces
}

// NewMaterial creates a material from all of its parameters
func NewMaterial(color, emissionColor Vec3, emissionStrength, smoothness, specularProbability float32, specularColor Vec3) Material {
	return Material{
		Color:               color,
		EmissionColor:       emissionColor,
		EmissionStrength:    emissionStrength,
		Smoothness:          smoothness,
		SpecularProbability: specularProbability,
		SpecularColor:       specularColor,
	}
}

// NewDiffuse creates a non-emissive, purely diffuse material
func NewDiffuse(color Vec3) Material {
	return NewMaterial(color, Vec3{}, 0, 0, 0, Splat(1))
}

// NewEmissive creates a black light-emitting material
func NewEmissive(emissionColor Vec3, strength float32) Material {
	return NewMaterial(Vec3{}, emissionColor, strength, 0, 0, Splat(1))
}

// NewGlossy creates a material that reflects specularly with the given probability
func NewGlossy(color Vec3, smoothness, specularProbability float32, specularColor Vec3) Material {
	return NewMaterial(color, Vec3{}, 0, smoothness, specularProbability, specularColor)
}

// Emitted returns the light emitted by the material
func (m Material) Emitted() Vec3 {
	return m.EmissionColor.Multiply(m.EmissionStrength)
}

// HitInfo contains information about a ray-surface intersection
type HitInfo struct {
	Distance float32  // Distance along the ray, >= 0
	Position Vec3     // World-space hit point
	Normal   Vec3     // Unit surface normal
	Material Material // Material of the surface that was hit
}
