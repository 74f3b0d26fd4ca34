package software_backend

import (
	"encoding/binary"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/shader"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// shininess is the specular exponent of the sphere fragment shader.
const shininess = 32

// vertexOut is the output of the vertex stage for one index.
type vertexOut struct {
	clip     mgl32.Vec4
	position mgl32.Vec3
	normal   mgl32.Vec3
	color    mgl32.Vec4
}

// screenVertex is a vertex after the perspective divide and viewport transform.
type screenVertex struct {
	x, y, z float32
	invW    float32
}

// uniformState is the uniform snapshot a draw reads.
type uniformState struct {
	model, view, projection mgl32.Mat4
	normalMatrix            mgl32.Mat3

	oneColor    bool
	singleColor mgl32.Vec4

	lightPoint, lightColor, eye mgl32.Vec3
	ambient, diffuse, specular  float32
}

func (b *softwareBackend) DrawIndexed(h renderer.BufferHandle, count int32) {
	p := b.current
	if p == nil || count <= 0 {
		return
	}
	buf, ok := b.buffers[h]
	if !ok {
		return
	}
	n := min(int(count), len(buf.data)/4)

	u := uniformState{
		model:       p.mat4(shader.UniformModelMatrix),
		view:        p.mat4(shader.UniformViewMatrix),
		projection:  p.mat4(shader.UniformProjectionMatrix),
		oneColor:    p.float(shader.UniformOneColor) > 0.5,
		singleColor: p.vec4(shader.UniformSingleColor),
		lightPoint:  p.vec3(shader.UniformLightPoint),
		lightColor:  p.vec3(shader.UniformLightColor),
		ambient:     p.float(shader.UniformLightAmbient),
		diffuse:     p.float(shader.UniformLightDiffuse),
		specular:    p.float(shader.UniformLightSpecular),
	}
	u.normalMatrix = u.model.Mat3()
	u.eye = u.view.Inv().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()

	pointSlot := p.attribs[shader.AttribPoint]
	colorSlot, hasColor := p.attribs[shader.AttribColor]
	normalSlot, hasNormal := p.attribs[shader.AttribNormal]

	cache := make(map[uint32]*vertexOut, n)
	vertex := func(idx uint32) *vertexOut {
		if v, ok := cache[idx]; ok {
			return v
		}
		v := &vertexOut{}
		world := u.model.Mul4x1(b.fetch(pointSlot, idx))
		v.position = world.Vec3()
		v.clip = u.projection.Mul4(u.view).Mul4x1(world)
		if hasColor {
			v.color = b.fetch(colorSlot, idx)
		}
		if hasNormal {
			v.normal = u.normalMatrix.Mul3x1(b.fetch(normalSlot, idx).Vec3())
		}
		cache[idx] = v
		return v
	}

	for i := 0; i+2 < n; i += 3 {
		i0 := binary.NativeEndian.Uint32(buf.data[i*4:])
		i1 := binary.NativeEndian.Uint32(buf.data[(i+1)*4:])
		i2 := binary.NativeEndian.Uint32(buf.data[(i+2)*4:])
		b.rasterize([3]*vertexOut{vertex(i0), vertex(i1), vertex(i2)}, &u)
		b.trianglesDrawn++
	}
}

// rasterize fills one triangle with a z-buffer test (LESS). Both windings are filled.
// Triangles with a vertex at or behind the eye plane are dropped instead of clipped.
func (b *softwareBackend) rasterize(tri [3]*vertexOut, u *uniformState) {
	var sv [3]screenVertex
	for i, v := range tri {
		w := v.clip[3]
		if w <= 0 {
			return
		}
		sv[i] = screenVertex{
			x:    (v.clip[0]/w*0.5 + 0.5) * float32(b.width),
			y:    (v.clip[1]/w*0.5 + 0.5) * float32(b.height),
			z:    v.clip[2]/w*0.5 + 0.5,
			invW: 1 / w,
		}
	}

	area := edge(sv[0], sv[1], sv[2].x, sv[2].y)
	if area == 0 {
		return
	}

	minX := max(0, int(math32.Floor(min(sv[0].x, sv[1].x, sv[2].x))))
	maxX := min(b.width-1, int(math32.Ceil(max(sv[0].x, sv[1].x, sv[2].x))))
	minY := max(0, int(math32.Floor(min(sv[0].y, sv[1].y, sv[2].y))))
	maxY := min(b.height-1, int(math32.Ceil(max(sv[0].y, sv[1].y, sv[2].y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5

			w0 := edge(sv[1], sv[2], px, py) / area
			w1 := edge(sv[2], sv[0], px, py) / area
			w2 := edge(sv[0], sv[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*sv[0].z + w1*sv[1].z + w2*sv[2].z
			if z < 0 || z > 1 {
				continue
			}
			idx := y*b.width + x
			if z >= b.depth[idx] {
				continue
			}

			// Perspective-correct weights for the varyings.
			p0, p1, p2 := w0*sv[0].invW, w1*sv[1].invW, w2*sv[2].invW
			sum := p0 + p1 + p2
			p0, p1, p2 = p0/sum, p1/sum, p2/sum

			color := b.shade(
				tri[0].position.Mul(p0).Add(tri[1].position.Mul(p1)).Add(tri[2].position.Mul(p2)),
				tri[0].normal.Mul(p0).Add(tri[1].normal.Mul(p1)).Add(tri[2].normal.Mul(p2)),
				tri[0].color.Mul(p0).Add(tri[1].color.Mul(p1)).Add(tri[2].color.Mul(p2)),
				u,
			)

			b.depth[idx] = z
			px8 := common.ColorToBytes(color)
			copy(b.color[idx*4:idx*4+4], px8[:])
		}
	}
}

// shade is the fragment stage of the sphere program.
func (b *softwareBackend) shade(position, normal mgl32.Vec3, color mgl32.Vec4, u *uniformState) mgl32.Vec4 {
	if u.oneColor {
		return u.singleColor
	}

	n := safeNormalize(normal)
	l := safeNormalize(u.lightPoint.Sub(position))
	v := safeNormalize(u.eye.Sub(position))
	r := l.Mul(-1).Add(n.Mul(2 * n.Dot(l)))

	diffuse := max(n.Dot(l), 0)
	specular := math32.Pow(max(r.Dot(v), 0), shininess)

	rgb := mgl32.Vec3{
		color[0] * (u.ambient + u.diffuse*diffuse) * u.lightColor[0],
		color[1] * (u.ambient + u.diffuse*diffuse) * u.lightColor[1],
		color[2] * (u.ambient + u.diffuse*diffuse) * u.lightColor[2],
	}
	rgb = rgb.Add(u.lightColor.Mul(u.specular * specular))
	return rgb.Vec4(color[3])
}

// edge is the signed doubled area of (a, b, p); positive when p is left of a→b.
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
