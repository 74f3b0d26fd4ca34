package sphere

import (
	"fmt"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/mesh"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/buffer_provider"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Default construction values.
const (
	DefaultDepth    = 5
	DefaultAmbient  = 0.3
	DefaultDiffuse  = 0.5
	DefaultSpecular = 0.5
)

var (
	// DefaultColorStart is the gradient color at the bottom pole.
	DefaultColorStart = mgl32.Vec4{0, 0.5, 0.7, 1}

	// DefaultColorStop is the gradient color at the top pole.
	DefaultColorStop = mgl32.Vec4{0.4, 0.8, 0.9, 1}
)

// Lighting holds the per-object Phong coefficients.
type Lighting struct {
	Ambient  float32
	Diffuse  float32
	Specular float32
}

// TransformUpdate is a partial transform edit. Nil fields are left unchanged.
type TransformUpdate struct {
	Translation *mgl32.Vec3
	Scale       *mgl32.Vec3
	Rotation    *mgl32.Mat4
}

type sphere struct {
	id      uint32
	enabled bool

	r       renderer.Renderer
	buffers buffer_provider.BufferProvider

	depth      int
	colorStart mgl32.Vec4
	colorStop  mgl32.Vec4
	lighting   Lighting

	geometry mesh.Geometry
	prebuilt bool

	translation mgl32.Vec3
	scale       mgl32.Vec3
	rotation    mgl32.Mat4
	model       mgl32.Mat4
	dirty       bool

	disposed bool
}

// Sphere is a renderable icosphere. It exclusively owns its mesh, attributes, transform and the
// four GPU buffers holding points, colors, normals and indices.
//
// Lifecycle: a new Sphere is clean; any transform edit marks it dirty; ModelMatrix or Draw
// rebuilds the model matrix and makes it clean again; Dispose is final.
type Sphere interface {
	// ID returns the picking identity of the sphere.
	//
	// Returns:
	//   - uint32: the id, 0 for objects that must never be picked
	ID() uint32

	// SetID sets the picking identity.
	//
	// Parameters:
	//   - id: the id to assign
	SetID(id uint32)

	// Enabled returns whether the sphere is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the sphere is drawn.
	//
	// Parameters:
	//   - enabled: true to draw the sphere
	SetEnabled(enabled bool)

	// Depth returns the subdivision depth of the mesh.
	Depth() int

	// Geometry returns the CPU-side mesh and attributes. The arrays belong to the sphere and
	// must not be modified.
	Geometry() mesh.Geometry

	// Translation returns the world-space center.
	Translation() mgl32.Vec3

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// Radius returns the X scale, which is the radius for uniformly scaled spheres.
	Radius() float32

	// Rotation returns the object-space rotation.
	Rotation() mgl32.Mat4

	// SetTransform applies a partial transform edit and marks the model matrix dirty.
	//
	// Parameters:
	//   - u: the fields to replace
	SetTransform(u TransformUpdate)

	// SetTranslation replaces the translation.
	SetTranslation(t mgl32.Vec3)

	// SetScale replaces the per-axis scale.
	SetScale(s mgl32.Vec3)

	// SetRadius sets a uniform scale of r.
	SetRadius(r float32)

	// SetRotation replaces the rotation.
	SetRotation(m mgl32.Mat4)

	// ModelMatrix returns translate × scale × rotate, rebuilt from identity if the transform
	// changed since the last call.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// Dirty reports whether the model matrix must be rebuilt before the next draw.
	Dirty() bool

	// Colors returns the gradient endpoints.
	//
	// Returns:
	//   - mgl32.Vec4: the bottom color
	//   - mgl32.Vec4: the top color
	Colors() (mgl32.Vec4, mgl32.Vec4)

	// SetColors replaces the gradient, rebuilds the attributes in full and re-uploads them.
	//
	// Parameters:
	//   - start: the bottom color
	//   - stop: the top color
	//
	// Returns:
	//   - error: a wrapped common.ErrDisposed after Dispose
	SetColors(start, stop mgl32.Vec4) error

	// Lighting returns the Phong coefficients.
	Lighting() Lighting

	// SetLighting replaces the Phong coefficients.
	SetLighting(l Lighting)

	// Draw binds the four buffers, writes the lighting and model matrix uniforms and issues
	// one indexed triangle draw over the full index buffer.
	//
	// Returns:
	//   - error: a wrapped common.ErrDisposed after Dispose, or a renderer error
	Draw() error

	// Dispose releases all four GPU buffers. Calling it again does nothing.
	Dispose()

	// Disposed reports whether Dispose has been called.
	Disposed() bool
}

var _ Sphere = &sphere{}

// NewSphere builds the mesh and attributes, allocates four buffers on r and uploads all of them.
//
// Parameters:
//   - r: the renderer the buffers live on
//   - options: variadic list of SphereBuilderOption functions to configure the Sphere
//
// Returns:
//   - Sphere: the constructed sphere, clean and enabled
//   - error: a wrapped common.ErrConfiguration for an unsupported depth or invalid geometry
func NewSphere(r renderer.Renderer, options ...SphereBuilderOption) (Sphere, error) {
	s := &sphere{
		enabled:    true,
		r:          r,
		depth:      DefaultDepth,
		colorStart: DefaultColorStart,
		colorStop:  DefaultColorStop,
		lighting:   Lighting{Ambient: DefaultAmbient, Diffuse: DefaultDiffuse, Specular: DefaultSpecular},
		scale:      mgl32.Vec3{1, 1, 1},
		rotation:   mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.prebuilt {
		if err := s.geometry.Mesh.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrConfiguration, err)
		}
		if len(s.geometry.Attributes.Colors) != len(s.geometry.Mesh.Points) ||
			len(s.geometry.Attributes.Normals) != len(s.geometry.Mesh.Points) {
			return nil, fmt.Errorf("%w: attribute arrays do not match %d points", common.ErrConfiguration, len(s.geometry.Mesh.Points))
		}
	} else {
		g, err := mesh.Build(mesh.Request{Depth: s.depth, ColorStart: s.colorStart, ColorStop: s.colorStop})
		if err != nil {
			return nil, err
		}
		s.geometry = g
	}

	s.buffers = buffer_provider.NewBufferProvider(r, buffer_provider.WithLabel(fmt.Sprintf("sphere %d", s.id)))
	if err := s.upload(); err != nil {
		s.buffers.Release()
		return nil, err
	}
	s.rebuildModel()
	return s, nil
}

// upload writes every CPU array to its buffer.
func (s *sphere) upload() error {
	g := s.geometry
	if err := buffer_provider.WriteBuffers([]buffer_provider.BufferWrite{
		{Provider: s.buffers, Kind: buffer_provider.BufferPoints, Data: common.SliceToBytes(g.Mesh.Points)},
		{Provider: s.buffers, Kind: buffer_provider.BufferIndices, Data: common.SliceToBytes(g.Mesh.Indices)},
		{Provider: s.buffers, Kind: buffer_provider.BufferColors, Data: common.SliceToBytes(g.Attributes.Colors)},
		{Provider: s.buffers, Kind: buffer_provider.BufferNormals, Data: common.SliceToBytes(g.Attributes.Normals)},
	}); err != nil {
		return err
	}
	s.buffers.SetIndexCount(len(g.Mesh.Indices))
	return nil
}

func (s *sphere) ID() uint32 {
	return s.id
}

func (s *sphere) SetID(id uint32) {
	s.id = id
}

func (s *sphere) Enabled() bool {
	return s.enabled
}

func (s *sphere) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *sphere) Depth() int {
	return s.depth
}

func (s *sphere) Geometry() mesh.Geometry {
	return s.geometry
}

func (s *sphere) Translation() mgl32.Vec3 {
	return s.translation
}

func (s *sphere) Scale() mgl32.Vec3 {
	return s.scale
}

func (s *sphere) Radius() float32 {
	return s.scale[0]
}

func (s *sphere) Rotation() mgl32.Mat4 {
	return s.rotation
}

func (s *sphere) SetTransform(u TransformUpdate) {
	if u.Translation != nil {
		s.translation = *u.Translation
	}
	if u.Scale != nil {
		s.scale = *u.Scale
	}
	if u.Rotation != nil {
		s.rotation = *u.Rotation
	}
	s.dirty = true
}

func (s *sphere) SetTranslation(t mgl32.Vec3) {
	s.SetTransform(TransformUpdate{Translation: &t})
}

func (s *sphere) SetScale(v mgl32.Vec3) {
	s.SetTransform(TransformUpdate{Scale: &v})
}

func (s *sphere) SetRadius(r float32) {
	s.SetScale(mgl32.Vec3{r, r, r})
}

func (s *sphere) SetRotation(m mgl32.Mat4) {
	s.SetTransform(TransformUpdate{Rotation: &m})
}

func (s *sphere) rebuildModel() {
	s.model = common.ComposeModel(s.translation, s.scale, s.rotation)
	s.dirty = false
}

func (s *sphere) ModelMatrix() mgl32.Mat4 {
	if s.dirty {
		s.rebuildModel()
	}
	return s.model
}

func (s *sphere) Dirty() bool {
	return s.dirty
}

func (s *sphere) Colors() (mgl32.Vec4, mgl32.Vec4) {
	return s.colorStart, s.colorStop
}

func (s *sphere) SetColors(start, stop mgl32.Vec4) error {
	if s.disposed {
		return fmt.Errorf("%w: sphere %d", common.ErrDisposed, s.id)
	}
	s.colorStart, s.colorStop = start, stop
	s.geometry.Request.ColorStart, s.geometry.Request.ColorStop = start, stop
	s.geometry.Attributes = mesh.BuildAttributes(s.geometry.Mesh, start, stop)
	return buffer_provider.WriteBuffers([]buffer_provider.BufferWrite{
		{Provider: s.buffers, Kind: buffer_provider.BufferColors, Data: common.SliceToBytes(s.geometry.Attributes.Colors)},
		{Provider: s.buffers, Kind: buffer_provider.BufferNormals, Data: common.SliceToBytes(s.geometry.Attributes.Normals)},
	})
}

func (s *sphere) Lighting() Lighting {
	return s.lighting
}

func (s *sphere) SetLighting(l Lighting) {
	s.lighting = l
}

// vertexInputs pairs each attribute buffer with its shader input and width.
var vertexInputs = []struct {
	kind       buffer_provider.BufferKind
	name       string
	components int32
}{
	{buffer_provider.BufferPoints, shader.AttribPoint, 4},
	{buffer_provider.BufferColors, shader.AttribColor, 4},
	{buffer_provider.BufferNormals, shader.AttribNormal, 3},
}

func (s *sphere) Draw() error {
	if s.disposed {
		return fmt.Errorf("%w: sphere %d", common.ErrDisposed, s.id)
	}

	s.r.SetLighting(s.lighting.Ambient, s.lighting.Diffuse, s.lighting.Specular)
	s.r.SetModelMatrix(s.ModelMatrix())

	for _, in := range vertexInputs {
		h, err := s.buffers.Buffer(in.kind)
		if err != nil {
			return err
		}
		if err := s.r.BindForDraw(h, s.r.AttribSlot(in.name), in.components); err != nil {
			return fmt.Errorf("bind %s: %w", in.kind, err)
		}
	}

	indices, err := s.buffers.Buffer(buffer_provider.BufferIndices)
	if err != nil {
		return err
	}
	return s.r.DrawIndexed(indices, s.buffers.IndexCount())
}

func (s *sphere) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.enabled = false
	s.buffers.Release()
}

func (s *sphere) Disposed() bool {
	return s.disposed
}
