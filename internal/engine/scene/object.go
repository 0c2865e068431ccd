package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objscene/internal/config"
)

// Object is one placed mesh instance.
type Object struct {
	Name      string
	MeshPath  string
	Texture   string // empty for untextured objects
	Mipmaps   bool
	Translate mgl32.Vec3
	RotateY   float32 // degrees
	Scale     float32
	Spin      float32 // radians per second
	Rotatable bool
}

func newObject(sc config.SceneConfig, oc config.ObjectConfig) Object {
	return Object{
		Name:      oc.Name,
		MeshPath:  sc.MeshPath(oc),
		Texture:   sc.TexturePath(oc),
		Mipmaps:   oc.Mipmaps,
		Translate: mgl32.Vec3(oc.Translate),
		RotateY:   oc.RotateY,
		Scale:     oc.Scale,
		Spin:      oc.Spin,
		Rotatable: oc.Rotatable,
	}
}

// Angle returns the object's Y rotation in radians after elapsed seconds,
// given the user-controlled angle in degrees.
func (o *Object) Angle(elapsed float64, userAngle float32) float32 {
	a := mgl32.DegToRad(o.RotateY) + o.Spin*float32(elapsed)
	if o.Rotatable {
		a += mgl32.DegToRad(userAngle)
	}
	return a
}

// ModelMatrix returns translate * rotateY * scale.
func (o *Object) ModelMatrix(elapsed float64, userAngle float32) mgl32.Mat4 {
	return mgl32.Translate3D(o.Translate[0], o.Translate[1], o.Translate[2]).
		Mul4(mgl32.HomogRotate3DY(o.Angle(elapsed, userAngle))).
		Mul4(mgl32.Scale3D(o.Scale, o.Scale, o.Scale))
}
