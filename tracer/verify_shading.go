//go:build verify_shading
// +build verify_shading

package tracer

import (
	"fmt"
	"math"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

const (
	lengthEpsilon = 1e-7
	dotEpsilon    = 1e-7
)

func init() {
	fmt.Println("Shading verification enabled.")
}

func verifyShading(incident geom.Ray, sh scene.Shading) {
	if math.Abs(sh.Normal.Length()-1) > lengthEpsilon {
		panic(fmt.Sprintf("shading normal %v is not unit length", sh.Normal))
	}
	if !sh.HasReflected {
		return
	}
	// Reflected direction keeps unit length
	if math.Abs(sh.Reflected.Direction.Length()-1) > lengthEpsilon {
		panic(fmt.Sprintf("reflected direction %v is not unit length", sh.Reflected.Direction))
	}
	// Angle of incidence equals angle of reflection
	in := incident.Direction.Dot(sh.Normal)
	out := sh.Reflected.Direction.Dot(sh.Normal)
	if math.Abs(in+out) > dotEpsilon {
		panic(fmt.Sprintf("reflection law violated: d.n=%g r.n=%g", in, out))
	}
}
