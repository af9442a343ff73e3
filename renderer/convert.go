package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/arix/camera"
	"github.com/pthm-cable/arix/layout"
)

// toMatrix converts a column-major mgl32 matrix. Both libraries store
// columns contiguously, so the element order is the same.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toRGBA(c layout.Color, a uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Camera3D builds the raylib camera for the orbit's current eye position.
func Camera3D(o *camera.Orbit) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(o.Position()),
		Target:     toVector3(o.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       o.Fovy,
		Projection: rl.CameraPerspective,
	}
}
