package types

import "golang.org/x/image/math/f32"

// Mat4 is a column-major 4x4 single precision matrix used for positioning
// meshes before they get indexed.
type Mat4 f32.Mat4

// Create an identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Create a translation matrix.
func Translate4(v Vec3[float32]) Mat4 {
	m := Ident4()
	m[12], m[13], m[14] = v[0], v[1], v[2]
	return m
}

// Create a scale matrix.
func Scale4(v Vec3[float32]) Mat4 {
	m := Ident4()
	m[0], m[5], m[10] = v[0], v[1], v[2]
	return m
}

// Multiply two matrices.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * m2[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Multiply the matrix with a column vector.
func (m Mat4) Mul4x1(v f32.Vec4) f32.Vec4 {
	return f32.Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Transform a point.
func (m Mat4) TransformPoint(p Vec3[float32]) Vec3[float32] {
	out := m.Mul4x1(f32.Vec4{p[0], p[1], p[2], 1})
	return Vec3[float32]{out[0], out[1], out[2]}
}

// Generate a model matrix from a translation vector, euler rotation angles in
// radians (yaw, pitch, roll) and a scale vector: M = T * R * S
func ModelMatrix(translation, rotation, scale Vec3[float32]) Mat4 {
	yawQuat := QuatFromAxisAngle(Vec3[float32]{1, 0, 0}, rotation[0])
	pitchQuat := QuatFromAxisAngle(Vec3[float32]{0, 1, 0}, rotation[1])
	rollQuat := QuatFromAxisAngle(Vec3[float32]{0, 0, 1}, rotation[2])
	rotMat := rollQuat.Mul(pitchQuat.Mul(yawQuat)).Normalize().Mat4()
	return Translate4(translation).Mul4(rotMat.Mul4(Scale4(scale)))
}
