package transform

import "math"

// Vec3 is a cartesian 3-vector, kilometers unless noted otherwise.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns the unit vector in the direction of v.
// Returns the zero vector if v has zero magnitude.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// Array returns the vector as a fixed-length array, handy for JSON output.
func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// mat3 is a row-major 3x3 rotation matrix.
type mat3 [3][3]float64

// rot1 rotates about the X axis by angle a (radians).
func rot1(a float64) mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return mat3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// rot3 rotates about the Z axis by angle a (radians).
func rot3(a float64) mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return mat3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

func (m mat3) mul(o mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

func (m mat3) transpose() mat3 {
	return mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

func (m mat3) apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
