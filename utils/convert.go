// SPDX-License-Identifier: EPL-2.0

package utils

// int16Scale is the divisor that maps the int16 range onto [-1, 1).
const int16Scale = 32768.0

// Int16ToFloat32 maps a 16-bit sample onto [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / int16Scale
}

// ScaleFloat32 scales x by 2^(bits-1) and truncates toward zero, the way a
// float sample is widened for integer encoders. The result saturates at the
// bounds of a signed bits-wide integer so 1.0 maps to the positive maximum
// instead of overflowing. bits must be in [2, 32].
func ScaleFloat32(x float32, bits int) int32 {
	limit := float64(int64(1) << (bits - 1))
	v := float64(x) * limit

	switch {
	case v != v: // NaN
		return 0
	case v >= limit:
		return int32(limit - 1)
	case v < -limit:
		return int32(-limit)
	}

	return int32(v)
}
