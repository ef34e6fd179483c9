package quantity

import "log"

// Broadcasting follows the right-aligned rule: trailing axes are matched
// first, and an axis of size 1 stretches to the size of its counterpart.

func broadcastShape(a, b []int) []int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		case db == 1:
			out[n-i] = da
		default:
			log.Panicf("cannot broadcast shapes %v and %v", a, b)
		}
	}
	return out
}

func shapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// broadcastStrides returns per-axis element strides for reading an array of
// the given shape as if it had the (longer or equal) out shape. Stretched
// axes get stride 0.
func broadcastStrides(shape, out []int) []int {
	strides := make([]int, len(out))
	stride := 1
	for i := 1; i <= len(shape); i++ {
		d := shape[len(shape)-i]
		if d != 1 {
			strides[len(out)-i] = stride
		}
		stride *= d
	}
	return strides
}

// zip applies f elementwise over the broadcast of a and b, returning the
// result values and the broadcast shape.
func zip(a, b Quantity, f func(x, y float64) float64) ([]float64, []int) {
	shape := broadcastShape(a.shape, b.shape)
	sa := broadcastStrides(a.shape, shape)
	sb := broadcastStrides(b.shape, shape)

	out := make([]float64, shapeSize(shape))
	idx := make([]int, len(shape))
	offA, offB := 0, 0
	for i := range out {
		out[i] = f(a.data[offA], b.data[offB])
		for ax := len(shape) - 1; ax >= 0; ax-- {
			idx[ax]++
			offA += sa[ax]
			offB += sb[ax]
			if idx[ax] < shape[ax] {
				break
			}
			idx[ax] = 0
			offA -= sa[ax] * shape[ax]
			offB -= sb[ax] * shape[ax]
		}
	}
	return out, shape
}
