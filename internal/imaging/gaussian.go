package imaging

import "math"

// GaussianKernel returns a normalized 1D Gaussian kernel for sigma.
//
// The kernel is truncated at 4 standard deviations, so its length is
// 2*ceil(4*sigma)+1. A non-positive sigma yields the identity kernel [1].
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(4 * sigma))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur smooths a row-major width x height scalar field with a
// separable Gaussian of the given sigma and returns the result as a new slice.
//
// The field is convolved horizontally and then vertically with the kernel from
// GaussianKernel. Border samples use clamped (replicated) edge values.
func GaussianBlur(field []float64, width, height int, sigma float64) []float64 {
	kernel := GaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := make([]float64, len(field))
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				px := clamp(x+k, 0, width-1)
				sum += field[row+px] * kernel[k+radius]
			}
			tmp[row+x] = sum
		}
	}

	result := make([]float64, len(field))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				py := clamp(y+k, 0, height-1)
				sum += tmp[py*width+x] * kernel[k+radius]
			}
			result[y*width+x] = sum
		}
	}
	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
