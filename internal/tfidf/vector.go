package tfidf

import "math"

// Vector is a sparse weight vector. Indices are strictly increasing and
// Values holds the weight at the matching position.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero entry.
func (v Vector) IsZero() bool { return len(v.Indices) == 0 }

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func Dot(a, b Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Dense expands v into a slice of the given dimension.
func (v Vector) Dense(dimension int) []float64 {
	out := make([]float64, dimension)
	for k, idx := range v.Indices {
		if idx < dimension {
			out[idx] = v.Values[k]
		}
	}
	return out
}
