// Package vector provides similarity helpers for embedding vectors.
package vector

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, in [-1, 1].
// Mismatched lengths, empty, or zero-norm vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	normA := L2Norm(a)
	normB := L2Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return InnerProduct(a, b) / (normA * normB)
}

// InnerProduct returns the inner product of two vectors (for normalized vectors
// equals cosine similarity). Mismatched lengths or empty vectors yield 0.
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}
