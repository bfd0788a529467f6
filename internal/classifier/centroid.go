package classifier

// nearestCentroid classifies texts by cosine similarity against fitted
// per-class centroid vectors. It deliberately does not implement
// ProbabilityEstimator; similarity scores are not calibrated and would
// misrepresent confidence.
type nearestCentroid struct {
	vec       *vectorizer
	centroids [][]float64
	norms     []float64
}

func newNearestCentroid(vec *vectorizer, centroids [][]float64) *nearestCentroid {
	norms := make([]float64, len(centroids))
	for class, row := range centroids {
		norms[class] = denseNorm(row)
	}
	return &nearestCentroid{
		vec:       vec,
		centroids: centroids,
		norms:     norms,
	}
}

func (m *nearestCentroid) Predict(texts []string) ([]int, error) {
	indexes := make([]int, len(texts))
	for i, text := range texts {
		features := m.vec.transform(text)

		scores := make([]float64, len(m.centroids))
		for class, row := range m.centroids {
			scores[class] = cosineDense(features, row, m.norms[class])
		}
		indexes[i] = argmax(scores)
	}
	return indexes, nil
}
