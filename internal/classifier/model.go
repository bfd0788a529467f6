// Package classifier loads serialized text classification models and
// evaluates them against raw article text. Artifacts are JSON bundles
// holding a fitted TF-IDF vocabulary plus the parameters of one
// classification algorithm.
package classifier

import "fmt"

// Model produces class indexes for a batch of input texts.
type Model interface {
	Predict(texts []string) ([]int, error)
}

// ProbabilityEstimator is implemented by models that can produce a
// per-class probability distribution alongside the predicted index.
// Callers must treat its absence as reduced output, not failure.
type ProbabilityEstimator interface {
	PredictProba(texts []string) ([][]float64, error)
}

// BuildModel constructs the model implementation described by a
// validated artifact.
func BuildModel(a *Artifact) (Model, error) {
	vec := newVectorizer(a.Vectorizer)

	switch a.Algorithm {
	case AlgorithmNaiveBayes:
		return newNaiveBayes(vec, a.NaiveBayes), nil
	case AlgorithmNearestCentroid:
		return newNearestCentroid(vec, a.Centroids), nil
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrArtifactInvalid, a.Algorithm)
	}
}

func argmax(scores []float64) int {
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return best
}
