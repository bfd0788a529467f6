package classifier

import "math"

// naiveBayes scores texts with fitted multinomial naive Bayes
// parameters. Scores are joint log-likelihoods; PredictProba converts
// them to a distribution with a stable softmax.
type naiveBayes struct {
	vec            *vectorizer
	classLogPrior  []float64
	featureLogProb [][]float64
}

func newNaiveBayes(vec *vectorizer, spec *NaiveBayesSpec) *naiveBayes {
	return &naiveBayes{
		vec:            vec,
		classLogPrior:  spec.ClassLogPrior,
		featureLogProb: spec.FeatureLogProb,
	}
}

func (m *naiveBayes) Predict(texts []string) ([]int, error) {
	indexes := make([]int, len(texts))
	for i, text := range texts {
		indexes[i] = argmax(m.scores(text))
	}
	return indexes, nil
}

func (m *naiveBayes) PredictProba(texts []string) ([][]float64, error) {
	probs := make([][]float64, len(texts))
	for i, text := range texts {
		probs[i] = softmax(m.scores(text))
	}
	return probs, nil
}

func (m *naiveBayes) scores(text string) []float64 {
	features := m.vec.transform(text)

	scores := make([]float64, len(m.classLogPrior))
	for class := range scores {
		scores[class] = m.classLogPrior[class] + dotDense(features, m.featureLogProb[class])
	}
	return scores
}

// softmax exponentiates shifted log scores so large magnitudes cannot
// overflow, then normalizes to a probability distribution.
func softmax(scores []float64) []float64 {
	max := scores[argmax(scores)]

	probs := make([]float64, len(scores))
	var sum float64
	for i, score := range scores {
		probs[i] = math.Exp(score - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
