package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FormatV1 is the artifact format identifier this package reads.
const FormatV1 = "verdict/v1"

// Supported artifact algorithms.
const (
	AlgorithmNaiveBayes      = "multinomial_nb"
	AlgorithmNearestCentroid = "nearest_centroid"
)

// Artifact is the on-disk JSON model bundle produced by the training
// pipeline. Exactly one algorithm payload is populated, selected by
// the Algorithm field.
type Artifact struct {
	Format     string          `json:"format"`
	Algorithm  string          `json:"algorithm"`
	TrainedAt  string          `json:"trained_at,omitempty"`
	Vectorizer VectorizerSpec  `json:"vectorizer"`
	NaiveBayes *NaiveBayesSpec `json:"naive_bayes,omitempty"`
	Centroids  [][]float64     `json:"centroids,omitempty"`
}

// VectorizerSpec holds the fitted TF-IDF vocabulary and weighting options.
type VectorizerSpec struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Lowercase   bool           `json:"lowercase"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
}

// NaiveBayesSpec holds fitted multinomial naive Bayes parameters.
// FeatureLogProb is indexed [class][feature].
type NaiveBayesSpec struct {
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// ReadArtifact reads and validates the artifact at path. A missing file
// maps to ErrArtifactMissing; malformed or inconsistent content maps to
// ErrArtifactInvalid.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactInvalid, err)
	}

	if err := a.validate(); err != nil {
		return nil, err
	}

	return &a, nil
}

func (a *Artifact) validate() error {
	if a.Format != FormatV1 {
		return fmt.Errorf("%w: unsupported format %q", ErrArtifactInvalid, a.Format)
	}
	if len(a.Vectorizer.Vocabulary) == 0 {
		return fmt.Errorf("%w: empty vocabulary", ErrArtifactInvalid)
	}
	if len(a.Vectorizer.IDF) != len(a.Vectorizer.Vocabulary) {
		return fmt.Errorf(
			"%w: idf length %d does not match vocabulary size %d",
			ErrArtifactInvalid, len(a.Vectorizer.IDF), len(a.Vectorizer.Vocabulary),
		)
	}
	for term, index := range a.Vectorizer.Vocabulary {
		if index < 0 || index >= len(a.Vectorizer.IDF) {
			return fmt.Errorf("%w: term %q index %d out of range", ErrArtifactInvalid, term, index)
		}
	}

	switch a.Algorithm {
	case AlgorithmNaiveBayes:
		return a.validateNaiveBayes()
	case AlgorithmNearestCentroid:
		return a.validateCentroids()
	default:
		return fmt.Errorf("%w: unsupported algorithm %q", ErrArtifactInvalid, a.Algorithm)
	}
}

func (a *Artifact) validateNaiveBayes() error {
	nb := a.NaiveBayes
	if nb == nil {
		return fmt.Errorf("%w: missing naive_bayes parameters", ErrArtifactInvalid)
	}
	if len(nb.ClassLogPrior) == 0 {
		return fmt.Errorf("%w: empty class_log_prior", ErrArtifactInvalid)
	}
	if len(nb.FeatureLogProb) != len(nb.ClassLogPrior) {
		return fmt.Errorf(
			"%w: feature_log_prob has %d classes, class_log_prior has %d",
			ErrArtifactInvalid, len(nb.FeatureLogProb), len(nb.ClassLogPrior),
		)
	}
	for class, row := range nb.FeatureLogProb {
		if len(row) != len(a.Vectorizer.Vocabulary) {
			return fmt.Errorf(
				"%w: feature_log_prob class %d has %d features, vocabulary has %d",
				ErrArtifactInvalid, class, len(row), len(a.Vectorizer.Vocabulary),
			)
		}
	}
	return nil
}

func (a *Artifact) validateCentroids() error {
	if len(a.Centroids) == 0 {
		return fmt.Errorf("%w: empty centroids", ErrArtifactInvalid)
	}
	for class, row := range a.Centroids {
		if len(row) != len(a.Vectorizer.Vocabulary) {
			return fmt.Errorf(
				"%w: centroid %d has %d features, vocabulary has %d",
				ErrArtifactInvalid, class, len(row), len(a.Vectorizer.Vocabulary),
			)
		}
	}
	return nil
}

// Classes returns the number of output classes the artifact encodes.
func (a *Artifact) Classes() int {
	switch a.Algorithm {
	case AlgorithmNaiveBayes:
		return len(a.NaiveBayes.ClassLogPrior)
	case AlgorithmNearestCentroid:
		return len(a.Centroids)
	default:
		return 0
	}
}
