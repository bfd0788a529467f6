package classifier

import (
	"math"
	"strings"
	"unicode"
)

// termVector is a sparse TF-IDF vector keyed by vocabulary index.
type termVector map[int]float64

// vectorizer transforms raw text into TF-IDF vectors using a fitted
// vocabulary. Terms outside the vocabulary are dropped.
type vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	lowercase  bool
	sublinear  bool
	normalize  bool
}

func newVectorizer(spec VectorizerSpec) *vectorizer {
	return &vectorizer{
		vocabulary: spec.Vocabulary,
		idf:        spec.IDF,
		lowercase:  spec.Lowercase,
		sublinear:  spec.SublinearTF,
		normalize:  spec.Norm == "l2",
	}
}

func (v *vectorizer) transform(text string) termVector {
	counts := make(map[int]int)
	for _, term := range tokenize(text, v.lowercase) {
		if index, ok := v.vocabulary[term]; ok {
			counts[index]++
		}
	}

	vec := make(termVector, len(counts))
	for index, n := range counts {
		tf := float64(n)
		if v.sublinear {
			tf = 1 + math.Log(tf)
		}
		vec[index] = tf * v.idf[index]
	}

	if v.normalize {
		normalizeL2(vec)
	}
	return vec
}

// tokenize splits text on any rune that is neither a letter nor a digit.
func tokenize(text string, lowercase bool) []string {
	if lowercase {
		text = strings.ToLower(text)
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalizeL2(vec termVector) {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for index, w := range vec {
		vec[index] = w / norm
	}
}

// dotDense computes the dot product of a sparse vector with a dense row.
func dotDense(vec termVector, row []float64) float64 {
	var sum float64
	for index, w := range vec {
		sum += w * row[index]
	}
	return sum
}

// cosineDense computes cosine similarity between a sparse vector and a
// dense row with a precomputed L2 norm. Zero vectors yield zero.
func cosineDense(vec termVector, row []float64, rowNorm float64) float64 {
	if rowNorm == 0 {
		return 0
	}

	var dot, sum float64
	for index, w := range vec {
		dot += w * row[index]
		sum += w * w
	}
	if sum == 0 {
		return 0
	}

	return dot / (math.Sqrt(sum) * rowNorm)
}

func denseNorm(row []float64) float64 {
	var sum float64
	for _, w := range row {
		sum += w * w
	}
	return math.Sqrt(sum)
}
