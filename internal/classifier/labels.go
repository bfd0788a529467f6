package classifier

import "fmt"

// Display labels for the two trained classes.
const (
	LabelFake = "FAKE"
	LabelReal = "REAL"
)

// LabelMap resolves predicted class indexes to display labels.
type LabelMap map[int]string

// Labels returns the fixed index-to-label mapping the models are
// trained against: 0 is FAKE, 1 is REAL. The mapping is independent of
// the artifact contents.
func Labels() LabelMap {
	return LabelMap{
		0: LabelFake,
		1: LabelReal,
	}
}

// Label resolves a class index, returning ErrUnknownClass for indexes
// outside the mapping.
func (m LabelMap) Label(index int) (string, error) {
	label, ok := m[index]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownClass, index)
	}
	return label, nil
}
