package forecast

import (
	"math"
	"math/rand"
)

const (
	// fraction des lignes retenues pour l'évaluation
	holdoutFraction = 0.2
	// seed fixe: le découpage est reproductible entre exécutions
	// à données d'entrée identiques
	splitSeed = 42
)

// Split est un découpage entraînement/évaluation figé
type Split struct {
	Train []Observation
	Test  []Observation
}

// SplitDataset mélange les observations avec la seed fixe et retient
// ceil(20%) des lignes pour l'évaluation
func SplitDataset(ds *Dataset) Split {
	n := len(ds.Observations)
	if n == 0 {
		return Split{}
	}

	perm := rand.New(rand.NewSource(splitSeed)).Perm(n)
	nTest := int(math.Ceil(float64(n) * holdoutFraction))

	split := Split{
		Train: make([]Observation, 0, n-nTest),
		Test:  make([]Observation, 0, nTest),
	}
	for i, idx := range perm {
		if i < nTest {
			split.Test = append(split.Test, ds.Observations[idx])
		} else {
			split.Train = append(split.Train, ds.Observations[idx])
		}
	}
	return split
}
