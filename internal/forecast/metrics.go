package forecast

import (
	"fmt"
	"math"

	"salesapi/internal/shared/domain"
)

// Metrics regroupe les métriques de régression standard calculées sur
// la partition d'évaluation
type Metrics struct {
	MAE  float64 `json:"mae"`
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
}

// EvaluateModel calcule MAE, MSE et RMSE du modèle sur la partition
// d'évaluation. Échoue avec ErrModelNotTrained si le modèle manque.
func EvaluateModel(m *TrainedModel, split Split) (Metrics, error) {
	if m == nil {
		return Metrics{}, domain.ErrModelNotTrained
	}
	if len(split.Test) == 0 {
		return Metrics{}, fmt.Errorf("%w: empty test split", domain.ErrDataUnavailable)
	}

	var sumAbs, sumSq float64
	for _, o := range split.Test {
		residual := m.target.valueOf(o) - m.Predict(o)
		sumAbs += math.Abs(residual)
		sumSq += residual * residual
	}

	n := float64(len(split.Test))
	mse := sumSq / n
	return Metrics{
		MAE:  sumAbs / n,
		MSE:  mse,
		RMSE: math.Sqrt(mse),
	}, nil
}

// String met en forme le résumé lisible d'une évaluation
func (m Metrics) String() string {
	return fmt.Sprintf("MAE: %.4f, MSE: %.4f, RMSE: %.4f", m.MAE, m.MSE, m.RMSE)
}
