package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Target sélectionne la variable expliquée d'un modèle
type Target string

const (
	TargetQuantity Target = "quantity"
	TargetRevenue  Target = "revenue"
)

func (t Target) valueOf(o Observation) float64 {
	if t == TargetRevenue {
		return o.Revenue
	}
	return float64(o.Quantity)
}

// TrainedModel est une régression linéaire ajustée par moindres
// carrés ordinaires. Régresseurs: jours depuis l'époque et product_id
// brut (simplification assumée: pas de one-hot).
type TrainedModel struct {
	target    Target
	intercept float64
	coefDays  float64
	coefID    float64
}

// Target retourne la variable expliquée du modèle
func (m *TrainedModel) Target() Target {
	return m.target
}

// TrainModel ajuste le modèle sur la partition d'entraînement par
// décomposition QR (équivalent aux coefficients de l'équation normale,
// sans régularisation)
func TrainModel(split Split, target Target) (*TrainedModel, error) {
	n := len(split.Train)
	if n < 3 {
		return nil, fmt.Errorf("not enough training rows: %d", n)
	}

	x := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i, o := range split.Train {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(o.DaysSinceStart))
		x.Set(i, 2, float64(o.ProductID))
		y.SetVec(i, target.valueOf(o))
	}

	var qr mat.QR
	qr.Factorize(x)

	beta := mat.NewVecDense(3, nil)
	if err := qr.SolveVecTo(beta, false, y); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}

	return &TrainedModel{
		target:    target,
		intercept: beta.AtVec(0),
		coefDays:  beta.AtVec(1),
		coefID:    beta.AtVec(2),
	}, nil
}

// Predict retourne la valeur prédite pour une observation
func (m *TrainedModel) Predict(o Observation) float64 {
	return m.intercept + m.coefDays*float64(o.DaysSinceStart) + m.coefID*float64(o.ProductID)
}
