package forecast

import (
	"errors"
	"fmt"
	"log"

	salesinfra "salesapi/internal/sales/infrastructure"
	"salesapi/internal/shared/domain"
)

// Predictor enchaîne les étapes du pipeline de prévision:
// chargement, entraînement des deux cibles (indépendant et sans ordre
// imposé), évaluation, rapport. Les résultats d'étape sont des valeurs
// immuables; le Predictor ne fait que les retenir, il ne doit pas être
// partagé entre appelants concurrents.
type Predictor struct {
	repo       *salesinfra.SalesRepository
	outputPath string

	split         *Split
	quantityModel *TrainedModel
	revenueModel  *TrainedModel
}

// NewPredictor crée un pipeline lié au repository de ventes.
// outputPath est l'emplacement du rapport CSV.
func NewPredictor(repo *salesinfra.SalesRepository, outputPath string) *Predictor {
	return &Predictor{
		repo:       repo,
		outputPath: outputPath,
	}
}

// Load construit la table de features et fige le découpage 80/20
func (p *Predictor) Load() error {
	ds, err := LoadDataset(p.repo)
	if err != nil {
		return err
	}
	if len(ds.Observations) == 0 {
		return fmt.Errorf("%w: no sales rows", domain.ErrDataUnavailable)
	}
	split := SplitDataset(ds)
	p.split = &split
	return nil
}

// TrainQuantity entraîne le modèle de quantités
func (p *Predictor) TrainQuantity() error {
	model, err := p.train(TargetQuantity)
	if err != nil {
		return err
	}
	p.quantityModel = model
	return nil
}

// TrainRevenue entraîne le modèle de revenus
func (p *Predictor) TrainRevenue() error {
	model, err := p.train(TargetRevenue)
	if err != nil {
		return err
	}
	p.revenueModel = model
	return nil
}

func (p *Predictor) train(target Target) (*TrainedModel, error) {
	if p.split == nil {
		return nil, fmt.Errorf("%w: sales data not loaded", domain.ErrDataUnavailable)
	}
	return TrainModel(*p.split, target)
}

// EvaluateQuantity évalue le modèle de quantités sur la partition
// d'évaluation. Échoue avec ErrModelNotTrained avant entraînement,
// sans corrompre l'état: entraîner puis réessayer fonctionne.
func (p *Predictor) EvaluateQuantity() (Metrics, error) {
	return p.evaluate(p.quantityModel)
}

// EvaluateRevenue évalue le modèle de revenus
func (p *Predictor) EvaluateRevenue() (Metrics, error) {
	return p.evaluate(p.revenueModel)
}

func (p *Predictor) evaluate(model *TrainedModel) (Metrics, error) {
	if model == nil || p.split == nil {
		return Metrics{}, domain.ErrModelNotTrained
	}
	return EvaluateModel(model, *p.split)
}

// GenerateReport construit le rapport de comparaison, le persiste en
// CSV et le retourne. Les deux modèles doivent avoir été entraînés.
func (p *Predictor) GenerateReport() (*Report, error) {
	if p.split == nil {
		return nil, domain.ErrModelNotTrained
	}
	report, err := BuildReport(p.quantityModel, p.revenueModel, *p.split)
	if err != nil {
		return nil, err
	}
	if err := report.WriteCSVFile(p.outputPath); err != nil {
		return nil, err
	}
	return report, nil
}

// Run orchestre le pipeline complet. Le premier échec interrompt les
// étapes restantes et remonte tel quel.
func (p *Predictor) Run() error {
	if err := p.Load(); err != nil {
		return err
	}
	if err := p.TrainQuantity(); err != nil {
		return err
	}
	if err := p.TrainRevenue(); err != nil {
		return err
	}

	quantityMetrics, err := p.EvaluateQuantity()
	if err != nil {
		return err
	}
	log.Printf("Model Evaluation Report (quantity): %s", quantityMetrics)

	revenueMetrics, err := p.EvaluateRevenue()
	if err != nil {
		return err
	}
	log.Printf("Model Evaluation Report (revenue): %s", revenueMetrics)

	report, err := p.GenerateReport()
	if err != nil {
		return err
	}
	log.Printf("Prediction report: %d rows written to %s", len(report.Rows), p.outputPath)
	return nil
}

// IsNotTrained vérifie qu'une erreur est un défaut d'entraînement
func IsNotTrained(err error) bool {
	return errors.Is(err, domain.ErrModelNotTrained)
}
