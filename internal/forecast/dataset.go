package forecast

import (
	"fmt"
	"sort"
	"time"

	salesinfra "salesapi/internal/sales/infrastructure"
	"salesapi/internal/shared/domain"
)

// Observation est une ligne de la table de features: une vente
// mensuelle jointe au prix unitaire de son produit
type Observation struct {
	ProductID      int64
	Date           time.Time
	Quantity       int
	Price          float64
	Revenue        float64
	DaysSinceStart int
}

// Dataset est la table de features complète, triée par
// (product_id, date) croissants
type Dataset struct {
	Observations []Observation
}

// LoadDataset joint les ventes au prix unitaire, calcule le revenu et
// le décalage en jours depuis la plus ancienne date observée (une
// seule époque globale, pas par produit). Contrairement à l'ingestion,
// aucun échec partiel n'est toléré ici.
func LoadDataset(repo *salesinfra.SalesRepository) (*Dataset, error) {
	rows, err := repo.ListAllWithPrice()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	ds := &Dataset{Observations: make([]Observation, 0, len(rows))}
	if len(rows) == 0 {
		return ds, nil
	}

	epoch := rows[0].Date
	for _, r := range rows {
		if r.Date.Before(epoch) {
			epoch = r.Date
		}
	}

	for _, r := range rows {
		ds.Observations = append(ds.Observations, Observation{
			ProductID:      r.ProductID,
			Date:           r.Date,
			Quantity:       r.Quantity,
			Price:          r.Price,
			Revenue:        float64(r.Quantity) * r.Price,
			DaysSinceStart: int(r.Date.Sub(epoch).Hours() / 24),
		})
	}

	sort.SliceStable(ds.Observations, func(i, j int) bool {
		a, b := ds.Observations[i], ds.Observations[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		return a.Date.Before(b.Date)
	})

	return ds, nil
}
