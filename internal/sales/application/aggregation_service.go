package application

import (
	"time"

	"salesapi/internal/sales/infrastructure"
	"salesapi/internal/shared/domain"
	sharedinfra "salesapi/internal/shared/infrastructure"
)

const lastYearCacheTTL = 5 * time.Minute

// AggregationService totaux de ventes sur fenêtre glissante.
// Le total "dernière année" est mémoïsé; l'ingestion invalide l'entrée
// du produit concerné.
type AggregationService struct {
	repo  *infrastructure.SalesRepository
	cache sharedinfra.Cache
	now   func() time.Time
}

// NewAggregationService crée une nouvelle instance de AggregationService
func NewAggregationService(repo *infrastructure.SalesRepository, cache sharedinfra.Cache) *AggregationService {
	return &AggregationService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// WithClock remplace l'horloge (tests de la fenêtre glissante)
func (s *AggregationService) WithClock(now func() time.Time) *AggregationService {
	s.now = now
	return s
}

// TotalQuantitySince somme les quantités d'un produit depuis une date
func (s *AggregationService) TotalQuantitySince(productID int64, since time.Time) (int, error) {
	return s.repo.SumQuantitySince(productID, since)
}

// TotalLastYear somme les quantités du produit sur exactement une
// année calendaire avant maintenant, jour du mois préservé
func (s *AggregationService) TotalLastYear(productID int64) (int, error) {
	key := lastYearKey(productID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(int), nil
	}

	window := domain.NewTrailingYear(s.now())
	total, err := s.repo.SumQuantitySince(productID, window.Start())
	if err != nil {
		return 0, err
	}

	s.cache.Set(key, total, lastYearCacheTTL)
	return total, nil
}

// Invalidate retire le total mémoïsé d'un produit (appelé par
// l'ingestion après insertion de nouvelles ventes)
func (s *AggregationService) Invalidate(productID int64) {
	s.cache.Delete(lastYearKey(productID))
}

func lastYearKey(productID int64) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("sales").
		Add("last-year").
		AddInt64(productID).
		Build()
}
