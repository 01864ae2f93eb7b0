package infrastructure

import (
	"database/sql"
	"fmt"
	"time"

	"salesapi/database"
	"salesapi/internal/shared/domain"
	"salesapi/internal/shared/infrastructure"
)

// SalesRepository accès aux observations mensuelles de ventes.
// Les lignes sont immuables: insertion et lecture seulement.
type SalesRepository struct {
	infrastructure.BaseRepository
}

// NewSalesRepository crée un nouveau repository pour les ventes
func NewSalesRepository(db *sql.DB, dialect database.Dialect) *SalesRepository {
	return &SalesRepository{
		BaseRepository: infrastructure.NewBaseRepository(db, dialect),
	}
}

// WithTx retourne une copie du repository liée à la transaction
func (r *SalesRepository) WithTx(tx *sql.Tx) *SalesRepository {
	return &SalesRepository{BaseRepository: r.BaseRepository.WithTx(tx)}
}

// Insert ajoute une observation de vente
func (r *SalesRepository) Insert(productID int64, date time.Time, quantity int) error {
	query := `INSERT INTO sales (product_id, date, quantity) VALUES (?, ?, ?)`

	_, err := r.Exec(query, productID, date.Format(domain.DateLayout), quantity)
	return err
}

// SumQuantitySince somme les quantités vendues d'un produit depuis une
// date incluse. Retourne 0 (pas une erreur) pour un produit inconnu ou
// sans vente qualifiante.
func (r *SalesRepository) SumQuantitySince(productID int64, since time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE product_id = ? AND date >= ?
	`

	var total int
	err := r.QueryRow(query, productID, since.Format(domain.DateLayout)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListAllWithPrice joint chaque vente au prix unitaire courant de son
// produit, triée par (product_id, date) croissants. C'est la requête
// d'alimentation du pipeline de prévision.
func (r *SalesRepository) ListAllWithPrice() ([]database.SaleWithPrice, error) {
	query := `
		SELECT s.product_id, s.date, s.quantity, p.price
		FROM sales s
		INNER JOIN products p ON s.product_id = p.id
		ORDER BY s.product_id, s.date
	`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []database.SaleWithPrice
	for rows.Next() {
		var (
			sp      database.SaleWithPrice
			rawDate string
		)
		if err := rows.Scan(&sp.ProductID, &rawDate, &sp.Quantity, &sp.Price); err != nil {
			return nil, err
		}
		sp.Date, err = time.Parse(domain.DateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("invalid stored date %q: %w", rawDate, err)
		}
		result = append(result, sp)
	}
	return result, rows.Err()
}
