package infrastructure

import (
	"database/sql"
	"errors"

	"salesapi/database"
	"salesapi/internal/shared/infrastructure"
)

// ProductRepository accès aux produits. La clé des produits est
// fournie par l'appelant, jamais générée.
type ProductRepository struct {
	infrastructure.BaseRepository
}

// NewProductRepository crée un nouveau repository pour les produits
func NewProductRepository(db *sql.DB, dialect database.Dialect) *ProductRepository {
	return &ProductRepository{
		BaseRepository: infrastructure.NewBaseRepository(db, dialect),
	}
}

// FindByID trouve un produit par son identifiant; (nil, nil) si absent
func (r *ProductRepository) FindByID(id int64) (*database.Product, error) {
	query := `SELECT id, name, price, family_id FROM products WHERE id = ?`

	var p database.Product
	err := r.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Price, &p.FamilyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create insère un produit avec sa clé fournie par l'appelant
func (r *ProductRepository) Create(p *database.Product) error {
	query := `INSERT INTO products (id, name, price, family_id) VALUES (?, ?, ?, ?)`

	_, err := r.Exec(query, p.ID, p.Name, p.Price, p.FamilyID)
	return err
}

// UpdatePrice modifie le prix d'un produit. Retourne false sans erreur
// si le produit n'existe pas; le magasin reste inchangé.
func (r *ProductRepository) UpdatePrice(id int64, price float64) (bool, error) {
	query := `UPDATE products SET price = ? WHERE id = ?`

	res, err := r.Exec(query, price, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReassignFamily repointe un produit vers une autre famille.
// Retourne false sans erreur si le produit n'existe pas.
func (r *ProductRepository) ReassignFamily(productID, familyID int64) (bool, error) {
	query := `UPDATE products SET family_id = ? WHERE id = ?`

	res, err := r.Exec(query, familyID, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
