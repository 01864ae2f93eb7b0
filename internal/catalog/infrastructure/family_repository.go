package infrastructure

import (
	"database/sql"
	"errors"

	"salesapi/database"
	"salesapi/internal/shared/infrastructure"
)

// FamilyRepository accès aux familles de produits. L'absence d'une
// famille est un résultat (nil, nil), pas une erreur: la traduction en
// 404 appartient à la façade HTTP.
type FamilyRepository struct {
	infrastructure.BaseRepository
}

// NewFamilyRepository crée un nouveau repository pour les familles
func NewFamilyRepository(db *sql.DB, dialect database.Dialect) *FamilyRepository {
	return &FamilyRepository{
		BaseRepository: infrastructure.NewBaseRepository(db, dialect),
	}
}

// FindByName trouve une famille par son nom (sensible à la casse)
func (r *FamilyRepository) FindByName(name string) (*database.Family, error) {
	query := `SELECT id, name FROM families WHERE name = ?`

	var f database.Family
	err := r.QueryRow(query, name).Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindByID trouve une famille par son identifiant
func (r *FamilyRepository) FindByID(id int64) (*database.Family, error) {
	query := `SELECT id, name FROM families WHERE id = ?`

	var f database.Family
	err := r.QueryRow(query, id).Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create insère une famille et retourne sa clé générée
func (r *FamilyRepository) Create(name string) (*database.Family, error) {
	query := `INSERT INTO families (name) VALUES (?) RETURNING id`

	f := database.Family{Name: name}
	if err := r.QueryRow(query, name).Scan(&f.ID); err != nil {
		return nil, err
	}
	return &f, nil
}
