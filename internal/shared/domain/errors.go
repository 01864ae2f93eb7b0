package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Taxonomie fermée des erreurs du coeur. L'ingestion récupère ligne à
// ligne; tout le reste échoue immédiatement et remonte jusqu'à la
// frontière la plus proche (handler HTTP ou orchestrateur du pipeline).

// DataFormatError - fichier illisible sous tous les couples
// (encodage, délimiteur); fatal pour l'ingestion entière
type DataFormatError struct {
	Path string
	Err  error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to read file %s with provided encodings and delimiters: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unable to read file %s with provided encodings and delimiters", e.Path)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// ErrDataUnavailable - échec du chargement des données de prévision
var ErrDataUnavailable = errors.New("sales data unavailable")

// ErrModelNotTrained - évaluation ou rapport demandé avant entraînement
var ErrModelNotTrained = errors.New("model not trained")

// IsIntegrityViolation détecte une violation de clé primaire ou de
// contrainte d'unicité, pour les deux drivers supportés.
// PostgreSQL: code 23505 (unique_violation). SQLite: le driver modernc
// ne retourne que le message de la contrainte.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
