package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price représente un prix unitaire avec garanties d'invariants.
// Le magasin est mono-devise; le montant reste un float64 car il
// alimente directement les features du pipeline de prévision.
type Price struct {
	amount float64
}

// NewPrice crée une nouvelle instance de Price avec validation
func NewPrice(amount float64) (Price, error) {
	if amount < 0 {
		return Price{}, errors.New("price cannot be negative")
	}
	return Price{amount: amount}, nil
}

// ParsePrice interprète une cellule CSV comme un prix unitaire
func ParsePrice(cell string) (Price, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Price{}, errors.New("price cannot be empty")
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Price{}, fmt.Errorf("unparseable price %q", cell)
	}
	return NewPrice(f)
}

// Amount retourne le montant
func (p Price) Amount() float64 {
	return p.amount
}

// Multiply multiplie le prix par une quantité (revenu d'une vente)
func (p Price) Multiply(q Quantity) float64 {
	return p.amount * float64(q.Value())
}

// IsZero vérifie si le montant est zéro
func (p Price) IsZero() bool {
	return p.amount == 0
}
