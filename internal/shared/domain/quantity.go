package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Quantity représente une quantité de ventes avec validation
type Quantity struct {
	value int
}

// NewQuantity crée une nouvelle instance de Quantity avec validation
func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value}, nil
}

// MustNewQuantity crée une Quantity en paniquant si invalide
func MustNewQuantity(value int) Quantity {
	q, err := NewQuantity(value)
	if err != nil {
		panic(fmt.Sprintf("invalid quantity: %v", err))
	}
	return q
}

// ParseQuantity interprète une cellule CSV comme une quantité.
// Une cellule vide vaut zéro. Les valeurs décimales sont tronquées
// (les lecteurs de tableurs exportent parfois "30.0").
func ParseQuantity(cell string) (Quantity, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Quantity{}, nil
	}
	if v, err := strconv.Atoi(cell); err == nil {
		return NewQuantity(v)
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("unparseable quantity %q", cell)
	}
	return NewQuantity(int(f))
}

// Value retourne la valeur
func (q Quantity) Value() int {
	return q.value
}

// Add additionne deux quantités
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value + other.value}
}

// IsZero vérifie si la quantité est nulle
func (q Quantity) IsZero() bool {
	return q.value == 0
}
