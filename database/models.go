package database

import "time"

// ============================================================================
// MODÈLES DE DONNÉES - Base normalisée
// ============================================================================

// Family - Famille de produits (nom unique)
type Family struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product - Produit; l'identifiant est fourni par l'appelant,
// jamais auto-généré
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	FamilyID int64   `json:"family_id"`
}

// Sales - Une observation mensuelle de ventes pour un produit
type Sales struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Date      time.Time `json:"date"`
	Quantity  int       `json:"quantity"`
}

// SaleWithPrice - Vente jointe avec le prix unitaire du produit
// (requête d'alimentation du pipeline de prévision)
type SaleWithPrice struct {
	ProductID int64     `json:"product_id"`
	Date      time.Time `json:"date"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}
