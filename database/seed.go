package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"
)

// Noms de référence pour la génération de données d'exemple
var (
	seedFamilies = []string{
		"Electronics", "Appliances", "Furniture", "Sports", "Toys",
		"Garden", "Books", "Beauty", "Grocery", "Automotive",
	}
	seedProductNames = []string{
		"Smartwatch", "Headphones", "Blender", "Desk Lamp", "Backpack",
		"Coffee Maker", "Monitor", "Keyboard", "Sneakers", "Drone",
		"Tablet", "Speaker", "Vacuum", "Chair", "Notebook",
	}
)

// GenerateSampleCSV écrit un fichier de ventes au format large attendu
// par l'ingestion: quatre colonnes fixes puis une colonne par mois.
// Le générateur est déterministe pour une seed donnée.
func GenerateSampleCSV(w io.Writer, families, productsPerFamily, months int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	writer := csv.NewWriter(w)

	if families > len(seedFamilies) {
		families = len(seedFamilies)
	}

	// En-tête: colonnes fixes puis colonnes année-mois, la plus
	// ancienne en premier
	header := []string{"Family", "Product Name", "Product ID", "Price"}
	first := time.Now().AddDate(0, -months, 0)
	for m := 0; m < months; m++ {
		header = append(header, first.AddDate(0, m, 0).Format("2006-01"))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	productID := 1
	for f := 0; f < families; f++ {
		for p := 0; p < productsPerFamily; p++ {
			name := seedProductNames[rng.Intn(len(seedProductNames))]
			price := 5 + rng.Float64()*495

			row := []string{
				seedFamilies[f],
				fmt.Sprintf("%s %d", name, productID),
				strconv.Itoa(productID),
				fmt.Sprintf("%.2f", price),
			}
			for m := 0; m < months; m++ {
				row = append(row, strconv.Itoa(rng.Intn(120)))
			}
			if err := writer.Write(row); err != nil {
				return err
			}
			productID++
		}
	}

	writer.Flush()
	return writer.Error()
}
