package ingest

import (
	"database/sql"
	"log"
	"strconv"
	"strings"
	"time"

	"salesapi/database"
	cataloginfra "salesapi/internal/catalog/infrastructure"
	salesinfra "salesapi/internal/sales/infrastructure"
	"salesapi/internal/shared/domain"
	sharedinfra "salesapi/internal/shared/infrastructure"
)

// Service charge un fichier de ventes au format large dans le magasin.
// Chaque ligne est traitée indépendamment: une ligne invalide est
// ignorée sans interrompre les suivantes. Familles et produits sont
// validés avant leurs dépendants; les ventes d'un produit sont
// insérées dans une transaction dédiée.
type Service struct {
	families *cataloginfra.FamilyRepository
	products *cataloginfra.ProductRepository
	sales    *salesinfra.SalesRepository
	uow      sharedinfra.UnitOfWork

	// notifié après insertion de ventes pour un produit
	// (invalidation du cache d'agrégation)
	onProductLoaded func(productID int64)
}

// Report comptabilise l'issue d'un chargement
type Report struct {
	RowsLoaded   int `json:"rows_loaded"`
	RowsSkipped  int `json:"rows_skipped"`
	CellsSkipped int `json:"cells_skipped"`
}

// NewService crée un nouveau service d'ingestion
func NewService(
	families *cataloginfra.FamilyRepository,
	products *cataloginfra.ProductRepository,
	sales *salesinfra.SalesRepository,
	uow sharedinfra.UnitOfWork,
) *Service {
	return &Service{
		families: families,
		products: products,
		sales:    sales,
		uow:      uow,
	}
}

// OnProductLoaded enregistre le callback d'invalidation
func (s *Service) OnProductLoaded(fn func(productID int64)) {
	s.onProductLoaded = fn
}

// monthColumn associe l'index d'une colonne mensuelle à sa date
type monthColumn struct {
	index int
	date  time.Time
}

// LoadFile charge le fichier dans le magasin. Un fichier illisible est
// fatal (DataFormatError); les problèmes par ligne ou par cellule sont
// comptés et journalisés. Les erreurs du magasin remontent telles
// quelles: la façade les classe (violation d'intégrité ou non).
func (s *Service) LoadFile(path string) (*Report, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	months := monthColumns(table.Header)
	report := &Report{}

	for _, row := range table.Rows {
		if err := s.loadRow(row, months, report); err != nil {
			return report, err
		}
	}

	log.Printf("ingest: %d rows loaded, %d rows skipped, %d cells skipped",
		report.RowsLoaded, report.RowsSkipped, report.CellsSkipped)
	return report, nil
}

// monthColumns interprète les en-têtes au-delà des quatre colonnes
// fixes comme des dates année-mois. Un en-tête non interprétable ne
// produit aucune colonne: la cellule correspondante sera ignorée pour
// toutes les lignes.
func monthColumns(header []string) []monthColumn {
	var months []monthColumn
	for i := 4; i < len(header); i++ {
		date, err := domain.ParseYearMonth(strings.TrimSpace(header[i]))
		if err != nil {
			log.Printf("ingest: date parsing error for column %q: %v", header[i], err)
			continue
		}
		months = append(months, monthColumn{index: i, date: date})
	}
	return months
}

// loadRow traite une ligne: résolution ou création de la famille,
// création du produit si sa clé est inconnue (sinon la ligne entière
// est ignorée, l'ingestion est idempotente par produit), puis une
// vente par colonne mensuelle interprétable.
func (s *Service) loadRow(row []string, months []monthColumn, report *Report) error {
	familyName := strings.TrimSpace(row[0])
	if familyName == "" {
		report.RowsSkipped++
		return nil
	}

	family, err := s.families.FindByName(familyName)
	if err != nil {
		return err
	}
	if family == nil {
		// La famille est validée avant tout produit qui la référence
		family, err = s.families.Create(familyName)
		if err != nil {
			return err
		}
	}

	productID, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
	if err != nil {
		log.Printf("ingest: unparseable product id %q, skipping row", row[2])
		report.RowsSkipped++
		return nil
	}

	existing, err := s.products.FindByID(productID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Idempotent mais pas auto-correctif: un prix ou un nom
		// différent à la relecture est ignoré
		log.Printf("ingest: product with id %d already exists, skipping", productID)
		report.RowsSkipped++
		return nil
	}

	price, err := domain.ParsePrice(row[3])
	if err != nil {
		log.Printf("ingest: %v, skipping row", err)
		report.RowsSkipped++
		return nil
	}

	product := &database.Product{
		ID:       productID,
		Name:     strings.TrimSpace(row[1]),
		Price:    price.Amount(),
		FamilyID: family.ID,
	}
	if err := s.products.Create(product); err != nil {
		return err
	}

	// Les ventes du produit partent dans une transaction dédiée:
	// un crash laisse le magasin partiel mais cohérent
	err = s.uow.Execute(func(tx *sql.Tx) error {
		txSales := s.sales.WithTx(tx)
		for _, m := range months {
			var cell string
			if m.index < len(row) {
				cell = row[m.index]
			}
			quantity, err := domain.ParseQuantity(cell)
			if err != nil {
				log.Printf("ingest: %v for product %d column %s, skipping cell",
					err, productID, m.date.Format(domain.YearMonthLayout))
				report.CellsSkipped++
				continue
			}
			if err := txSales.Insert(productID, m.date, quantity.Value()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	report.RowsLoaded++
	if s.onProductLoaded != nil {
		s.onProductLoaded(productID)
	}
	return nil
}
