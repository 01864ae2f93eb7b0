package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"salesapi/database"
	cataloginfra "salesapi/internal/catalog/infrastructure"
	"salesapi/internal/ingest"
	salesinfra "salesapi/internal/sales/infrastructure"
	sharedinfra "salesapi/internal/shared/infrastructure"
)

// Génère un fichier de ventes d'exemple et l'ingère par le même
// chemin que l'endpoint /load-data/.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment defaults")
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if err := database.Init(dsn); err != nil {
			log.Fatal("database connection failed: ", err)
		}
	} else {
		if err := database.InitSQLite(getEnv("SQLITE_PATH", "sales.db")); err != nil {
			log.Fatal("sqlite open failed: ", err)
		}
	}
	defer database.Close()

	families, _ := strconv.Atoi(getEnv("SEED_FAMILIES", "5"))
	products, _ := strconv.Atoi(getEnv("SEED_PRODUCTS_PER_FAMILY", "10"))
	months, _ := strconv.Atoi(getEnv("SEED_MONTHS", "24"))

	path := filepath.Join(os.TempDir(), "seed-sales.csv")
	f, err := os.Create(path)
	if err != nil {
		log.Fatal("creating seed file: ", err)
	}
	if err := database.GenerateSampleCSV(f, families, products, months, 1); err != nil {
		f.Close()
		log.Fatal("generating seed file: ", err)
	}
	f.Close()
	defer os.Remove(path)

	svc := ingest.NewService(
		cataloginfra.NewFamilyRepository(database.DB, database.Driver),
		cataloginfra.NewProductRepository(database.DB, database.Driver),
		salesinfra.NewSalesRepository(database.DB, database.Driver),
		sharedinfra.NewUnitOfWork(database.DB),
	)

	report, err := svc.LoadFile(path)
	if err != nil {
		log.Fatal("seed load failed: ", err)
	}

	fmt.Printf("seed complete: %d rows loaded, %d rows skipped, %d cells skipped\n",
		report.RowsLoaded, report.RowsSkipped, report.CellsSkipped)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
