package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"salesapi/database"
	"salesapi/internal/forecast"
	salesinfra "salesapi/internal/sales/infrastructure"
)

// Exécute une passe complète du pipeline de prévision: chargement,
// entraînement des deux modèles, évaluation et rapport.
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

	repo := salesinfra.NewSalesRepository(database.DB, database.Driver)
	predictor := forecast.NewPredictor(repo, getEnv("PREDICTIONS_OUTPUT", "predictions_report.csv"))

	if err := predictor.Run(); err != nil {
		log.Fatal("prediction run failed: ", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
