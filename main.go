package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"salesapi/api"
	"salesapi/database"
	cataloginfra "salesapi/internal/catalog/infrastructure"
	"salesapi/internal/ingest"
	salesapp "salesapi/internal/sales/application"
	salesinfra "salesapi/internal/sales/infrastructure"
	sharedinfra "salesapi/internal/shared/infrastructure"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment defaults")
	}

	// DATABASE_URL vide: base SQLite locale (dev et démos)
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

	familyRepo := cataloginfra.NewFamilyRepository(database.DB, database.Driver)
	productRepo := cataloginfra.NewProductRepository(database.DB, database.Driver)
	salesRepo := salesinfra.NewSalesRepository(database.DB, database.Driver)

	cache := sharedinfra.NewInMemoryCache()
	aggregation := salesapp.NewAggregationService(salesRepo, cache)

	ingestSvc := ingest.NewService(familyRepo, productRepo, salesRepo,
		sharedinfra.NewUnitOfWork(database.DB))
	ingestSvc.OnProductLoaded(aggregation.Invalidate)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &api.Handler{
		Families:    familyRepo,
		Products:    productRepo,
		Ingest:      ingestSvc,
		Aggregation: aggregation,
	}
	h.Register(r)

	srv := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: r,
	}

	go func() {
		log.Printf("server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown: ", err)
	}
	log.Println("server stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
