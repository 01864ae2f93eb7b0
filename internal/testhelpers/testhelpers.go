package testhelpers

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"salesapi/database"
)

// Les tests tournent sur SQLite en mémoire: même schéma et mêmes
// requêtes que la production (les repositories rebindent les
// placeholders par dialecte), sans serveur à démarrer.
// Note: pas de constructeurs de repositories ici pour éviter les
// cycles d'import; chaque test construit les siens.

// SetupTestDB ouvre une base SQLite en mémoire avec le schéma créé
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := database.EnsureSchema(db, database.DialectSQLite); err != nil {
		tb.Fatalf("failed to create schema: %v", err)
	}

	tb.Cleanup(func() { db.Close() })
	return db
}

// InsertFamily insère une famille et retourne sa clé
func InsertFamily(tb testing.TB, db *sql.DB, name string) int64 {
	tb.Helper()

	var id int64
	err := db.QueryRow(`INSERT INTO families (name) VALUES (?) RETURNING id`, name).Scan(&id)
	if err != nil {
		tb.Fatalf("failed to insert family: %v", err)
	}
	return id
}

// InsertProduct insère un produit avec sa clé fournie
func InsertProduct(tb testing.TB, db *sql.DB, id int64, name string, price float64, familyID int64) {
	tb.Helper()

	_, err := db.Exec(`INSERT INTO products (id, name, price, family_id) VALUES (?, ?, ?, ?)`,
		id, name, price, familyID)
	if err != nil {
		tb.Fatalf("failed to insert product: %v", err)
	}
}

// InsertSales insère une observation de vente
func InsertSales(tb testing.TB, db *sql.DB, productID int64, date time.Time, quantity int) {
	tb.Helper()

	_, err := db.Exec(`INSERT INTO sales (product_id, date, quantity) VALUES (?, ?, ?)`,
		productID, date.Format("2006-01-02"), quantity)
	if err != nil {
		tb.Fatalf("failed to insert sales: %v", err)
	}
}

// WriteTempCSV écrit un fichier CSV temporaire et retourne son chemin
func WriteTempCSV(tb testing.TB, content string) string {
	tb.Helper()
	return WriteTempFile(tb, []byte(content))
}

// WriteTempFile écrit un fichier temporaire binaire (tests d'encodage)
func WriteTempFile(tb testing.TB, content []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "data.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		tb.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// CountRows compte les lignes d'une table
func CountRows(tb testing.TB, db *sql.DB, table string) int {
	tb.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		tb.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return n
}
