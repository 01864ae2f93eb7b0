package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifie le moteur SQL sous-jacent
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

var (
	DB     *sql.DB
	Driver Dialect
)

// Init ouvre une connexion PostgreSQL et crée le schéma si nécessaire
func Init(connStr string) error {
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	// Pool de connexions optimisé
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return err
	}

	Driver = DialectPostgres
	return EnsureSchema(DB, DialectPostgres)
}

// InitSQLite ouvre une base SQLite locale (fichier ou ":memory:")
// et crée le schéma si nécessaire
func InitSQLite(path string) error {
	var err error
	DB, err = sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	// SQLite n'accepte qu'un seul writer
	DB.SetMaxOpenConns(1)

	if err := DB.Ping(); err != nil {
		return err
	}

	Driver = DialectSQLite
	return EnsureSchema(DB, DialectSQLite)
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Rebind convertit les placeholders '?' en '$N' pour PostgreSQL.
// Les requêtes des repositories sont écrites avec '?'; la conversion
// n'a lieu que pour le dialecte PostgreSQL.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	buf := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			buf = append(buf, fmt.Sprintf("$%d", n)...)
			continue
		}
		buf = append(buf, query[i])
	}
	return string(buf)
}
