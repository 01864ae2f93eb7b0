package database

import "database/sql"

// Les dates sont stockées en TEXT ISO-8601 (YYYY-MM-DD) dans les deux
// dialectes: la comparaison lexicographique équivaut à la comparaison
// chronologique et le scan reste identique côté repositories.

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS families (
	id SERIAL PRIMARY KEY,
	name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	family_id INTEGER NOT NULL REFERENCES families(id)
);

CREATE TABLE IF NOT EXISTS sales (
	id SERIAL PRIMARY KEY,
	product_id BIGINT NOT NULL REFERENCES products(id),
	date TEXT NOT NULL,
	quantity INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales(product_id, date);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS families (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	price REAL NOT NULL,
	family_id INTEGER NOT NULL REFERENCES families(id)
);

CREATE TABLE IF NOT EXISTS sales (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id INTEGER NOT NULL REFERENCES products(id),
	date TEXT NOT NULL,
	quantity INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales(product_id, date);
`

// EnsureSchema crée les tables families/products/sales si elles
// n'existent pas. products.id est fourni par l'appelant (jamais
// auto-généré), les deux autres clés sont des surrogates.
func EnsureSchema(db *sql.DB, dialect Dialect) error {
	schema := schemaSQLite
	if dialect == DialectPostgres {
		schema = schemaPostgres
	}
	_, err := db.Exec(schema)
	return err
}
