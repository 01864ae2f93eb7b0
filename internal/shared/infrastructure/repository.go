package infrastructure

import (
	"context"
	"database/sql"

	"salesapi/database"
)

// UnitOfWork gère les transactions pour les opérations d'écriture
type UnitOfWork interface {
	Begin() (*sql.Tx, error)
	Commit(tx *sql.Tx) error
	Rollback(tx *sql.Tx) error
	Execute(fn func(tx *sql.Tx) error) error
}

// DBUnitOfWork implémentation de UnitOfWork avec sql.DB
type DBUnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork crée une nouvelle instance de UnitOfWork
func NewUnitOfWork(db *sql.DB) UnitOfWork {
	return &DBUnitOfWork{db: db}
}

// Begin démarre une transaction
func (uow *DBUnitOfWork) Begin() (*sql.Tx, error) {
	return uow.db.Begin()
}

// Commit valide une transaction
func (uow *DBUnitOfWork) Commit(tx *sql.Tx) error {
	return tx.Commit()
}

// Rollback annule une transaction
func (uow *DBUnitOfWork) Rollback(tx *sql.Tx) error {
	return tx.Rollback()
}

// Execute exécute une fonction dans une transaction
func (uow *DBUnitOfWork) Execute(fn func(tx *sql.Tx) error) error {
	tx, err := uow.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback(tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := uow.Rollback(tx); rbErr != nil {
			return rbErr
		}
		return err
	}

	return uow.Commit(tx)
}

// BaseRepository structure de base pour les repositories. Les requêtes
// sont écrites avec des placeholders '?' et converties pour le
// dialecte actif au moment de l'exécution.
type BaseRepository struct {
	db      *sql.DB
	tx      *sql.Tx
	dialect database.Dialect
	ctx     context.Context
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(db *sql.DB, dialect database.Dialect) BaseRepository {
	return BaseRepository{
		db:      db,
		dialect: dialect,
		ctx:     context.Background(),
	}
}

// Executor retourne l'exécuteur approprié (DB ou Tx)
func (r *BaseRepository) Executor() interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// WithTx retourne une copie du repository liée à la transaction
func (r BaseRepository) WithTx(tx *sql.Tx) BaseRepository {
	r.tx = tx
	return r
}

// Dialect retourne le dialecte actif
func (r *BaseRepository) Dialect() database.Dialect {
	return r.dialect
}

// Query exécute une requête de lecture
func (r *BaseRepository) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return r.Executor().QueryContext(r.ctx, database.Rebind(r.dialect, query), args...)
}

// QueryRow exécute une requête de lecture pour une seule ligne
func (r *BaseRepository) QueryRow(query string, args ...interface{}) *sql.Row {
	return r.Executor().QueryRowContext(r.ctx, database.Rebind(r.dialect, query), args...)
}

// Exec exécute une requête d'écriture
func (r *BaseRepository) Exec(query string, args ...interface{}) (sql.Result, error) {
	return r.Executor().ExecContext(r.ctx, database.Rebind(r.dialect, query), args...)
}
