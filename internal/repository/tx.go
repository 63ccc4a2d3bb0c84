package repository

import (
	"github.com/jmoiron/sqlx"
)

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.Ext
	Get(dest any, query string, args ...any) error
	Select(dest any, query string, args ...any) error
}

// Transactor runs a group of repository writes in one transaction.
type Transactor interface {
	Transact(fn func(tx *sqlx.Tx) error) error
}

type transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &transactor{db: db}
}

// Transact commits when fn returns nil and rolls back otherwise.
func (t *transactor) Transact(fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fn(tx)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// inTx runs fn in its own transaction, or directly when q already is one.
func inTx(q Queryer, fn func(Queryer) error) error {
	db, ok := q.(*sqlx.DB)
	if !ok {
		return fn(q)
	}
	return NewTransactor(db).Transact(func(tx *sqlx.Tx) error {
		return fn(tx)
	})
}
