package repository

import (
	"database/sql"

	"github.com/alexanderramin/workhub/internal/db"
)

// NewSQLiteRepos wires every SQLite repository against database, sharing one
// unit of work for the multi-statement writes.
func NewSQLiteRepos(database *sql.DB) Repos {
	uow := db.NewSQLiteUnitOfWork(database)
	return Repos{
		Projects:  NewSQLiteProjectRepo(database, uow),
		Nodes:     NewSQLiteNodeRepo(database, uow),
		Users:     NewSQLiteUserRepo(database),
		Companies: NewSQLiteCompanyRepo(database),
		History:   NewSQLiteHistoryRepo(database),
	}
}
