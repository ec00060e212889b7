package repomanager

import (
	"context"
	"database/sql"

	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/observations"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/risks"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/symptoms"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Observations(db dbx.DBTX) observations.Repository
	Symptoms(db dbx.DBTX) symptoms.Repository
	Risks(db dbx.DBTX) risks.Repository
}
