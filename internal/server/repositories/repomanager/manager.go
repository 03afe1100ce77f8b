// Package repomanager vends repository implementations bound to a DBTX, so
// services can use the same repositories inside and outside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/content"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/otps"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	OTPs(db dbx.DBTX) otps.Repository
	Content(db dbx.DBTX) content.Repository
}
