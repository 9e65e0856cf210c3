// Package initializer builds the shared dependencies (logger, database,
// unit of work) the server and worker binaries run on.
package initializer

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/finvault/bankcore/infra"
	accountmodel "github.com/finvault/bankcore/infra/repository/account"
	limitsmodel "github.com/finvault/bankcore/infra/repository/limits"
	infrarepo "github.com/finvault/bankcore/infra/repository"
	transactionmodel "github.com/finvault/bankcore/infra/repository/transaction"
	transfermodel "github.com/finvault/bankcore/infra/repository/transfer"
	"github.com/finvault/bankcore/pkg/config"
	"github.com/finvault/bankcore/pkg/repository"
)

// Deps carries the shared infrastructure dependencies.
type Deps struct {
	DB     *gorm.DB
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// InitializeDependencies sets up the logger, opens the database, migrates
// the schema, and wires the unit of work.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&accountmodel.Account{},
		&transactionmodel.Transaction{},
		&transfermodel.Transfer{},
		&transfermodel.ScheduledTransfer{},
		&limitsmodel.AccountLimits{},
	); err != nil {
		return nil, err
	}

	return &Deps{
		DB:     db,
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}, nil
}
