//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	hhprovider "github.com/honeycarbs/hh-vacancies/internal/domain/vacancy/providers/hh"
	"github.com/honeycarbs/hh-vacancies/internal/storage/jsonfile"
	"github.com/honeycarbs/hh-vacancies/pkg/hh"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// InitializeApp creates App with all components wired up
func InitializeApp(cfg config.Config, logger *logging.Logger) (*App, error) {
	wire.Build(
		// Infrastructure - hh.ru
		provideHHConfig,
		hh.NewClient,

		// Providers
		hhprovider.NewProvider,
		wire.Bind(new(vacancy.Provider), new(*hhprovider.Provider)),

		// Repositories
		provideStore,
		wire.Bind(new(vacancy.Repository), new(*jsonfile.Store)),

		// Services
		vacancy.NewServiceWithDeps,

		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}
