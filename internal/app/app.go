package app

import (
	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/internal/mcp"
	"github.com/honeycarbs/hh-vacancies/internal/storage/jsonfile"
	"github.com/honeycarbs/hh-vacancies/pkg/hh"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// App holds the wired components shared by every command
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Client  *hh.Client
	Store   *jsonfile.Store
	Service vacancy.Service
}

// MCPServer builds the MCP HTTP server on top of the app's service
func (a *App) MCPServer() *mcp.Server {
	return mcp.NewServer(a.Logger, a.Config, a.Service)
}

// provideHHConfig extracts hh.ru client config from main config
func provideHHConfig(cfg config.Config) hh.Config {
	return hh.Config{
		BaseURL:   cfg.HH.BaseURL,
		UserAgent: cfg.HH.UserAgent,
		PerPage:   cfg.HH.PerPage,
		MaxPages:  cfg.HH.MaxPages,
		Timeout:   cfg.HH.Timeout,
	}
}

// provideStore opens the JSON store configured in main config
func provideStore(cfg config.Config, logger *logging.Logger) (*jsonfile.Store, error) {
	return jsonfile.NewStore(cfg.Storage.DataDir, cfg.Storage.FileName, logger)
}
