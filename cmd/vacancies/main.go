package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/umputun/go-flags"

	"github.com/honeycarbs/hh-vacancies/internal/app"
	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
	"github.com/honeycarbs/hh-vacancies/pkg/shutdown"
)

type searchCommand struct {
	Keyword  string `short:"k" long:"keyword" description:"search keyword"`
	Sort     string `short:"s" long:"sort" description:"sort by salary, y or n"`
	Output   string `short:"o" long:"output" description:"data file name to store results in"`
	Print    bool   `short:"p" long:"print" description:"print results instead of storing them"`
	Limit    int    `long:"limit" default:"100" description:"max vacancies to keep, 0 keeps all"`
	NoPrompt bool   `long:"no-prompt" description:"never ask for missing values"`
}

type listCommand struct{}

type deleteCommand struct {
	Where []string `short:"w" long:"where" required:"true" description:"criterion as key=value, repeat to require several"`
}

type serveCommand struct {
	Host string `long:"host" env:"MCP_HOST" description:"listen host"`
	Port string `long:"port" env:"PORT" description:"listen port"`
}

var opts struct {
	Config   string `short:"c" long:"config" env:"VACANCIES_CONFIG" description:"YAML config file"`
	DataDir  string `long:"data-dir" description:"directory holding data files"`
	File     string `short:"f" long:"file" description:"data file name for list, delete and serve"`
	LogLevel string `long:"log-level" description:"debug, info, warn or error"`

	Search searchCommand `command:"search" description:"fetch vacancies from hh.ru (default)"`
	List   listCommand   `command:"list" description:"print stored vacancies"`
	Delete deleteCommand `command:"delete" description:"delete stored vacancies matching all criteria"`
	Serve  serveCommand  `command:"serve" description:"run the MCP server"`
}

var revision = "unknown"

func main() {
	p := flags.NewParser(&opts, flags.Default)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	command := "search"
	if p.Active != nil {
		command = p.Active.Name
	}

	if err := run(context.Background(), command); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg)

	var ans searchAnswers
	if command == "search" {
		var pr *prompter
		if !opts.Search.NoPrompt {
			pr = newPrompter(os.Stdin, os.Stdout)
		}
		if ans, err = resolveSearch(opts.Search, pr); err != nil {
			return err
		}
		if ans.Output != "" {
			cfg.Storage.FileName = ans.Output
		}
	}

	logger := logging.New(cfg.LogLevel).With("revision", revision, "command", command)
	defer func() { _ = logger.Sync() }()

	a, err := app.InitializeApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	switch command {
	case "search":
		return runSearch(ctx, a.Service, ans, opts.Search.Limit, os.Stdout)
	case "list":
		return runList(ctx, a.Service, os.Stdout)
	case "delete":
		return runDelete(ctx, a.Service, opts.Delete.Where, os.Stdout)
	case "serve":
		srv := a.MCPServer()
		go shutdown.Graceful(ctx,
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			srv,
			10*time.Second,
			logger,
		)
		logger.Info("MCP server initialized and starting", "addr", srv.Addr(), "data_file", a.Store.Path())
		if err := srv.Run(); err != nil {
			logger.Error("MCP server exited with error", "err", err)
			return err
		}
		logger.Info("MCP server stopped")
		return nil
	}

	return fmt.Errorf("unknown command %q", command)
}

// applyOverrides lets command line flags win over file and env settings
func applyOverrides(cfg *config.Config) {
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.DataDir != "" {
		cfg.Storage.DataDir = opts.DataDir
	}
	if opts.File != "" {
		cfg.Storage.FileName = opts.File
	}
	if opts.Serve.Host != "" {
		cfg.Host = opts.Serve.Host
	}
	if opts.Serve.Port != "" {
		cfg.Port = opts.Serve.Port
	}
}
