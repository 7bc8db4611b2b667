// Package cli реализует командный интерфейс клиента поверх сессии и менеджеров.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/fitsync/internal/client/auth"
	"github.com/iudanet/fitsync/internal/client/iocli"
	"github.com/iudanet/fitsync/internal/client/manager"
	"github.com/iudanet/fitsync/internal/client/session"
	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/config"
)

// keyPassword пароль из окружения FITSYNC_PASSWORD
const keyPassword = "password"

var errNotAuthenticated = errors.New("not authenticated. Please run 'fitsync login' first")

// Deps зависимости команд, создаются после чтения конфигурации
type Deps struct {
	Auth    auth.Service
	Metrics prometheus.Gatherer // Metrics реестр метрик синхронизации, может быть nil
	Session *session.Session
	Goals   storage.GoalsStorage
	Close   func() error // Close освобождает локальное хранилище, может быть nil
}

// Builder собирает зависимости по настройкам клиента
type Builder func(cfg config.Client, logger *slog.Logger) (*Deps, error)

// Cli командный интерфейс клиента
type Cli struct {
	io      iocli.IO
	build   Builder
	viper   *viper.Viper
	deps    *Deps
	logger  *slog.Logger
	version string
	cfg     config.Client
}

// New создает CLI. Зависимости строятся лениво, при первой команде, которой они нужны.
func New(io iocli.IO, build Builder) *Cli {
	return &Cli{
		io:     io,
		build:  build,
		viper:  config.New(),
		logger: slog.Default(),
	}
}

// WithVersion включает флаг --version
func (c *Cli) WithVersion(version string) *Cli {
	c.version = version
	return c
}

// Command возвращает корневую команду
func (c *Cli) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "fitsync",
		Version:       c.version,
		Short:         "Fitness coaching client",
		Long:          "fitsync - client for food diary, workouts, routes and training plans.\n\nChanges are applied locally right away and synced with the server in the background.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Root())
		},
	}
	config.ClientFlags(root.PersistentFlags())

	root.AddCommand(
		c.registerCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.statusCommand(),
		c.foodCommand(),
		c.workoutCommand(),
		c.routeCommand(),
		c.planCommand(),
		c.bodyCommand(),
		c.statsCommand(),
		c.goalsCommand(),
	)
	return root
}

// Execute выполняет команду и закрывает сессию, дожидаясь незавершенных мутаций
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.Command()
	root.SetArgs(args)
	root.SetOut(c.io)
	root.SetErr(c.io)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.shutdown(ctx))
}

func (c *Cli) setup(root *cobra.Command) error {
	if err := config.Bind(c.viper, root.PersistentFlags()); err != nil {
		return err
	}

	cfg, err := config.LoadClient(c.viper)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.cfg = cfg

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, false)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// dependencies возвращает зависимости, создавая их при первом обращении
func (c *Cli) dependencies() (*Deps, error) {
	if c.deps != nil {
		return c.deps, nil
	}

	deps, err := c.build(c.cfg, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}
	c.deps = deps
	return deps, nil
}

// open восстанавливает сохраненную сессию и возвращает менеджеры
func (c *Cli) open(ctx context.Context) (*manager.Set, error) {
	deps, err := c.dependencies()
	if err != nil {
		return nil, err
	}

	if err := deps.Session.Open(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, errNotAuthenticated
		}
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	return deps.Session.Managers()
}

func (c *Cli) shutdown(ctx context.Context) error {
	if c.deps == nil {
		return nil
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var errs []error
	if err := c.deps.Session.Close(closeCtx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close session: %w", err))
	}
	// сессия закрыта, все мутации команды разрешены и учтены
	if c.deps.Metrics != nil {
		if err := c.reportMetrics(c.deps.Metrics); err != nil {
			errs = append(errs, err)
		}
	}
	if c.deps.Close != nil {
		if err := c.deps.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}
	c.deps = nil
	return errors.Join(errs...)
}

// readPassword получает пароль с приоритетом:
// 1. Переменная окружения FITSYNC_PASSWORD
// 2. Файл из --password-file
// 3. Интерактивный ввод
func (c *Cli) readPassword(passwordFile, prompt string) (string, error) {
	if password := c.viper.GetString(keyPassword); password != "" {
		return password, nil
	}

	if passwordFile != "" {
		content, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
