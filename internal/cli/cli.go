// Package cli implements the recordctl command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/record/internal/config"
	"github.com/zoobzio/record/internal/logger"
	"github.com/zoobzio/record/store"
	"github.com/zoobzio/record/store/graph"
	"github.com/zoobzio/record/store/redis"
)

// Version is reported by --version. It is set at build time with
// -ldflags "-X github.com/zoobzio/record/internal/cli.Version=...".
var Version = "dev"

// opener returns a store for a backend name.
type opener func(ctx context.Context, backend string) (store.Store, error)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *zap.Logger
	Config *config.Config

	stdin  io.Reader
	stdout io.Writer
	open   opener
	memory *store.Memory
}

// New creates a CLI reading documents from stdin and writing results to stdout.
// Configuration is loaded from the environment when the first command runs.
func New(stdin io.Reader, stdout io.Writer) *CLI {
	c := &CLI{
		Logger: zap.NewNop(),
		stdin:  stdin,
		stdout: stdout,
		memory: store.NewMemory(),
	}
	c.open = c.openStore
	return c
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "recordctl",
		Short:         "recordctl moves record property maps between wire formats and stores",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Config == nil {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				c.Config = cfg
			}
			if err := logger.Init(c.Config.Env); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			c.Logger = logger.Get()
			return nil
		},
	}

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.putCommand())
	root.AddCommand(c.deleteCommand())

	return root
}

// openStore connects to the named backend using c.Config.
func (c *CLI) openStore(ctx context.Context, backend string) (store.Store, error) {
	if err := c.Config.Validate(backend); err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendNeo4j:
		driver, err := neo4j.NewDriverWithContext(c.Config.Neo4jURI,
			neo4j.BasicAuth(c.Config.Neo4jUser, c.Config.Neo4jPassword, ""))
		if err != nil {
			return nil, fmt.Errorf("create neo4j driver: %w", err)
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			_ = driver.Close(ctx)
			return nil, fmt.Errorf("connect to neo4j: %w", err)
		}
		s, err := graph.New(driver, graph.Config{Label: c.Config.Neo4jLabel})
		if err != nil {
			_ = driver.Close(ctx)
			return nil, err
		}
		return s, nil

	case config.BackendRedis:
		s, err := redis.New(ctx, redis.Config{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
			Prefix:   c.Config.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	// Validate has already rejected unknown names.
	return c.memory, nil
}

// closeStore releases connections held by s, if any.
func (c *CLI) closeStore(ctx context.Context, s store.Store) {
	var err error
	switch closer := s.(type) {
	case interface{ Close(context.Context) error }:
		err = closer.Close(ctx)
	case io.Closer:
		err = closer.Close()
	}
	if err != nil {
		c.Logger.Warn("close store", zap.Error(err))
	}
}

// readInput returns the named file, or stdin when no file or "-" is given.
func (c *CLI) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
