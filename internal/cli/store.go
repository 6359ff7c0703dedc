package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/record/internal/config"
)

func addBackendFlag(cmd *cobra.Command, backend *string) {
	cmd.Flags().StringVarP(backend, "backend", "b", config.BackendRedis,
		"store backend (neo4j, redis, memory)")
}

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	var backend, format string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the property map stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := wireFor(format); err != nil {
				return err
			}

			s, err := c.open(ctx, backend)
			if err != nil {
				return err
			}
			defer c.closeStore(ctx, s)

			p, err := s.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}

			out, err := encodeProperties(format, p)
			if err != nil {
				return err
			}
			if _, err := c.stdout.Write(out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	addBackendFlag(cmd, &backend)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format")

	return cmd
}

// putCommand creates the put command.
func (c *CLI) putCommand() *cobra.Command {
	var backend, format, key string

	cmd := &cobra.Command{
		Use:   "put [file]",
		Short: "Store a property map document and print its key",
		Long: `Put reads one property map document from a file (or stdin) and stores
it under --key. A random UUID key is generated when --key is empty.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := wireFor(format)
			if err != nil {
				return err
			}

			data, err := c.readInput(args)
			if err != nil {
				return err
			}
			p, err := decodeProperties(w, data)
			if err != nil {
				return err
			}

			s, err := c.open(ctx, backend)
			if err != nil {
				return err
			}
			defer c.closeStore(ctx, s)

			if key == "" {
				key = uuid.NewString()
			}
			if err := s.Put(ctx, key, p); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}

			c.Logger.Info("stored property map",
				zap.String("backend", backend),
				zap.String("key", key),
				zap.Int("properties", len(p)))

			_, err = fmt.Fprintln(c.stdout, key)
			return err
		},
	}

	addBackendFlag(cmd, &backend)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "input format")
	cmd.Flags().StringVarP(&key, "key", "k", "", "key to store under (default: random UUID)")

	return cmd
}

// deleteCommand creates the delete command.
func (c *CLI) deleteCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove the property map stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, backend)
			if err != nil {
				return err
			}
			defer c.closeStore(ctx, s)

			if err := s.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			c.Logger.Info("deleted property map", zap.String("backend", backend), zap.String("key", args[0]))
			return nil
		},
	}

	addBackendFlag(cmd, &backend)

	return cmd
}
