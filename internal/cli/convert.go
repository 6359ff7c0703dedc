package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Re-encode a property map in another wire format",
		Long: `Convert reads one property map document from a file (or stdin) and
writes it in another wire format. Keys and values, including the __CLASS__
marker, are carried over unchanged.`,
		Example: `  recordctl convert --from json --to yaml point.json
  cat point.msgpack | recordctl convert --from msgpack --to json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := wireFor(from)
			if err != nil {
				return err
			}

			data, err := c.readInput(args)
			if err != nil {
				return err
			}

			p, err := decodeProperties(src, data)
			if err != nil {
				return err
			}

			out, err := encodeProperties(to, p)
			if err != nil {
				return err
			}

			c.Logger.Debug("converted property map",
				zap.String("from", from),
				zap.String("to", to),
				zap.Int("properties", len(p)),
				zap.Int("bytes", len(out)))

			if _, err := c.stdout.Write(out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "json", "input format")
	cmd.Flags().StringVar(&to, "to", "yaml", "output format")

	return cmd
}
