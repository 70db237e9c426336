package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitint/verify"
)

func (a *app) verifyCmd() *cobra.Command {
	var properties []string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the arithmetic against native and big-integer arithmetic on random operands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []verify.OptionFunc{verify.WithLogger(a.logger)}
			if len(properties) > 0 {
				if err := checkProperties(properties); err != nil {
					return err
				}
				opts = append(opts, verify.OnlyProperties(properties...))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, err := verify.Run(ctx, a.cfg, opts...)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"kind", "width", "pairs", "checks", "overflows"})
			table.Append([]string{
				a.cfg.Kind(),
				strconv.FormatUint(uint64(report.Width), 10),
				strconv.FormatUint(report.Pairs, 10),
				strconv.FormatUint(report.Checks, 10),
				strconv.FormatUint(report.Overflows, 10),
			})
			table.Render()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.UintVar(&a.cfg.Iterations, "iterations", a.cfg.Iterations, "number of operand pairs to draw")
	flags.UintVar(&a.cfg.Workers, "workers", a.cfg.Workers, "number of concurrent workers")
	flags.Int64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "seed of the operand generator")
	flags.StringSliceVar(&properties, "property", nil, fmt.Sprintf("restrict the run to these properties %v", verify.Properties))
	return cmd
}

func checkProperties(names []string) error {
	known := make(map[string]bool, len(verify.Properties))
	for _, p := range verify.Properties {
		known[p] = true
	}
	for _, n := range names {
		if !known[n] {
			return fmt.Errorf("unknown property %q; expected one of %v", n, verify.Properties)
		}
	}
	return nil
}
