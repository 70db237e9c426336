package cmd

import (
	"math/big"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitint"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the range and sizes of the configured integer kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			width := a.cfg.Width
			lower, upper := valueRange(width, a.cfg.Unsigned)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"property", "value"})
			table.AppendBulk([][]string{
				{"kind", a.cfg.Kind()},
				{"width", strconv.FormatUint(uint64(width), 10)},
				{"storage", bytefmt.ByteSize(uint64(width+7) / 8)},
				{"encoded size", bytefmt.ByteSize(uint64(bitint.EncodedSize(width)))},
				{"min", lower.String()},
				{"max", upper.String()},
			})
			table.Render()
			return nil
		},
	}
}

// valueRange returns the representable range. Unsigned values keep the top bit clear.
func valueRange(width uint, unsigned bool) (*big.Int, *big.Int) {
	half := new(big.Int).Lsh(big.NewInt(1), width-1)
	upper := new(big.Int).Sub(half, big.NewInt(1))
	if unsigned {
		return big.NewInt(0), upper
	}
	return new(big.Int).Neg(half), upper
}
