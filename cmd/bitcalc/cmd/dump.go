package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitint"
	"github.com/spacemeshos/bitint/bitarray"
)

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <a>",
		Short: "Print the bit array of an integer, most-significant byte first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				bits  *bitarray.Array
				debug string
			)
			if a.cfg.Unsigned {
				x, err := a.parseUint(args[0])
				if err != nil {
					return err
				}
				bits, debug = x.Bits(), x.GoString()
			} else {
				x, err := a.parseInt(args[0])
				if err != nil {
					return err
				}
				bits, debug = x.Bits(), x.GoString()
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, debug); err != nil {
				return err
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"bits", "binary", "hex"})
			table.SetBorder(true)
			table.AppendBulk(byteRows(bits))
			table.Render()
			return nil
		},
	}
}

// byteRows splits an array into 8-bit groups, the most-significant group first.
func byteRows(bits *bitarray.Array) [][]string {
	s := bits.String()
	rows := make([][]string, 0, bitint.EncodedSize(bits.Len()))
	for hi := len(s); hi > 0; hi -= 8 {
		lo := hi - 8
		if lo < 0 {
			lo = 0
		}
		group := s[lo:hi]
		top := uint(len(s) - 1 - lo)
		bottom := uint(len(s) - hi)
		v, _ := strconv.ParseUint(group, 2, 8)
		rows = append(rows, []string{
			fmt.Sprintf("%d-%d", top, bottom),
			group,
			hex.EncodeToString([]byte{byte(v)}),
		})
	}
	// s is most-significant first, so the loop walked from the least-significant group.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}
