package cmd

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitint"
)

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <a>",
		Short: "Print the hex binary encoding of an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m encoding.BinaryMarshaler
			if a.cfg.Unsigned {
				x, err := a.parseUint(args[0])
				if err != nil {
					return err
				}
				m = x
			} else {
				x, err := a.parseInt(args[0])
				if err != nil {
					return err
				}
				m = x
			}

			data, err := m.MarshalBinary()
			if err != nil {
				return err
			}
			a.logger.Debug("encoded", zap.Int("bytes", len(data)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return err
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex binary encoding and print the integer",
		Long: `decode reads the width from the encoding header; the --width flag is ignored.
The --unsigned flag selects how the bits are interpreted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid hex input: %w", err)
			}

			if a.cfg.Unsigned {
				var x bitint.Uint
				if err := x.UnmarshalBinary(data); err != nil {
					return err
				}
				return printUint(cmd.OutOrStdout(), x)
			}

			var x bitint.Int
			if err := x.UnmarshalBinary(data); err != nil {
				return err
			}
			return printInt(cmd.OutOrStdout(), x)
		},
	}
}
