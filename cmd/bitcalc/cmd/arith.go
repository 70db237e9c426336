package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitint"
)

type (
	intOp  func(x, y bitint.Int) (bitint.Int, error)
	uintOp func(x, y bitint.Uint) (bitint.Uint, error)
)

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Add two integers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.binary(cmd, "add", args, bitint.Int.Add, bitint.Uint.Add)
		},
	}
}

func (a *app) subCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sub <a> <b>",
		Short: "Subtract b from a",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.binary(cmd, "sub", args, bitint.Int.Sub, bitint.Uint.Sub)
		},
	}
}

func (a *app) negCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neg <a>",
		Short: "Print the two's complement of an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Unsigned {
				x, err := a.parseUint(args[0])
				if err != nil {
					return err
				}
				return printUint(cmd.OutOrStdout(), x.TwosComplement())
			}

			x, err := a.parseInt(args[0])
			if err != nil {
				return err
			}
			return printInt(cmd.OutOrStdout(), x.Neg())
		},
	}
}

func (a *app) cmpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cmp <a> <b>",
		Short: "Compare two integers, printing -1, 0 or 1",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				c   int
				err error
			)
			if a.cfg.Unsigned {
				var x, y bitint.Uint
				if x, y, err = a.parseUintPair(args); err != nil {
					return err
				}
				c, err = x.Compare(y)
			} else {
				var x, y bitint.Int
				if x, y, err = a.parseIntPair(args); err != nil {
					return err
				}
				c, err = x.Compare(y)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		},
	}
}

func (a *app) binary(cmd *cobra.Command, name string, args []string, opInt intOp, opUint uintOp) error {
	if a.cfg.Unsigned {
		x, y, err := a.parseUintPair(args)
		if err != nil {
			return err
		}
		z, err := opUint(x, y)
		if err != nil {
			return fmt.Errorf("%s %s %s: %w", name, args[0], args[1], err)
		}
		a.logger.Debug(name, zap.Stringer("x", x), zap.Stringer("y", y), zap.Stringer("result", z))
		return printUint(cmd.OutOrStdout(), z)
	}

	x, y, err := a.parseIntPair(args)
	if err != nil {
		return err
	}
	z, err := opInt(x, y)
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", name, args[0], args[1], err)
	}
	a.logger.Debug(name, zap.Stringer("x", x), zap.Stringer("y", y), zap.Stringer("result", z))
	return printInt(cmd.OutOrStdout(), z)
}

func (a *app) parseInt(s string) (bitint.Int, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return bitint.Int{}, fmt.Errorf("invalid signed operand %q: %w", s, err)
	}
	return bitint.NewInt(v, a.cfg.Width)
}

func (a *app) parseUint(s string) (bitint.Uint, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return bitint.Uint{}, fmt.Errorf("invalid unsigned operand %q: %w", s, err)
	}
	return bitint.NewUint(v, a.cfg.Width)
}

func (a *app) parseIntPair(args []string) (bitint.Int, bitint.Int, error) {
	x, err := a.parseInt(args[0])
	if err != nil {
		return bitint.Int{}, bitint.Int{}, err
	}
	y, err := a.parseInt(args[1])
	if err != nil {
		return bitint.Int{}, bitint.Int{}, err
	}
	return x, y, nil
}

func (a *app) parseUintPair(args []string) (bitint.Uint, bitint.Uint, error) {
	x, err := a.parseUint(args[0])
	if err != nil {
		return bitint.Uint{}, bitint.Uint{}, err
	}
	y, err := a.parseUint(args[1])
	if err != nil {
		return bitint.Uint{}, bitint.Uint{}, err
	}
	return x, y, nil
}

// printInt prints the native value, or the bit form if it does not fit an int64.
func printInt(w io.Writer, x bitint.Int) error {
	if v, err := x.Int64(); err == nil {
		_, err = fmt.Fprintln(w, v)
		return err
	}
	_, err := fmt.Fprintln(w, x)
	return err
}

func printUint(w io.Writer, x bitint.Uint) error {
	if v, err := x.Uint64(); err == nil {
		_, err = fmt.Fprintln(w, v)
		return err
	}
	_, err := fmt.Fprintln(w, x)
	return err
}
