// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avdva/fpbits"
)

const notAvailable = "n/a"

func newDecodeCommand(a *app) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "decode <format> <hex>",
		Short: "Decode a bit pattern",
		Long: `Decodes a hex bit pattern, higher bits beyond the format's width are dropped.

Examples:
  fpbits decode fp32 0x3f800000
  fpbits decode --exact fp64 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.newEditor(args[0])
			if err != nil {
				return err
			}
			if err := e.SetHex(args[1]); err != nil {
				return err
			}
			return a.printView(cmd.OutOrStdout(), e.View(), exact)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "print the exact decimal value")
	return cmd
}

func newEncodeCommand(a *app) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "encode <format> <decimal>",
		Short: "Encode a number, rounding to nearest, ties to even",
		Long: `Encodes a decimal number, "NaN", "Infinity" or "-Infinity".
Flags must precede the arguments, so negative numbers are not taken for flags.

Examples:
  fpbits encode fp16 0.1
  fpbits encode --exact bf16 -3.14159`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.newEditor(args[0])
			if err != nil {
				return err
			}
			if err := e.SetDecimal(args[1]); err != nil {
				return err
			}
			return a.printView(cmd.OutOrStdout(), e.View(), exact)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&exact, "exact", false, "print the exact decimal value")
	return cmd
}

func newToggleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <format> <hex> <bit>...",
		Short: "Flip bits of a pattern",
		Long: `Flips the given bits of a hex pattern in order, bit 0 is the least significant one.

Examples:
  fpbits toggle fp32 0x3f800000 31
  fpbits toggle fp8e4m3 0 0 1 2`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.newEditor(args[0])
			if err != nil {
				return err
			}
			if err := e.SetHex(args[1]); err != nil {
				return err
			}
			for _, arg := range args[2:] {
				i, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid bit index %q", arg)
				}
				if err := e.ToggleBit(i); err != nil {
					return err
				}
			}
			return a.printView(cmd.OutOrStdout(), e.View(), false)
		},
	}
}

func newPresetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preset <format> <name>",
		Short: "Show a well-known value",
		Long: `Shows one of: zero, one, -one, inf, -inf, nan, max, min-normal, min-subnormal.

Examples:
  fpbits preset fp16 max
  fpbits preset s1e32m31 min-subnormal`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.newEditor(args[0])
			if err != nil {
				return err
			}
			p, err := fpbits.ParsePreset(args[1])
			if err != nil {
				return err
			}
			if err := e.ApplyPreset(p); err != nil {
				return err
			}
			return a.printView(cmd.OutOrStdout(), e.View(), false)
		},
	}
}

func (a *app) newEditor(formatName string) (*fpbits.Editor, error) {
	f, err := a.lookupFormat(formatName)
	if err != nil {
		return nil, err
	}
	return fpbits.NewEditor(f), nil
}

// printView writes the view in the selected output format.
func (a *app) printView(out io.Writer, v fpbits.View, exact bool) error {
	switch a.output {
	case outputText:
		return printViewText(out, v, exact)
	case outputJSON:
		return printViewJSON(out, v, exact)
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
}

// printViewText writes one "key value" line per representation of the pattern.
func printViewText(out io.Writer, v fpbits.View, exact bool) error {
	d := v.Decoded
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "format\t%s\n", v.Format)
	fmt.Fprintf(w, "hex\t%s\n", v.Hex)
	fmt.Fprintf(w, "binary\t%s\n", v.Binary)
	fmt.Fprintf(w, "fields\tsign=%d exponent=%d fraction=%d\n", v.Fields.Sign, v.Fields.Exponent, v.Fields.Fraction)
	fmt.Fprintf(w, "class\t%s\n", d.Class)
	fmt.Fprintf(w, "value\t%s\n", fpbits.FormatDecimal(d.Value))
	fmt.Fprintf(w, "sign\t%s\n", fpbits.FormatDecimal(d.SignFactor))
	fmt.Fprintf(w, "exponent\t%s\n", fpbits.FormatDecimal(d.Exponent))
	fmt.Fprintf(w, "mantissa\t%s\n", d.Mantissa)
	if exact {
		fmt.Fprintf(w, "exact\t%s\n", exactString(v))
	}
	return w.Flush()
}

func printViewJSON(out io.Writer, v fpbits.View, exact bool) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if exact {
		if obj["exact"], err = json.Marshal(exactString(v)); err != nil {
			return err
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}

func exactString(v fpbits.View) string {
	if dec, ok := fpbits.ExactDecimal(v.Format, v.Fields.Sign, v.Fields.Exponent, v.Fields.Fraction); ok {
		return dec.String()
	}
	return notAvailable
}
