// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package cmd implements the fpbits command line tool.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avdva/fpbits"
	"github.com/avdva/fpbits/internal/config"
)

// app is the state shared by all the commands of one invocation.
type app struct {
	formatsFile string
	output      string
	custom      []fpbits.Format
}

const (
	outputText = "text"
	outputJSON = "json"
)

// NewRootCommand returns the fpbits command with all of its subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fpbits",
		Short: "Inspect and edit floating-point bit patterns",
		Long: `fpbits converts between real numbers and bit patterns of
IEEE-754-style formats: FP64, FP32, FP16, BF16, FP8E5M2, FP8E4M3
and user-defined layouts named like S1E4M3 or U0E5M2.

Examples:
  fpbits decode fp32 0x3f800000
  fpbits encode fp16 0.1
  fpbits toggle s1e4m3 0x52 7
  fpbits preset bf16 max`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadFormats()
		},
	}
	root.PersistentFlags().StringVar(&a.formatsFile, "formats", "", "TOML or YAML file with custom formats")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "output format: text or json")

	root.AddCommand(
		newFormatsCommand(a),
		newDecodeCommand(a),
		newEncodeCommand(a),
		newToggleCommand(a),
		newPresetCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) loadFormats() error {
	if len(a.formatsFile) == 0 {
		return nil
	}
	formats, err := config.Load(a.formatsFile)
	if err != nil {
		return err
	}
	a.custom = formats
	return nil
}

// lookupFormat resolves a name among the loaded custom formats first,
// then among the built-in and derived names.
func (a *app) lookupFormat(name string) (fpbits.Format, error) {
	for _, f := range a.custom {
		if strings.EqualFold(f.Name(), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	f, err := fpbits.ParseName(name)
	if err != nil {
		return fpbits.Format{}, fmt.Errorf("%w, see 'fpbits formats'", err)
	}
	return f, nil
}
