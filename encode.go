package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/enigma/machine"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode (or decode) text",
		Long: `Encode the arguments joined by spaces, or standard input when no arguments
are given. Letters come out lowercase; everything else passes through.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := a.loadRegistry()
			if err != nil {
				return err
			}
			m, err := a.newMachine(reg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				_, err := fmt.Fprintln(out, m.Encode(strings.Join(args, " ")))
				return err
			}

			n, err := io.Copy(machine.NewWriter(m, out), cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("encode stdin: %w", err)
			}
			a.log().Debug("stream encoded", zap.Int64("bytes", n))
			return nil
		},
	}
}
