package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demoTexts = []string{
	"ceci est un long message chiffre avec la technique de la machine enigma",
	"aaaa aaa aa aaaa aaaaaaa aaaaaaa aaaa aa aaaaaaaaa aa aa aaaaaaa aaaaaa",
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Encode and decode sample sentences from the starting key",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := a.loadRegistry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := false
			for _, data := range demoTexts {
				m, err := a.newMachine(reg)
				if err != nil {
					return err
				}
				buf1 := m.Encode(data)

				// Fresh machine: same starting key.
				m, err = a.newMachine(reg)
				if err != nil {
					return err
				}
				buf2 := m.Encode(buf1)

				fmt.Fprintf(out, "DATA = '%s'\nBUF1 = '%s'\nBUF2 = '%s'\n", data, buf1, buf2)
				result := "OK"
				if buf2 != data {
					result = "ERROR !"
					failed = true
				}
				fmt.Fprintf(out, "RESULT : %s\n", result)
			}
			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}
