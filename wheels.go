package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWheelsCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "wheels",
		Short: "List the installed wheels and the reflector",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := a.loadRegistry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				data, err := reg.Marshal()
				if err != nil {
					return fmt.Errorf("marshal registry: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			m, err := a.newMachine(reg)
			if err != nil {
				return err
			}
			inChain := make(map[int]int)
			for k, slot := range m.Order() {
				inChain[slot] = k + 1
			}

			for i, w := range reg.Wheels {
				tb, err := m.Wheel(i)
				if err != nil {
					return err
				}
				var notches []string
				for _, n := range tb.Notches() {
					notches = append(notches, string(rune('A'+n)))
				}
				chain := "-"
				if k, ok := inChain[i+1]; ok {
					chain = fmt.Sprintf("#%d", k)
				}
				fmt.Fprintf(out, "%-6s %s  notch %-4s chain %s\n",
					w.Name, tb.String(), strings.Join(notches, ","), chain)
			}
			refl := m.Reflector()
			fmt.Fprintf(out, "%-6s %s\n", "UKW", refl.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the registry as YAML")
	return cmd
}
