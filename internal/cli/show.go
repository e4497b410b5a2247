package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, id string) error {
	g, err := resolveGate()
	if err != nil {
		return err
	}
	privileged := g.Privileged()

	s, closer, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMedium(closer)

	records, err := s.List(cmd.Context())
	if err != nil {
		return err
	}

	for _, p := range records {
		if p.ID != id {
			continue
		}
		if !privileged {
			if !p.IsPublished {
				break
			}
			p = p.Redacted()
		}
		if isJSON() {
			return printJSON(p)
		}
		printPropertySummary(p)
		return nil
	}

	return fmt.Errorf("property %s not found", id)
}
