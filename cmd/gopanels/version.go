package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopanels/version"
)

type versionOutput struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout(), a)
		},
	}
}

func runVersion(w io.Writer, a *app) error {
	if a.flags.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versionOutput{
			Version:   version.GetVersion(),
			Commit:    version.GitCommit,
			BuildDate: version.BuildDate,
		})
	}

	_, err := fmt.Fprintf(w, "gopanels %s\n", version.GetFullVersion())
	return err
}
