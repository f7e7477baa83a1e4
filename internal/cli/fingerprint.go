package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/dot"
)

// fingerprintCommand creates the fingerprint command.
func (c *CLI) fingerprintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the style fingerprint of this build",
		Long: `Print the style fingerprint of this build.

The fingerprint hashes the graph style attributes baked into the binary.
Rendered artifacts are cached under keys that include it, so two builds
with different styles never share cached output. Compare fingerprints to
check whether a binary upgrade invalidates your render cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(dot.StyleFingerprint())
			return nil
		},
	}
}
