package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aegisml/aegis/internal/gitfiles"
)

var filesCmd = &cobra.Command{
	Use:   "files [path ...]",
	Short: "Show the files a scan would cover",
	Long:  "Files resolves scan targets the same way scan does: explicit files and directories when given, otherwise git-tracked code files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := gitfiles.Resolve(args, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		for _, p := range paths {
			fmt.Fprintln(os.Stdout, p)
		}
		return nil
	},
}
