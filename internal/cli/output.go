package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// openOutput resolves the destination for rendered output. An empty path
// means the command's stdout and a no-op closer; anything else is created
// (truncating an existing file) and must be closed by the caller.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCreateOutput, err)
	}

	return f, f.Close, nil
}
