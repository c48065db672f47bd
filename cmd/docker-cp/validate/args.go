package validate

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// SourceAndTarget returns an error unless exactly a source and a target
// path are given.
func SourceAndTarget(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New("you must provide a source path and a destination path")
	}
	return nil
}
