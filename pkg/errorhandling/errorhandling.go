package errorhandling

import (
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// JoinErrors converts the error slice into a single human-readable error.
// Nil entries are skipped.  A slice holding a single error returns that
// error unchanged so callers can still match it.
func JoinErrors(errs []error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	}

	// `multierror` appends new lines which we need to remove to prevent
	// blank lines when printing the error.
	var multiE *multierror.Error
	multiE = multierror.Append(multiE, nonNil...)
	multiE.ErrorFormat = func(es []error) string {
		msgs := make([]string, len(es))
		for i := range es {
			msgs[i] = es[i].Error()
		}
		return strings.Join(msgs, "; ")
	}
	return multiE.ErrorOrNil()
}

// CloseQuiet closes c and logs any error.  Should only be used within a
// defer.
func CloseQuiet(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logrus.Errorf("Unable to close %s: %q", name, err)
	}
}

// CloseWithError closes c and joins a close failure onto errp, which
// usually points at a named return value.  Should only be used within a
// defer.
func CloseWithError(name string, c io.Closer, errp *error) {
	if err := c.Close(); err != nil {
		*errp = JoinErrors([]error{*errp, errors.Wrapf(err, "closing %s", name)})
	}
}
