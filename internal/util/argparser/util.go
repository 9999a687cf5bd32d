package argparser

import (
	"github.com/pborman/getopt/v2"
)

// Parse runs argv through the option set and hands back whatever was not
// an option: the caller owns the positional-argument grammar. Option-level
// failures are accumulated rather than aborting, so the user sees every
// problem at once.
func Parse(args []string, optSet *getopt.Set) (positionals []string, argErrs []error) {
	if err := optSet.Getopt(args, nil); err != nil {
		argErrs = append(argErrs, err)
	}
	return optSet.Args(), argErrs
}
