// Package flagx lets several components share os.Args without stepping
// on each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (and their values).
//
// Both "-c conf.json" and "-c=conf.json" forms are recognized. A token
// that starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := known[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// NewFlagSet returns a ContinueOnError flag set together with the subset
// of os.Args[1:] it is allowed to parse.
func NewFlagSet(name string, allowed ...string) (*flag.FlagSet, []string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs, FilterArgs(os.Args[1:], allowed)
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// It returns an empty string when neither flag is present.
func ConfigPath() string {
	var path string

	fs, args := NewFlagSet("json", "-c", "-config")
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return path
}
