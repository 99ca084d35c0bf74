// Package flagx lets several components share os.Args: each one picks out
// only the flags it owns before handing them to its own flag.FlagSet.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their
// values, in their original order.
//
// Accepted forms are "-f value" and "-f=value". A flag listed in switches is
// boolean: it is kept but never consumes the token that follows it, so
// "-u positional" does not swallow "positional".
func FilterArgs(args []string, allowedFlags []string, switches ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags)+len(switches))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	for _, f := range switches {
		allowed[f] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		isSwitch, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if isSwitch {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile extracts the JSON config path given by -c or -config from args
// (normally os.Args[1:]). The last occurrence wins; "" means no file.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
