package cmd

import (
	"strconv"
	"strings"
)

// Invocation is a flat view of a command line: the command name, its
// positional arguments and its flags.
type Invocation struct {
	Command     string
	Positionals []string
	Flags       map[string]string
}

// ParseArgs splits argv (without the program name) into an Invocation.
// The first non-flag token is the command. A flag followed by a non-flag
// token takes it as its value, "--key=value" is split on the first "=",
// and any other flag is recorded as "true". A bare "--" ends flag parsing.
func ParseArgs(argv []string) Invocation {
	inv := Invocation{Flags: make(map[string]string)}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "--" {
			for _, rest := range argv[i+1:] {
				inv.addPositional(rest)
			}
			break
		}

		if !isFlag(arg) {
			inv.addPositional(arg)
			continue
		}

		key := strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(key, "="); ok {
			inv.Flags[k] = v
			continue
		}
		if i+1 < len(argv) && !isFlag(argv[i+1]) {
			inv.Flags[key] = argv[i+1]
			i++
			continue
		}
		inv.Flags[key] = "true"
	}

	return inv
}

// OptionalValueFlags are flags that take a value but fall back to a default
// when the command line gives them none.
var OptionalValueFlags = []string{"days"}

// NormalizeArgs rewrites every optional-value flag that ParseArgs records as
// a bare "true" into "--name=true". pflag would otherwise fail on a trailing
// "--days" or swallow the flag that follows it.
func NormalizeArgs(argv []string) []string {
	inv := ParseArgs(argv)
	bare := make(map[string]bool)
	for _, name := range OptionalValueFlags {
		if inv.Flags[name] == "true" {
			bare[name] = true
		}
	}
	if len(bare) == 0 {
		return argv
	}

	out := make([]string, 0, len(argv))
	for i, arg := range argv {
		if arg == "--" {
			return append(out, argv[i:]...)
		}
		name := strings.TrimLeft(arg, "-")
		if isFlag(arg) && bare[name] && (i+1 == len(argv) || isFlag(argv[i+1])) {
			out = append(out, "--"+name+"=true")
			continue
		}
		out = append(out, arg)
	}
	return out
}

func (inv *Invocation) addPositional(arg string) {
	if inv.Command == "" {
		inv.Command = arg
		return
	}
	inv.Positionals = append(inv.Positionals, arg)
}

// isFlag reports whether arg starts a flag. Negative numbers are values.
func isFlag(arg string) bool {
	if len(arg) < 2 || !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err != nil
}
