package relay

import "strings"

// Flag marks a relayed elevated child. It is only recognized as the first
// argument and is removed before command-line parsing.
const Flag = "--relay-to"

// StripArgs splits a leading "--relay-to <path>" or "--relay-to=<path>" off
// args. channel is "" when args do not start with the flag.
func StripArgs(args []string) (channel string, rest []string) {
	if len(args) == 0 {
		return "", args
	}
	first := args[0]
	if first == Flag {
		if len(args) < 2 {
			return "", args[1:]
		}
		return args[1], args[2:]
	}
	if v, ok := strings.CutPrefix(first, Flag+"="); ok {
		return v, args[1:]
	}
	return "", args
}

// ChildArgs prefixes args with the relay flag for channel.
func ChildArgs(channel string, args []string) []string {
	out := make([]string, 0, len(args)+2)
	out = append(out, Flag, channel)
	return append(out, args...)
}
