package cli

import "github.com/urfave/cli/v3"

// joinFlags concatenates flag groups in order into a fresh slice, so the
// groups' backing arrays are never shared with the command.
func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]cli.Flag, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
