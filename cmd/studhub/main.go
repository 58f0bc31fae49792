package main

import (
	"fmt"
	"os"
	"strings"

	"studhub/internal/cli"
	"studhub/internal/config"
)

func isListingID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "lst-") && len(s) > len("lst-")
}

// rewriteListingLookupArgs turns `studhub <listing-id>` into
// `studhub listings show <listing-id>`. Persistent flags may come first, so
// the first positional token is located rather than assumed to be argv[1].
func rewriteListingLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--user":   true,
		"--format": true,
	}

	insertAt := -1
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isListingID(argv[i+1]) {
				insertAt = i + 1
			}
			break
		}
		if strings.HasPrefix(a, "-") {
			// Unknown flags are skipped without their value so an ID is never swallowed.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isListingID(a) {
			insertAt = i
		}
		break
	}
	if insertAt < 0 {
		return argv
	}

	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:insertAt]...)
	out = append(out, "listings", "show")
	return append(out, argv[insertAt:]...)
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	os.Args = rewriteListingLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
