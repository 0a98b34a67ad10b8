package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/hanoi/internal/ui"
)

// envHelp lists the environment variables shown in the usage banner.
var envHelp = []string{
	"N", "FROM", "TO", "VIA", "FORMAT", "NUMBERED", "OUTPUT", "QUIET",
	"NO_COLOR", "TIMEOUT", "SERVER", "PORT", "MAX_SERVER_HEIGHT", "LOG_LEVEL",
}

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sTowers of Hanoi%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Streams the moves solving a tower of n discs, one at a time.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})

		fmt.Fprintf(out, "\n%sEnvironment:%s\n ", t.Warning, t.Reset)
		for _, key := range envHelp {
			fmt.Fprintf(out, " %s%s", EnvPrefix, key)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out)
	}
}
