package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/ratcalc/internal/ui"
)

func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sratcalc%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Exact rational arithmetic calculator.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [expression]\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s '<3/4> + <-5/6>'\n", fs.Name())
		fmt.Fprintf(out, "  %s -d -e 'round(<22/7>) * 1.5'\n", fs.Name())
		fmt.Fprintf(out, "  %s -matrix data.mtx -epsilon 1e-9\n\n", fs.Name())
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
