package cli

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
)

// captureCobraOutput runs a command through the Cobra tree and returns what
// it printed. Errors are appended as an error line.
func captureCobraOutput(app *App, args []string) string {
	if hasInteractiveFlag(args) {
		return formatter.ErrorLine("interactive forms are not available inside the dashboard")
	}

	quiet := *app
	quiet.IsInteractive = nil
	root := NewRootCmd(&quiet)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		errMsg := err.Error()
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(formatter.ErrorLine(errMsg))
		if strings.Contains(errMsg, "unknown command") && len(args) > 0 {
			if s := suggestAlternatives(root, args[0]); s != "" {
				buf.WriteString("\n" + s)
			}
		}
	}
	return buf.String()
}

func hasInteractiveFlag(args []string) bool {
	for _, a := range args {
		if a == "--interactive" || a == "-i" {
			return true
		}
	}
	return false
}

// commandPaths lists "parent child" paths of every runnable command below
// root, plus top-level groups.
func commandPaths(root *cobra.Command) []string {
	var out []string
	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		out = append(out, c.Name())
		for _, sub := range c.Commands() {
			out = append(out, c.Name()+" "+sub.Name())
		}
	}
	sort.Strings(out)
	return out
}

// suggestAlternatives returns fuzzy-matched command suggestions for an
// unrecognized input.
func suggestAlternatives(root *cobra.Command, input string) string {
	ranks := fuzzy.RankFindNormalizedFold(input, commandPaths(root))
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for i, r := range ranks {
		if i == 3 {
			break
		}
		b.WriteString(fmt.Sprintf("\n  %s", formatter.StyleGreen.Render(r.Target)))
	}
	return b.String()
}
