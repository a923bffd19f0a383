// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/invowk/vtail/internal/issue"

	"github.com/spf13/cobra"
)

// newIssueCommand creates `vtail issue`, the troubleshooting guide browser.
func newIssueCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "issue [ID|NAME]",
		Short: "Explain a problem and how to fix it",
		Long: `Explain a problem and how to fix it.

Without arguments, list the known issues. With an issue number or name,
render its guide.`,
		Example: `  vtail issue
  vtail issue illegal-count
  vtail issue 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				app.listIssues()
				return nil
			}
			return app.showIssue(args[0])
		},
	}
}

func (a *App) listIssues() {
	for _, iss := range issue.Values() {
		fmt.Fprintf(a.Stdout, "%s  %-20s %s\n",
			CmdStyle.Render(fmt.Sprintf("%2d", iss.Id())),
			iss.Name(),
			SubtitleStyle.Render(issueTitle(iss)))
	}
}

func (a *App) showIssue(key string) error {
	iss, ok := issue.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown issue %q (run 'vtail issue' to list them)", key)
	}
	rendered, err := iss.Render(a.glamourStyle())
	if err != nil {
		return fmt.Errorf("failed to render issue %d: %w", iss.Id(), err)
	}
	fmt.Fprint(a.Stdout, rendered)
	return nil
}

// issueTitle returns the first Markdown heading of the issue.
func issueTitle(iss *issue.Issue) string {
	for line := range strings.SplitSeq(string(iss.MarkdownMsg()), "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return title
		}
	}
	return iss.Name()
}
