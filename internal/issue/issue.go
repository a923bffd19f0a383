// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	IllegalCountId Id = iota + 1
	FileNotReadableId
	ConfigLoadFailedId
	ConflictingCountsId
	ScriptFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	name     string      // stable slug accepted by Lookup
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Name() string {
	return i.name
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the glamour style at stylePath
// ("auto", "dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	illegalCountIssue = &Issue{
		id:   IllegalCountId,
		name: "illegal-count",
		mdMsg: `
# Illegal line or byte count

The value given to -n or -c is not a whole number.

## Accepted forms
- ` + "`10`" + ` or ` + "`-10`" + `: the last 10 lines (or bytes)
- ` + "`+10`" + `: everything from line (or byte) 10 onwards, counting from 1
- ` + "`+0`" + `: the whole input
- ` + "`0`" + `: nothing

## Things you can try:
- Remove spaces, units and decimal points from the count
- Use ASCII digits only
- Check the ` + "`lines`" + ` key in your config file and the VTAIL_LINES variable`,
		extLinks: []HttpLink{"https://pubs.opengroup.org/onlinepubs/9799919799/utilities/tail.html"},
	}

	fileNotReadableIssue = &Issue{
		id:   FileNotReadableId,
		name: "file-not-readable",
		mdMsg: `
# A file could not be read

vtail printed a warning such as ` + "`notes.txt: file does not exist`" + ` and
carried on with the remaining files. The exit status stays 0.

## Things you can try:
- Check the path and its permissions:
~~~
$ ls -l notes.txt
~~~
- Directories cannot be tailed; pass the files inside them instead
- Use ` + "`-`" + ` to read standard input explicitly`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		name: "config-load-failed",
		mdMsg: `
# Failed to load configuration

The config file did not match the schema, or a VTAIL_* variable held an
invalid value.

## Things you can try:
- Print the effective configuration and the file location:
~~~
$ vtail config show
$ vtail config path
~~~
- Write a fresh default file to start from:
~~~
$ vtail config init
~~~

## Example config.cue:
~~~cue
lines: "20"
quiet: false
ui: {
	log_level: "info"
}
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	conflictingCountsIssue = &Issue{
		id:   ConflictingCountsId,
		name: "conflicting-counts",
		mdMsg: `
# Both -n and -c were given

A single run selects either lines or bytes, never both.

## Things you can try:
- Keep only one of the flags:
~~~
$ vtail -n 20 app.log
$ vtail -c 512 app.log
~~~`,
	}

	scriptFailedIssue = &Issue{
		id:   ScriptFailedId,
		name: "script-failed",
		mdMsg: `
# Shell script failed

` + "`vtail sh`" + ` could not parse or run the script. Built-in commands report
errors prefixed with ` + "`[vtail] <command>:`" + `.

## Things you can try:
- Run the script with a system shell to compare behaviour
- Check quoting around counts such as ` + "`tail -n \"$N\"`" + `
- Only ` + "`tail`" + ` is built in; other commands are looked up on PATH`,
		extLinks: []HttpLink{"https://github.com/mvdan/sh"},
	}

	issues = map[Id]*Issue{
		illegalCountIssue.Id():      illegalCountIssue,
		fileNotReadableIssue.Id():   fileNotReadableIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		conflictingCountsIssue.Id(): conflictingCountsIssue,
		scriptFailedIssue.Id():      scriptFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}

// Lookup finds an issue by numeric id or by name.
func Lookup(key string) (*Issue, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		i, ok := issues[Id(n)]
		return i, ok
	}
	for _, i := range issues {
		if i.name == key {
			return i, true
		}
	}
	return nil, false
}
