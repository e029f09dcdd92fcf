// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	MetadataParseErrorId
	NoCandidatesId
	InvalidExclusionId
	OrderingCycleId
	ListenerFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
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

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No module manifest found!

We scanned the configured search paths but found no modwire.manifest file.

## Search locations (in order of precedence):
1. Paths passed via --search-path
2. search_paths entries in your config file

## Things you can try:
- Verify the search paths point at directories containing packaged modules
- Check that each module ships a modwire.manifest at its root
- List what was discovered:
~~~
$ modwire inspect
~~~

## Example manifest:
~~~properties
io.modwire.module=\
  com.example.data \
  com.example.web
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse a module manifest!

A modwire.manifest file contains invalid properties syntax.

## Common issues:
- Unterminated line continuations (trailing backslash with no next line)
- Non-UTF-8 content
- Keys without values

## Things you can try:
- Check the error message above for the offending file
- Module identifiers are separated by whitespace, not commas:
~~~properties
io.modwire.module=com.example.data com.example.web
~~~`,
	}

	metadataParseErrorIssue = &Issue{
		id: MetadataParseErrorId,
		mdMsg: `
# Failed to parse precomputed metadata!

A modwire.metadata file next to a manifest could not be read.

## Expected format (flattened properties):
~~~properties
com.example.data.order=100
com.example.web.after=com.example.data
com.example.web.requires=http,sql
~~~

## Things you can try:
- Check the error message above for the offending file
- Regenerate the metadata with your build tooling
- Delete the metadata file: modules without precomputed facts are
  still resolved, just without fast-path filtering`,
	}

	noCandidatesIssue = &Issue{
		id: NoCandidatesId,
		mdMsg: `
# No module candidates found!

The registry has no modules registered under the queried capability.
This usually means a packaging problem, not an intentionally empty setup.

## Things you can try:
- Check which capability key is being queried:
~~~
$ modwire config show
~~~

- Inspect what the manifests actually register:
~~~
$ modwire inspect
~~~

- Verify each manifest uses the expected capability key:
~~~properties
io.modwire.module=com.example.data
~~~`,
	}

	invalidExclusionIssue = &Issue{
		id: InvalidExclusionId,
		mdMsg: `
# Invalid exclusion!

One or more excluded identifiers name real modules that are not
candidates under the queried capability. Excluding a module that could
never activate is almost always a configuration mistake.

## Things you can try:
- Check the offending identifiers listed above for typos
- Remove exclusions for modules registered under a different capability
- Identifiers that are entirely unknown are tolerated, so exclusions
  for optional modules absent from the search path are fine`,
	}

	orderingCycleIssue = &Issue{
		id: OrderingCycleId,
		mdMsg: `
# Module ordering cycle detected!

The after/before facts of the selected modules form a cycle, so no
valid activation order exists.

## Example of a cycle:
~~~properties
com.example.a.after=com.example.b
com.example.b.after=com.example.a
~~~

## Things you can try:
- Review the offending identifiers listed above
- Remove one side of the circular constraint
- Prefer absolute order values for coarse layering and after/before
  only for true adjacency requirements`,
	}

	listenerFailedIssue = &Issue{
		id: ListenerFailedId,
		mdMsg: `
# Resolution listener failed!

A registered listener returned an error while observing a resolution
event, which aborts the pass.

## Things you can try:
- Run with verbose mode to see the listener's own error:
~~~
$ modwire --verbose resolve
~~~

- Fix or unregister the failing listener
- Listeners observe results only; they should not need write access
  to anything the engine touches`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the modwire configuration file.

## Configuration file locations:
- Linux: ~/.config/modwire/config.cue
- macOS: ~/Library/Application Support/modwire/config.cue
- Windows: %APPDATA%\modwire\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ modwire config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/modwire/config.cue
~~~

## Example configuration:
~~~cue
search_paths: [
    "/opt/modules"
]

resolution: {
  enabled: true
  exclude: ["com.example.legacy"]
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		metadataParseErrorIssue.Id(): metadataParseErrorIssue,
		noCandidatesIssue.Id():       noCandidatesIssue,
		invalidExclusionIssue.Id():   invalidExclusionIssue,
		orderingCycleIssue.Id():      orderingCycleIssue,
		listenerFailedIssue.Id():     listenerFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
