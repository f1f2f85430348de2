// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestInvalidId
	CordovaNotFoundId
	CordovaCommandFailedId
	ConfigLoadFailedId
	InvalidPluginSpecId
	HostNotSupportedId
	OpenNotSupportedId
	WebAppToolkitSetupId
	SubPlatformsFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation about the issue
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
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No manifest found!

A W3C web app manifest is needed to generate the Cordova projects.

## Things you can try:
- Pass the manifest path explicitly:
~~~
$ manifoldjs-cordova create --manifest ./manifest.json
~~~

- Make sure the file is readable and named ` + "`manifest.json`",
		extLinks: []HttpLink{"https://www.w3.org/TR/appmanifest/"},
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# The manifest is not valid!

The manifest could not be parsed or is missing required members.

## Requirements:
- The file must be a JSON object
- ` + "`start_url`" + ` must be an absolute URL with a host, e.g. ` + "`https://example.com/`" + `
- ` + "`icons`" + `, when present, must be a list of objects with ` + "`src`" + ` and ` + "`sizes`" + `

## Things you can try:
- Validate the file with a JSON linter
- Run the validation command to list icon problems:
~~~
$ manifoldjs-cordova validate --manifest ./manifest.json
~~~`,
	}

	cordovaNotFoundIssue = &Issue{
		id: CordovaNotFoundId,
		mdMsg: `
# Cordova is not installed!

The ` + "`cordova`" + ` command could not be found in any search path.

## Things you can try:
- Install Cordova with npm:
~~~
$ npm install -g cordova
~~~

- Add the npm global bin folder to your PATH
- Or configure the search paths explicitly:
~~~cue
cordova: {
	search_paths: ["/usr/local/lib/node_modules/.bin"]
}
~~~`,
		extLinks: []HttpLink{"https://cordova.apache.org/docs/en/latest/guide/cli/"},
	}

	cordovaCommandFailedIssue = &Issue{
		id: CordovaCommandFailedId,
		mdMsg: `
# A Cordova command failed!

Cordova exited with an error. Its output is shown above.

## Things you can try:
- Run again with ` + "`--verbose`" + ` to stream the full Cordova output
- Check your network connection, plugins are downloaded from npm
- Check that the SDK of each requested platform is installed:
~~~
$ cordova requirements
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where the configuration is read from:
~~~
$ manifoldjs-cordova config path
~~~

- Recreate the default configuration:
~~~
$ manifoldjs-cordova config init
~~~`,
	}

	invalidPluginSpecIssue = &Issue{
		id: InvalidPluginSpecId,
		mdMsg: `
# Invalid hosted web app plugin!

The plugin set through ` + "`CORDOVA_HOSTED_WEBAPP_PLUGIN`" + ` or ` + "`cordova.plugin`" + ` could not be parsed.

## Accepted forms:
- ` + "`cordova-plugin-hostedwebapp`" + `
- ` + "`cordova-plugin-hostedwebapp@>=0.2.0 <0.3.0`" + `
- a git URL or a local folder`,
	}

	hostNotSupportedIssue = &Issue{
		id: HostNotSupportedId,
		mdMsg: `
# Host not supported!

The selected platform needs native tooling that is not available on this operating system.

## Requirements:
- iOS apps need macOS with Xcode
- Windows apps need Windows with Visual Studio

## Things you can try:
- Run the command on a supported machine
- Select only the platforms your machine can build`,
	}

	openNotSupportedIssue = &Issue{
		id: OpenNotSupportedId,
		mdMsg: `
# Cannot open this project!

Only the Windows platform has an IDE project that can be opened, and only on Windows.

## Things you can try:
- Open the generated project folder with your platform's IDE directly
- Run on Windows:
~~~
$ manifoldjs-cordova open windows
~~~`,
	}

	webAppToolkitSetupIssue = &Issue{
		id: WebAppToolkitSetupId,
		mdMsg: `
# Manual steps required!

The Web App Toolkit plugin requires you to perform manual steps before running the app.

Follow the steps described in the Web App Toolkit documentation.`,
		extLinks: []HttpLink{"https://github.com/manifoldjs/Web-App-ToolKit"},
	}

	subPlatformsFailedIssue = &Issue{
		id: SubPlatformsFailedId,
		mdMsg: `
# Some platforms were not completed!

The project was generated, but finishing one or more platforms failed.
The other platforms are ready to use.

## Things you can try:
- Check the errors listed above for each platform
- Remove the output folder and generate only the failed platforms again`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The output folder is not writable
- Shortcuts cannot be created (symlinks are restricted)

## Things you can try:
- Check file and folder permissions
- Choose an output folder you own:
~~~
$ manifoldjs-cordova create --dir ~/apps/myapp
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():     manifestNotFoundIssue,
		manifestInvalidIssue.Id():      manifestInvalidIssue,
		cordovaNotFoundIssue.Id():      cordovaNotFoundIssue,
		cordovaCommandFailedIssue.Id(): cordovaCommandFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		invalidPluginSpecIssue.Id():    invalidPluginSpecIssue,
		hostNotSupportedIssue.Id():     hostNotSupportedIssue,
		openNotSupportedIssue.Id():     openNotSupportedIssue,
		webAppToolkitSetupIssue.Id():   webAppToolkitSetupIssue,
		subPlatformsFailedIssue.Id():   subPlatformsFailedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
