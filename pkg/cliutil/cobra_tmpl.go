package cliutil

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

// AnnotationEnvironment is the cobra.Command annotation that holds the "Environment:" section of
// the help text; set it with DocumentEnvironment.
const AnnotationEnvironment = "cliutil.environment"

//nolint:gochecknoglobals // Would be 'const'.
var templateFuncs = template.FuncMap{
	"getTerminalWidth": GetTerminalWidth,
	"wrap":             Wrap,
	"wrapIndent":       WrapIndent,
	"add": func(args ...int) int {
		ret := 0
		for _, arg := range args {
			ret += arg
		}
		return ret
	},
}

func init() {
	cobra.AddTemplateFuncs(templateFuncs)
}

// EnvVar is an environment variable that a command obeys.
type EnvVar struct {
	Name  string
	Usage string
}

// DocumentEnvironment lists `vars` in the "Environment:" section of the help text of `cmd`.
func DocumentEnvironment(cmd *cobra.Command, vars ...EnvVar) {
	width := 0
	for _, v := range vars {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, fmt.Sprintf("  %-*s   %s", width, v.Name, v.Usage))
	}
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[AnnotationEnvironment] = strings.Join(lines, "\n")
}

// HelpTemplate is a cobra help template that wraps long text to the terminal width.
const HelpTemplate = `Usage: {{ .UseLine }}

{{- /* Short help text ---------------------------------------------------- */}}
{{- if .Short }}
{{ .Short }}
{{- end }}

{{- /* Long help text ----------------------------------------------------- */}}
{{- if .Long }}

{{ .Long | wrap getTerminalWidth | trimTrailingWhitespaces }}
{{- end }}

{{- /* Aliases ------------------------------------------------------------ */}}
{{- if .Aliases }}

Aliases:
  {{ .NameAndAliases }}
{{- end }}

{{- /* Examples ----------------------------------------------------------- */}}
{{- if .HasExample }}

Examples:
{{ .Example }}
{{- end }}

{{- /* Subcommands -------------------------------------------------------- */}}
{{- if .HasAvailableSubCommands }}

Available Commands:
{{- range .Commands}}
  {{- if (or .IsAvailableCommand (eq .Name "help")) }}
    {{- "\n" }}  {{ rpad .Name .NamePadding }}   {{ .Short | wrapIndent (add .NamePadding 5) getTerminalWidth }}
  {{- end }}
{{- end }}
{{- end }}

{{- /* Local Flags -------------------------------------------------------- */}}
{{- if .HasAvailableLocalFlags }}

Flags:
{{ getTerminalWidth | .LocalFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- /* Global flags ------------------------------------------------------- */}}
{{- if .HasAvailableInheritedFlags }}

Global Flags:
{{ getTerminalWidth | .InheritedFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- /* Environment -------------------------------------------------------- */}}
{{- with (index .Annotations "cliutil.environment") }}

Environment:
{{ . }}
{{- end }}

{{- /* Help topics -------------------------------------------------------- */}}
{{- if .HasHelpSubCommands }}

Additional help topics:
{{- range .Commands }}
  {{- if .IsAdditionalHelpTopicCommand }}
    {{- "\n" }}  {{ rpad .CommandPath .CommandPathPadding }}   {{ .Short | wrapIndent (add .NamePadding 5) getTerminalWidth }}
  {{- end }}
{{- end }}
{{- end }}

{{- /* Help footer -------------------------------------------------------- */}}
{{- if .HasAvailableSubCommands }}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end}}
`
