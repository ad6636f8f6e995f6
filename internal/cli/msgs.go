package cli

// Command descriptions
const (
	MsgRootShort = "Deploy templated configuration files"
	MsgRootLong  = `coffle builds the files of a repository through a template engine and
links the results into a target directory, usually your home directory.

Files edited in place are detected and never overwritten silently. Files
already present in the target are backed up before being replaced and
restored on uninstall.`

	MsgInitShort      = "Initialize a coffle repository"
	MsgBuildShort     = "Build the repository files"
	MsgInstallShort   = "Install the built files into the target"
	MsgUninstallShort = "Remove installed files from the target"
	MsgInfoShort      = "Show the repository directories"
	MsgStatusShort    = "Show the status of every entry"
	MsgDiffShort      = "Show edits made to built files"
	MsgConfigShort    = "Print the effective configuration"
	MsgVersionShort   = "Print version information"
	MsgCompleteShort  = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose      = "Increase log verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagQuiet        = "Do not print operation headers"
	MsgFlagRepository   = "Repository directory (default: current directory)"
	MsgFlagTarget       = "Target directory (default: home directory)"
	MsgFlagColor        = "Color output: auto, always or never"
	MsgFlagConfig       = "Configuration file (default: $XDG_CONFIG_HOME/coffle/config.toml)"
	MsgFlagRebuild      = "Rebuild entries that are up to date"
	MsgFlagNoRebuild    = "Only build outdated entries"
	MsgFlagOverwrite    = "Overwrite modified outputs and existing target files"
	MsgFlagNoOverwrite  = "Never overwrite modified outputs or existing target files"
	MsgFlagDefaults     = "Print the commented default configuration instead"
	MsgCompletionUsage  = "completion [bash|zsh|fish|powershell]"
	MsgInitializeFormat = "Initializing coffle repository in %s\n"
	MsgAlreadyInitFmt   = "%s is already a coffle repository\n"
)

// Fatal error messages
const (
	MsgNotRepository      = "%s is not a coffle repository.\nUse \"coffle init\" to initialize the directory."
	MsgConfigCorrupt      = "Repository configuration file corrupt"
	MsgConfigNotRecord    = MsgConfigCorrupt + ": not a hash"
	MsgVersionMissing     = MsgConfigCorrupt + ": version missing"
	MsgVersionNotInteger  = MsgConfigCorrupt + ": version not an integer"
	MsgVersionTooNew      = "This version of coffle is too old for this repository"
	MsgStatusCorrupt      = "Status file corrupt"
	MsgStatusVersion      = "This version of coffle is too old for the status file"
	MsgErrorFormat        = "Error: %s"
	MsgNoCommandSpecified = "no command specified"
)

// MsgUsageTemplate is the help layout
const MsgUsageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespace}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespace}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
