// Package template renders entry sources.
//
// Sources are Go text/template documents. Besides the variables from the
// configuration (.Vars) and the entry context (.Path, .LogicalPath,
// .Target) a template can call:
//
//	skip               do not build or install this entry on this machine
//	username           the login name of the current user
//	hostname           the host name
//	home               the home directory
//	env NAME           an environment variable
//	defineKeys TEXT    register authorized_keys lines, indexed by name
//	key NAME...        the registered key lines for NAME..., one per line
//
// A typical conditional dotfile:
//
//	{{if ne hostname "workstation"}}{{skip}}{{end}}
//	export EDITOR=vim
//
// Rendering never touches the filesystem.
package template
