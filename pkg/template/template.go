package template

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"strings"
	"text/template"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/logging"
)

// Default delimiters
const (
	DefaultLeftDelim  = "{{"
	DefaultRightDelim = "}}"
)

// Context is the read-only view of an entry a template can see
type Context struct {
	// Path is the escaped path of the entry within the repository
	Path string

	// LogicalPath is the path the entry is deployed under, relative to the
	// target directory
	LogicalPath string

	// Target is the absolute deployment location
	Target string
}

// Result is the outcome of rendering a source
type Result struct {
	Text string

	// Skipped is set when the template called skip. Text is empty then.
	Skipped bool
}

// Renderer turns raw source text into the built artifact
type Renderer interface {
	Render(input []byte, ctx Context) (Result, error)
}

// Options configures a TemplateRenderer
type Options struct {
	LeftDelim  string
	RightDelim string
	Variables  map[string]string
}

// TemplateRenderer is the text/template based Renderer
type TemplateRenderer struct {
	leftDelim  string
	rightDelim string
	variables  map[string]string
}

// templateData is what "." refers to inside a template
type templateData struct {
	Path        string
	LogicalPath string
	Target      string
	Vars        map[string]string
}

// NewTemplateRenderer creates a renderer
func NewTemplateRenderer(opts Options) *TemplateRenderer {
	r := &TemplateRenderer{
		leftDelim:  opts.LeftDelim,
		rightDelim: opts.RightDelim,
		variables:  make(map[string]string, len(opts.Variables)),
	}
	if r.leftDelim == "" {
		r.leftDelim = DefaultLeftDelim
	}
	if r.rightDelim == "" {
		r.rightDelim = DefaultRightDelim
	}
	for k, v := range opts.Variables {
		r.variables[k] = v
	}
	return r
}

// Render executes input as a template
func (r *TemplateRenderer) Render(input []byte, ctx Context) (Result, error) {
	logger := logging.GetLogger("template")

	// Per-render state, captured by the function map
	skipped := false
	var keys map[string]*Key

	funcs := template.FuncMap{
		"skip": func() string {
			skipped = true
			return ""
		},
		"username": username,
		"hostname": hostname,
		"home":     home,
		"env":      os.Getenv,
		"defineKeys": func(text string) (string, error) {
			parsed, err := ParseKeys(strings.Split(text, "\n"))
			if err != nil {
				return "", err
			}
			keys = parsed
			return "", nil
		},
		"key": func(names ...string) (string, error) {
			lines := make([]string, 0, len(names))
			for _, name := range names {
				k, ok := keys[name]
				if !ok {
					return "", fmt.Errorf("undefined key %q", name)
				}
				lines = append(lines, k.Complete)
			}
			return strings.Join(lines, "\n"), nil
		},
	}

	tmpl, err := template.New(ctx.Path).
		Delims(r.leftDelim, r.rightDelim).
		Funcs(funcs).
		Parse(string(input))
	if err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrTemplateParse, "failed to parse template %s", ctx.Path).
			WithDetail("path", ctx.Path)
	}

	data := templateData{
		Path:        ctx.Path,
		LogicalPath: ctx.LogicalPath,
		Target:      ctx.Target,
		Vars:        r.variables,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrTemplateExecute, "failed to render template %s", ctx.Path).
			WithDetail("path", ctx.Path)
	}

	if skipped {
		logger.Debug().Str("path", ctx.Path).Msg("template requested skip")
		return Result{Skipped: true}, nil
	}

	logger.Trace().Str("path", ctx.Path).Int("bytes", buf.Len()).Msg("rendered template")
	return Result{Text: buf.String()}, nil
}

func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}

func home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return dir
}
