package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
)

// ShellEnv overrides shell detection.
const ShellEnv = "PVX_SHELL"

// Supported shells.
var Shells = []string{"bash", "zsh", "fish"}

// DetectShell picks the target shell: the explicit argument, then PVX_SHELL,
// then the basename of SHELL.
func DetectShell(arg string) (string, error) {
	shell := strings.TrimSpace(arg)
	if shell == "" {
		shell = strings.TrimSpace(os.Getenv(ShellEnv))
	}
	if shell == "" {
		if login := strings.TrimSpace(os.Getenv("SHELL")); login != "" {
			shell = filepath.Base(login)
		}
	}
	if shell == "" {
		return "", fmt.Errorf("cannot detect shell; pass one of %s or set %s", strings.Join(Shells, ", "), ShellEnv)
	}
	if !slices.Contains(Shells, shell) {
		return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Shells, ", "))
	}
	return shell, nil
}

type scriptData struct {
	Name string
}

func render(t *template.Template, shell, name string) (string, error) {
	var sb strings.Builder
	if err := t.ExecuteTemplate(&sb, shell, scriptData{Name: name}); err != nil {
		return "", fmt.Errorf("failed to render %s script: %w", shell, err)
	}
	return sb.String(), nil
}

// Completion scripts call back into the binary with
// --generate-shell-completion appended to the words typed so far.
var completionTemplates = template.Must(template.New("completions").Parse(`
{{- define "bash" -}}
# {{.Name}} bash completion. Add to ~/.bashrc:
#   eval "$({{.Name}} gen completions bash)"
_{{.Name}}_complete() {
  local cur opts
  COMPREPLY=()
  cur="${COMP_WORDS[COMP_CWORD]}"
  if [[ "$cur" == -* ]]; then
    opts=$("${COMP_WORDS[@]:0:COMP_CWORD}" "$cur" --generate-shell-completion 2>/dev/null)
  else
    opts=$("${COMP_WORDS[@]:0:COMP_CWORD}" --generate-shell-completion 2>/dev/null)
  fi
  local IFS=$'\n'
  COMPREPLY=($(compgen -W "$opts" -- "$cur"))
}
complete -o bashdefault -o default -F _{{.Name}}_complete {{.Name}}
{{end -}}

{{- define "zsh" -}}
#compdef {{.Name}}
# {{.Name}} zsh completion. Add to ~/.zshrc:
#   eval "$({{.Name}} gen completions zsh)"
_{{.Name}}() {
  local -a opts
  local current="${words[-1]}"
  if [[ "$current" == -* ]]; then
    opts=("${(@f)$(${words[@]:0:#words[@]-1} "$current" --generate-shell-completion 2>/dev/null)}")
  else
    opts=("${(@f)$(${words[@]:0:#words[@]-1} --generate-shell-completion 2>/dev/null)}")
  fi
  if [[ "${opts[1]}" != "" ]]; then
    _describe 'values' opts
  else
    _files
  fi
}
compdef _{{.Name}} {{.Name}}
{{end -}}

{{- define "fish" -}}
# {{.Name}} fish completion. Add to ~/.config/fish/config.fish:
#   {{.Name}} gen completions fish | source
function __{{.Name}}_complete
    set -l args (commandline -opc)
    set -l current (commandline -ct)
    if string match -q -- '-*' $current
        $args $current --generate-shell-completion 2>/dev/null
    else
        $args --generate-shell-completion 2>/dev/null
    end
end
complete -c {{.Name}} -f -a '(__{{.Name}}_complete)'
{{end -}}
`))

// Autoactivate hooks ask "<name> gen venv-dir" for the project's bin
// directory whenever the working directory changes and swap it into PATH.
var autoactivateTemplates = template.Must(template.New("autoactivate").Parse(`
{{- define "bash" -}}
# {{.Name}} autoactivate. Add to ~/.bashrc:
#   eval "$({{.Name}} gen autoactivate bash)"
_{{.Name}}_autoactivate() {
  local bin
  bin="$(command {{.Name}} gen venv-dir 2>/dev/null)"
  [ "$bin" = "${_PVX_ACTIVE_BIN:-}" ] && return
  if [ -n "${_PVX_ACTIVE_BIN:-}" ]; then
    PATH=":$PATH:"
    PATH="${PATH//:${_PVX_ACTIVE_BIN}:/:}"
    PATH="${PATH#:}"
    PATH="${PATH%:}"
    unset VIRTUAL_ENV _PVX_ACTIVE_BIN
  fi
  if [ -n "$bin" ] && [ -d "$bin" ]; then
    export PATH="$bin:$PATH"
    export VIRTUAL_ENV="${bin%/*}"
    _PVX_ACTIVE_BIN="$bin"
  fi
}
case ";${PROMPT_COMMAND:-};" in
  *";_{{.Name}}_autoactivate;"*) ;;
  *) PROMPT_COMMAND="_{{.Name}}_autoactivate${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
esac
{{end -}}

{{- define "zsh" -}}
# {{.Name}} autoactivate. Add to ~/.zshrc:
#   eval "$({{.Name}} gen autoactivate zsh)"
_{{.Name}}_autoactivate() {
  local bin
  bin="$(command {{.Name}} gen venv-dir 2>/dev/null)"
  [[ "$bin" == "${_PVX_ACTIVE_BIN:-}" ]] && return
  if [[ -n "${_PVX_ACTIVE_BIN:-}" ]]; then
    path=(${path:#${_PVX_ACTIVE_BIN}})
    unset VIRTUAL_ENV _PVX_ACTIVE_BIN
  fi
  if [[ -n "$bin" && -d "$bin" ]]; then
    path=("$bin" $path)
    export VIRTUAL_ENV="${bin:h}"
    typeset -g _PVX_ACTIVE_BIN="$bin"
  fi
}
autoload -Uz add-zsh-hook
add-zsh-hook chpwd _{{.Name}}_autoactivate
_{{.Name}}_autoactivate
{{end -}}

{{- define "fish" -}}
# {{.Name}} autoactivate. Add to ~/.config/fish/config.fish:
#   {{.Name}} gen autoactivate fish | source
function __{{.Name}}_autoactivate --on-variable PWD
    set -l bin (command {{.Name}} gen venv-dir 2>/dev/null)
    if test "$bin" = "$__pvx_active_bin"
        return
    end
    if set -q __pvx_active_bin[1]
        if set -l idx (contains -i -- $__pvx_active_bin $PATH)
            set -e PATH[$idx]
        end
        set -e VIRTUAL_ENV
        set -e __pvx_active_bin
    end
    if test -n "$bin"; and test -d "$bin"
        set -gx PATH $bin $PATH
        set -gx VIRTUAL_ENV (dirname $bin)
        set -g __pvx_active_bin $bin
    end
end
__{{.Name}}_autoactivate
{{end -}}
`))
