// Package shell renders the shell integration snippets and the prompt shown
// on the query line.
package shell

import (
	"os"
	"strings"
	"text/template"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/cockroachdb/errors"

	"github.com/NeverVane/hsb/pkg/history"
)

// Integration describes how the shell should start hsb and pick up its
// result.
type Integration struct {
	BinaryPath string
	// Output mode hsb runs with; "file" needs a widget that reads OutputFile.
	OutputMode string
	OutputFile string
}

var bashTemplate = template.Must(template.New("bash").Parse(heredoc.Doc(`
	# hsb: history suggest box
	# append new history items to the history file right away
	shopt -s histappend
	HISTCONTROL=ignoreboth
	HISTFILESIZE=1000000
	HISTSIZE=${HISTFILESIZE}
	export PROMPT_COMMAND="history -a; history -n; ${PROMPT_COMMAND}"
	{{- if eq .OutputMode "file"}}

	__hsb_search() {
	    "{{.BinaryPath}}" --shell bash --output file -- "$READLINE_LINE" </dev/tty
	    local cmd_file="{{.OutputFile}}"
	    if [[ -f "$cmd_file" ]]; then
	        local selected_cmd=$(head -n1 "$cmd_file" 2>/dev/null)
	        local exec_flag=$(tail -n1 "$cmd_file" 2>/dev/null)
	        rm -f "$cmd_file" 2>/dev/null
	        if [[ -n "$selected_cmd" ]]; then
	            READLINE_LINE="$selected_cmd"
	            READLINE_POINT=${#READLINE_LINE}
	            if [[ "$exec_flag" == "exec" ]]; then
	                printf '%s\n' "$selected_cmd"
	                history -s "$selected_cmd"
	                eval "$selected_cmd"
	            fi
	        fi
	    fi
	}
	if [[ $- =~ .*i.* ]]; then bind -x '"\C-r": __hsb_search'; fi
	{{- else}}

	# bind hsb to CTRL+R
	if [[ $- =~ .*i.* ]]; then bind '"\C-r": "\C-a\C-k{{.BinaryPath}} --shell bash\C-j"'; fi
	{{- end}}
`)))

var zshTemplate = template.Must(template.New("zsh").Parse(heredoc.Doc(`
	# hsb: history suggest box
	# append new history items to the history file right away
	setopt INC_APPEND_HISTORY
	setopt SHARE_HISTORY
	HISTFILE=${HISTFILE:-~/.zsh_history}
	SAVEHIST=1000000
	HISTSIZE=1000000
	{{- if eq .OutputMode "file"}}

	__hsb_search() {
	    local saved_buffer="$BUFFER"
	    BUFFER=""
	    zle -R
	    "{{.BinaryPath}}" --shell zsh --output file -- "$saved_buffer" </dev/tty
	    local cmd_file="{{.OutputFile}}"
	    if [[ -f "$cmd_file" ]]; then
	        BUFFER=$(head -n1 "$cmd_file" 2>/dev/null)
	        local exec_flag=$(tail -n1 "$cmd_file" 2>/dev/null)
	        rm -f "$cmd_file" 2>/dev/null
	        CURSOR=${#BUFFER}
	        if [[ "$exec_flag" == "exec" ]]; then
	            zle accept-line
	        fi
	    else
	        BUFFER="$saved_buffer"
	        CURSOR=${#BUFFER}
	    fi
	    zle reset-prompt
	}
	zle -N __hsb_search
	bindkey '^R' __hsb_search
	{{- else}}

	# bind hsb to CTRL+R
	bindkey -s '^R' '{{.BinaryPath}} --shell zsh\n'
	{{- end}}
`)))

// Snippet renders the configuration block to add to the shell's rc file.
func (i Integration) Snippet(shell history.Shell) (string, error) {
	var tmpl *template.Template
	switch shell {
	case history.Bash:
		tmpl = bashTemplate
	case history.Zsh:
		tmpl = zshTemplate
	default:
		return "", errors.Wrapf(history.ErrUnsupportedShell, "%q (available options: bash, zsh)", string(shell))
	}

	if i.BinaryPath == "" {
		i.BinaryPath = "hsb"
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, i); err != nil {
		return "", errors.Wrapf(err, "failed to render %s integration", shell)
	}
	return b.String(), nil
}

// Prompt is the prompt shown before the query, for example "bwk@box$".
func Prompt(user, host string) string {
	return user + "@" + host + "$"
}

// Hostname returns the current hostname or "unknown" if it cannot be determined
func Hostname() string {
	if hostname, err := os.Hostname(); err == nil {
		return hostname
	}
	return "unknown"
}

// CurrentUser returns the current username or "unknown" if it cannot be determined
func CurrentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}
	return "unknown"
}
