// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/extkit/internal/meta"
)

const bashCompletionScript = `# bash completion for extkit
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_extkit()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "fetch get set clear stat currency completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}

    case "$cmd" in
    fetch)
      local opts="--method -X --token -t --timeout --cache --header -H --body -d --no-stamp --path -p --output -o --tldr"
            ;;
    get)
      local opts="--dir --output -o --tldr local sync"
            ;;
    set|clear)
      local opts="--dir --tldr local sync"
            ;;
    stat)
      local opts="--dir --tldr"
            ;;
    currency)
      local opts="--locale -l --tldr"
            ;;
    completion)
      local opts="bash zsh"
            ;;
    *)
      local opts=""
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}
complete -F _extkit extkit
`

const zshCompletionScript = `#compdef extkit

_extkit() {
  local -a commands
  commands=(
    'fetch:issue an HTTP request the way the extension would'
    'get:read a value from a storage area'
    'set:write values into a storage area'
    'clear:wipe a storage area'
    'stat:summarize the storage areas'
    'currency:format a monetary amount'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe 'command' commands
    return
  fi

  case "$words[2]" in
    fetch)
      _arguments -C \
        '(-X --method)'{-X,--method}'[HTTP method]' \
        '(-t --token)'{-t,--token}'[bearer token]' \
        '--timeout[request timeout in ms]' \
        '--cache[cache window in ms]' \
        '(-H --header)'{-H,--header}'[extra header NAME=VALUE]' \
        '(-d --body)'{-d,--body}'[JSON request body]' \
        '--no-stamp[suppress cache-busting parameter]' \
        '(-p --path)'{-p,--path}'[gjson path to extract]' \
        '(-o --output)'{-o,--output}'[output format]' \
        '::URL:'
      ;;
    get|set|clear)
      _arguments -C \
        '--dir[storage directory]' \
        '1:area:((local sync))'
      ;;
    currency)
      _arguments -C \
        '(-l --locale)'{-l,--locale}'[BCP 47 locale]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _extkit extkit
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: extkit completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "extkit completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
