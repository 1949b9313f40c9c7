package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/rdspggo/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for rdspg
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_rdspg()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
    fi

    case "$prev" in
    --action|-a)
        COMPREPLY=( $(compgen -W "compare copy diff merge" -- "$cur") )
        return 0
        ;;
    --output|-o)
        COMPREPLY=( $(compgen -W "text table json raw yaml" -- "$cur") )
        return 0
        ;;
    esac

    local opts="--action -a --parameter-group -p --source-region -s --dest-parameter-group -d --dest-region -w --color -c --filter -f --output -o --sort --titles -t --dry-run --yes -y completion --help --version"
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _rdspg rdspg
`

const zshCompletionScript = `#compdef rdspg

_rdspg() {
  if (( CURRENT == 2 )) && [[ $words[2] == completion ]]; then
    _arguments '1: :((bash zsh))'
    return
  fi

  _arguments -C \
    '(-a --action)'{-a,--action}'[action to take]:action:(compare copy diff merge)' \
    '(-p --parameter-group)'{-p,--parameter-group}'[source parameter group]:group' \
    '(-s --source-region)'{-s,--source-region}'[source region]:region' \
    '(-d --dest-parameter-group)'{-d,--dest-parameter-group}'[destination parameter group]:group' \
    '(-w --dest-region)'{-w,--dest-region}'[destination region]:region' \
    '(-c --color)'{-c,--color}'[enable colored table output]' \
    '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
    '(-o --output)'{-o,--output}'[output format]:format:(text table json raw yaml)' \
    '--sort[sort columns]:columns' \
    '(-t --titles)'{-t,--titles}'[show titles]' \
    '--dry-run[print the change set without applying]' \
    '(-y --yes)'{-y,--yes}'[skip the confirmation prompt]'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _rdspg rdspg rdspggo
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
			fmt.Fprintln(os.Stderr, "usage: rdspg completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "rdspg completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: CompletionCommandAction,
	}
}
