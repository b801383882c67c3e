package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion writes a shell completion script for ratcalc.
//
// Parameters:
//   - out: The destination writer.
//   - shell: "bash", "zsh", "fish", "powershell" or "ps".
//   - engines: Completed as values of -engine, next to "all".
//
// Returns:
//   - error: For an unsupported shell or a failed write.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	switch shell {
	case "bash":
		return writeCompletion(out, bashCompletion, strings.Join(engines, " "))
	case "zsh":
		return writeCompletion(out, zshCompletion, strings.Join(engines, " "))
	case "fish":
		return writeCompletion(out, fishCompletion, strings.Join(engines, " "))
	case "powershell", "ps":
		quoted := make([]string, len(engines))
		for i, e := range engines {
			quoted[i] = "'" + e + "'"
		}
		return writeCompletion(out, powerShellCompletion, strings.Join(quoted, ", "))
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func writeCompletion(out io.Writer, script, engines string) error {
	_, err := fmt.Fprintf(out, script, engines)
	return err
}

const bashCompletion = `# Bash completion script for ratcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_ratcalc_completions() {
    local cur prev opts engines
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V -e --expr -f --matrix --epsilon --engine --timeout -v -d --details --json --server --port --no-color --quiet -q --interactive -i --completion --max-expr-length"
    engines="%s all"

    case "${prev}" in
        --engine|-engine)
            COMPREPLY=( $(compgen -W "${engines}" -- "${cur}") )
            return 0
            ;;
        --completion|-completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        -f|--matrix|-matrix)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        --port|-port)
            COMPREPLY=( $(compgen -W "8080 3000 5000 9000" -- "${cur}") )
            return 0
            ;;
        --timeout|-timeout)
            COMPREPLY=( $(compgen -W "1s 10s 1m 5m" -- "${cur}") )
            return 0
            ;;
        --epsilon|-epsilon)
            COMPREPLY=( $(compgen -W "1e-6 1e-9 1e-12 0" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _ratcalc_completions ratcalc
`

const zshCompletion = `#compdef ratcalc

# Zsh completion script for ratcalc
# Add this to your ~/.zshrc or place in $fpath

_ratcalc() {
    local -a engines
    engines=(%s all)

    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '(-e --expr)'{-e,--expr}'[Expression to evaluate]:expression:' \
        '-f[File with one expression per line]:file:_files' \
        '--matrix[Sparse rational matrix file]:file:_files' \
        '--epsilon[Zero threshold for matrix entries]:epsilon:(1e-6 1e-9 1e-12 0)' \
        '--engine[Engine to use]:engine:($engines)' \
        '--timeout[Maximum evaluation time]:duration:(1s 10s 1m 5m)' \
        '-v[Enable debug logging]' \
        '(-d --details)'{-d,--details}'[Show floor, round and decimal approximation]' \
        '--json[Output in JSON format]' \
        '--server[Start HTTP server mode]' \
        '--port[Server port]:port:(8080 3000 5000 9000)' \
        '--no-color[Disable colored output]' \
        '(-q --quiet)'{-q,--quiet}'[Print bare results only]' \
        '(-i --interactive)'{-i,--interactive}'[Start interactive REPL mode]' \
        '--completion[Generate completion script]:shell:(bash zsh fish powershell)' \
        '--max-expr-length[Longest accepted expression]:bytes:'
}

_ratcalc "$@"
`

const fishCompletion = `# Fish completion script for ratcalc
# Add this to ~/.config/fish/completions/ratcalc.fish

complete -c ratcalc -f

complete -c ratcalc -s h -l help -d 'Show help message'
complete -c ratcalc -s V -l version -d 'Show version information'

complete -c ratcalc -s e -l expr -d 'Expression to evaluate' -x
complete -c ratcalc -s f -d 'File with one expression per line' -rF
complete -c ratcalc -l matrix -d 'Sparse rational matrix file' -rF
complete -c ratcalc -l epsilon -d 'Zero threshold for matrix entries' -xa '1e-6 1e-9 1e-12 0'
complete -c ratcalc -l engine -d 'Engine to use' -xa '%s all'
complete -c ratcalc -l timeout -d 'Maximum evaluation time' -xa '1s 10s 1m 5m'
complete -c ratcalc -l max-expr-length -d 'Longest accepted expression' -x

complete -c ratcalc -s v -d 'Enable debug logging'
complete -c ratcalc -s d -l details -d 'Show floor, round and decimal approximation'
complete -c ratcalc -l json -d 'Output in JSON format'
complete -c ratcalc -s q -l quiet -d 'Print bare results only'
complete -c ratcalc -l no-color -d 'Disable colored output'

complete -c ratcalc -l server -d 'Start HTTP server mode'
complete -c ratcalc -l port -d 'Server port' -xa '8080 3000 5000 9000'

complete -c ratcalc -s i -l interactive -d 'Start interactive REPL mode'
complete -c ratcalc -l completion -d 'Generate completion script' -xa 'bash zsh fish powershell'
`

const powerShellCompletion = `# PowerShell completion script for ratcalc
# Add this to your $PROFILE

$ratcalcEngines = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'ratcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        @{Name = '--help'; Description = 'Show help message' }
        @{Name = '--version'; Description = 'Show version information' }
        @{Name = '--expr'; Description = 'Expression to evaluate' }
        @{Name = '-f'; Description = 'File with one expression per line' }
        @{Name = '--matrix'; Description = 'Sparse rational matrix file' }
        @{Name = '--epsilon'; Description = 'Zero threshold for matrix entries' }
        @{Name = '--engine'; Description = 'Engine to use' }
        @{Name = '--timeout'; Description = 'Maximum evaluation time' }
        @{Name = '-v'; Description = 'Enable debug logging' }
        @{Name = '--details'; Description = 'Show floor, round and decimal approximation' }
        @{Name = '--json'; Description = 'Output in JSON format' }
        @{Name = '--server'; Description = 'Start HTTP server mode' }
        @{Name = '--port'; Description = 'Server port' }
        @{Name = '--no-color'; Description = 'Disable colored output' }
        @{Name = '--quiet'; Description = 'Print bare results only' }
        @{Name = '--interactive'; Description = 'Start interactive REPL mode' }
        @{Name = '--completion'; Description = 'Generate completion script' }
        @{Name = '--max-expr-length'; Description = 'Longest accepted expression' }
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
        '--engine' {
            $ratcalcEngines | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--completion' {
            @('bash', 'zsh', 'fish', 'powershell') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`
