package main

import (
	"fmt"
)

// complete asks the binary for candidates through the completion flag of
// the cli package.
const complete = `#! /bin/bash

_entalign_autocomplete() {
    local cur opts
    cur="${COMP_WORDS[COMP_CWORD]}"
    opts=$( "${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null )
    COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    return 0
}

complete -o default -F _entalign_autocomplete entalign
`

func bashCommand(ui UI) error {
	_, err := fmt.Fprint(ui.Out, complete)
	return err
}
