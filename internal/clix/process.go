package clix

import (
	"github.com/indaco/pvx/internal/toolchain"
)

// Shell runs script commands.
const Shell = "sh"

// ScriptProcess runs a configured script command through sh from the project
// root. args become the positional parameters "$@", and name is $0.
func (p *Project) ScriptProcess(name, command string, args []string) (toolchain.Process, error) {
	env, err := p.Environ()
	if err != nil {
		return toolchain.Process{}, err
	}
	shArgs := append([]string{"-c", command + ` "$@"`, name}, args...)
	return toolchain.Process{
		Name: Shell,
		Args: shArgs,
		Env:  env,
		Dir:  p.Root.Dir,
	}, nil
}

// PythonProcess runs the venv interpreter with args from the current
// directory.
func (p *Project) PythonProcess(args []string) (toolchain.Process, error) {
	if err := p.RequireEnv(); err != nil {
		return toolchain.Process{}, err
	}
	env, err := p.Environ()
	if err != nil {
		return toolchain.Process{}, err
	}
	return toolchain.Process{
		Name: p.Env().Python(),
		Args: args,
		Env:  env,
	}, nil
}
