package clix

import (
	"fmt"
	"os"

	"github.com/indaco/pvx/internal/config"
	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/venv"
)

// Project is the root and configuration an invocation operates on.
type Project struct {
	Root   discovery.Root
	Config *config.Config
}

// LoadProject locates the project from the working directory and reads its
// config. Without a pvx.yaml the working directory is used with defaults.
func LoadProject() (*Project, error) {
	root, err := discovery.FindRootFromCwd()
	if err != nil {
		return nil, err
	}
	return LoadProjectAt(root)
}

// LoadProjectAt reads the config of an already located root.
func LoadProjectAt(root discovery.Root) (*Project, error) {
	cfg, err := config.Load(root.Dir)
	if err != nil {
		return nil, err
	}
	return &Project{Root: root, Config: cfg}, nil
}

// Path resolves a project-relative path.
func (p *Project) Path(rel string) string {
	return p.Root.Join(rel)
}

// RequirementsPath returns the dependency declaration file.
func (p *Project) RequirementsPath() string {
	return p.Path(p.Config.RequirementsFile())
}

// LockPath returns the lock artifact.
func (p *Project) LockPath() string {
	return p.Path(p.Config.LockFile())
}

// Env returns the project's virtual environment.
func (p *Project) Env() venv.Env {
	return venv.New(p.Root, p.Config)
}

// Environ returns the process environment for commands run inside the
// project: the venv activated and <root>/.env merged without overriding.
func (p *Project) Environ() ([]string, error) {
	dotenv, err := venv.LoadDotenv(p.Root.Dir)
	if err != nil {
		return nil, err
	}
	return p.Env().Environ(os.Environ(), dotenv), nil
}

// RequireEnv fails when the virtual environment has not been created.
func (p *Project) RequireEnv() error {
	env := p.Env()
	if !env.Exists() {
		return fmt.Errorf("virtual environment %s not found; run `pvx install` first", p.Root.Rel(env.Dir))
	}
	return nil
}
