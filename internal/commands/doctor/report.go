package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/pvx/internal/clix"
	"github.com/indaco/pvx/internal/discovery"
	"github.com/indaco/pvx/internal/lockfile"
	"github.com/indaco/pvx/internal/requirements"
	"github.com/indaco/pvx/internal/toolchain"
)

// Collect runs every check. Failures degrade the affected check only.
func Collect(ctx context.Context, tools toolchain.Runner, version string) *Report {
	r := &Report{Version: version}

	project, err := clix.LoadProject()
	if err != nil {
		r.add("root", err.Error(), StatusUnavailable)
		cwd, _ := os.Getwd()
		project, err = clix.LoadProjectAt(discovery.Root{Dir: cwd})
		if err != nil {
			r.add("config", err.Error(), StatusUnavailable)
			return r
		}
	} else {
		r.add("root", project.Root.Dir, StatusOK)
	}

	if project.Root.Found {
		r.add("config", project.Root.ConfigPath(), StatusOK)
	} else {
		r.add("config", discovery.MarkerFile+" not found", StatusMissing)
	}

	constraint := project.Config.Python()
	if constraint == "" {
		r.add("python", "any", StatusOK)
	} else {
		r.add("python", constraint, StatusOK)
	}

	if path, err := tools.FindPython(ctx, constraint); err == nil {
		r.add("interpreter", path, StatusOK)
	} else {
		r.add("interpreter", "unavailable", StatusUnavailable)
	}

	for _, tool := range []string{toolchain.UV, toolchain.Pyenv} {
		if v, err := tools.Version(ctx, tool); err == nil {
			r.add(tool, v, StatusOK)
		} else {
			r.add(tool, "unavailable", StatusUnavailable)
		}
	}

	env := project.Env()
	if env.Exists() {
		r.add("venv", project.Root.Rel(env.Dir), StatusOK)
	} else {
		r.add("venv", project.Root.Rel(env.Dir)+" missing", StatusMissing)
	}

	r.add(requirementsCheck(project))
	r.add(lockCheck(project))

	if m, err := discovery.ReadPyProject(project.Root.Dir); err == nil {
		value := m.Name
		if m.Version != "" {
			value += " " + m.Version
		}
		if value == "" {
			value = discovery.PyProjectFile
		}
		r.add("pyproject", value, StatusOK)
	} else {
		r.add("pyproject", "missing", StatusMissing)
	}

	return r
}

func (r *Report) add(name, value string, status Status) {
	r.Checks = append(r.Checks, Check{Name: name, Value: value, Status: status})
}

func requirementsCheck(p *clix.Project) (string, string, Status) {
	rel := p.Config.RequirementsFile()
	if _, err := os.Stat(p.RequirementsPath()); err != nil {
		return "requirements", rel + " missing", StatusMissing
	}
	file, err := requirements.Load(p.RequirementsPath())
	if err != nil {
		return "requirements", rel + " unreadable", StatusUnavailable
	}
	return "requirements", fmt.Sprintf("%s (%d packages)", rel, file.Count()), StatusOK
}

func lockCheck(p *clix.Project) (string, string, Status) {
	rel := p.Config.LockFile()
	status, err := lockfile.Check(p.RequirementsPath(), p.LockPath())
	if err != nil {
		return "lock", rel + " unreadable", StatusUnavailable
	}
	switch status.Reason {
	case lockfile.ReasonUpToDate:
		return "lock", rel + " up-to-date", StatusOK
	case lockfile.ReasonHashMismatch:
		return "lock", rel + " stale (run pvx install)", StatusWarn
	case lockfile.ReasonMissingLock:
		return "lock", rel + " missing", StatusMissing
	default:
		return "lock", string(status.Reason), StatusMissing
	}
}
