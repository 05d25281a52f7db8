package ci

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/datawire/vscinstall/pkg/project"
)

const GitHubActionsFile = ".github/workflows/unittest.yml"

// The field order of these types is the key order of the generated YAML.

type ghWorkflow struct {
	Jobs yaml.MapSlice `yaml:"jobs"`
	Name string        `yaml:"name"`
	On   []string      `yaml:"on"`
}

type ghJob struct {
	RunsOn   string     `yaml:"runs-on"`
	Steps    []ghStep   `yaml:"steps"`
	Strategy ghStrategy `yaml:"strategy"`
}

type ghStep struct {
	Name string            `yaml:"name"`
	Run  string            `yaml:"run,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
}

type ghStrategy struct {
	Matrix struct {
		Python []float64 `yaml:"python"`
	} `yaml:"matrix"`
}

func ghPythonJob(steps ...ghStep) ghJob {
	job := ghJob{
		RunsOn: "ubuntu-24.04",
		Steps: append([]ghStep{
			{Name: "Checkout code", Uses: "actions/checkout@v4"},
			{Name: "Setup Python", Uses: "actions/setup-python@v5", With: map[string]string{
				"python-version": "${{ matrix.python }}",
			}},
		}, steps...),
	}
	job.Strategy.Matrix.Python = []float64{3.9}
	return job
}

// mandatoryRemote returns the name and clone URL of the allow-listed remote that the test
// suite expects to be present in a checkout.
func mandatoryRemote(ident *project.Identity) (string, string, error) {
	u, err := url.Parse(ident.URL)
	if err != nil {
		return "", "", fmt.Errorf("project url: %w", err)
	}
	owner := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0]
	if owner == "" || path.Base(u.Path) == owner {
		return "", "", fmt.Errorf("project url %q: no owner", ident.URL)
	}
	return owner, ident.URL + ".git", nil
}

// GitHubActions renders the GitHub Actions workflow that runs the test suite.
func GitHubActions(cfg Config, ident *project.Identity) (string, error) {
	remoteName, remoteURL, err := mandatoryRemote(ident)
	if err != nil {
		return "", err
	}

	jobs := yaml.MapSlice{
		{Key: "python_unittests", Value: ghPythonJob(
			ghStep{Name: "install tox", Run: "pip install 'virtualenv' 'tox'"},
			ghStep{Name: "add mandatory git remote", Run: fmt.Sprintf("git remote add %s %s", remoteName, remoteURL)},
			ghStep{Name: "Run tox", Run: `tox -e py$(echo ${{ matrix.python }} | sed 's/\.//g')`},
		)},
	}
	if cfg.RunRuffCheck {
		jobs = append(jobs, yaml.MapItem{Key: "python_ruff_check", Value: ghPythonJob(
			ghStep{Name: "install ruff", Run: "pip install 'ruff'"},
			ghStep{Name: "Run ruff", Run: "ruff check ."},
		)})
	}
	if cfg.RunRuffFormatCheck {
		jobs = append(jobs, yaml.MapItem{Key: "python_ruff_format", Value: ghPythonJob(
			ghStep{Name: "install ruff", Run: "pip install 'ruff'"},
			ghStep{Name: "Run ruff format", Run: "ruff format --check ."},
		)})
	}

	bs, err := yaml.Marshal(ghWorkflow{
		Jobs: jobs,
		Name: "run python tests",
		On:   []string{"push", "pull_request"},
	})
	if err != nil {
		return "", err
	}
	header := "# " + GitHubActionsFile + ": configuration file for github actions worflow\n" +
		"# " + generatedBy + "\n" +
		"# DO NOT EDIT MANUALLY\n"
	return header + string(bs), nil
}
