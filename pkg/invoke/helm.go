package invoke

import (
	"context"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Helm wraps the helm binary for chart operations.
type Helm struct {
	runner Runner
}

// NewHelm returns a helm wrapper using the given runner.
func NewHelm(runner Runner) *Helm {
	return &Helm{runner: runner}
}

// RepoAddOptions carry the optional flags of a repository addition.
type RepoAddOptions struct {
	Username    string
	Password    string
	ForceUpdate bool
}

// RepoAdd registers a chart repository.
func (h *Helm) RepoAdd(ctx context.Context, name, url string, opts RepoAddOptions) (string, error) {
	args := []string{"repo", "add", name, url}
	if opts.Username != "" && opts.Password != "" {
		args = append(args, "--username", opts.Username, "--password", opts.Password)
	}
	if opts.ForceUpdate {
		args = append(args, "--force-update")
	}
	return h.runner.Run(ctx, args...)
}

// ShowValues prints the default values of a chart.
func (h *Helm) ShowValues(ctx context.Context, chart, version, repo string) (string, error) {
	args := []string{"show", "values"}
	if version != "" {
		args = append(args, "--version", version)
	}
	if repo != "" {
		args = append(args, "--repo", repo)
	}
	args = append(args, chart)
	return h.runner.Run(ctx, args...)
}

// ReleaseOptions carry the shared flags of install and upgrade.
type ReleaseOptions struct {
	Values  map[string]interface{}
	Version string
	Repo    string
	Wait    bool
	Timeout string
}

// InstallOptions carry the install-only flags.
type InstallOptions struct {
	ReleaseOptions
	CreateNamespace bool
}

// UpgradeOptions carry the upgrade-only flags.
type UpgradeOptions struct {
	ReleaseOptions
	Force       bool
	ResetValues bool
}

// Install installs a chart as a named release.
func (h *Helm) Install(ctx context.Context, release, chart, namespace string, opts InstallOptions) (string, error) {
	args := []string{"install", release, chart, "--namespace", namespace}

	valuesFile, cleanup, err := writeValues(opts.Values)
	if err != nil {
		return "", err
	}
	defer cleanup()
	if valuesFile != "" {
		args = append(args, "-f", valuesFile)
	}

	args = appendReleaseFlags(args, opts.ReleaseOptions)
	if opts.CreateNamespace {
		args = append(args, "--create-namespace")
	}
	return h.runner.Run(ctx, args...)
}

// Upgrade upgrades an existing release to a new chart or values.
func (h *Helm) Upgrade(ctx context.Context, release, chart, namespace string, opts UpgradeOptions) (string, error) {
	args := []string{"upgrade", release, chart, "--namespace", namespace}

	valuesFile, cleanup, err := writeValues(opts.Values)
	if err != nil {
		return "", err
	}
	defer cleanup()
	if valuesFile != "" {
		args = append(args, "-f", valuesFile)
	}

	args = appendReleaseFlags(args, opts.ReleaseOptions)
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.ResetValues {
		args = append(args, "--reset-values")
	}
	return h.runner.Run(ctx, args...)
}

// Version returns the helm client semantic version.
func (h *Helm) Version(ctx context.Context) (string, error) {
	return h.runner.Run(ctx, "version", "--template", "{{.Version}}")
}

func appendReleaseFlags(args []string, opts ReleaseOptions) []string {
	if opts.Version != "" {
		args = append(args, "--version", opts.Version)
	}
	if opts.Repo != "" {
		args = append(args, "--repo", opts.Repo)
	}
	if opts.Wait {
		args = append(args, "--wait")
	}
	if opts.Timeout != "" {
		args = append(args, "--timeout", opts.Timeout)
	}
	return args
}

// writeValues renders the override values to a temporary YAML file and
// returns its path with a cleanup func. An empty map yields no file.
func writeValues(values map[string]interface{}) (string, func(), error) {
	if len(values) == 0 {
		return "", func() {}, nil
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return "", nil, fmt.Errorf("rendering values: %w", err)
	}

	f, err := os.CreateTemp("", "values-*.yaml")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}

	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
