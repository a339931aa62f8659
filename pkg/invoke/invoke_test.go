package invoke

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeRunner records the argument lists it receives and replies with a
// canned output.
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.output, f.err
}

func TestKubectlArgs(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(k *Kubectl) error
		want []string
	}{
		{
			name: "drain with all options",
			call: func(k *Kubectl) error {
				_, err := k.Drain(ctx, "node-1", DrainOptions{
					Force: true, IgnoreDaemonSets: true, DeleteLocalData: true,
				})
				return err
			},
			want: []string{"drain", "node-1", "--force", "--ignore-daemonsets", "--delete-emptydir-data"},
		},
		{
			name: "exec with container",
			call: func(k *Kubectl) error {
				_, err := k.Exec(ctx, "web-0", "default", "app", []string{"ls", "-la"})
				return err
			},
			want: []string{"exec", "web-0", "-n", "default", "-c", "app", "--", "ls", "-la"},
		},
		{
			name: "rollout undo to revision",
			call: func(k *Kubectl) error {
				_, err := k.RolloutUndo(ctx, "deployment", "site", "default", 3)
				return err
			},
			want: []string{"rollout", "undo", "deployment/site", "-n", "default", "--to-revision", "3"},
		},
		{
			name: "top pods across namespaces",
			call: func(k *Kubectl) error {
				_, err := k.TopPods(ctx, "", "app=site")
				return err
			},
			want: []string{"top", "pods", "--all-namespaces", "-l", "app=site"},
		},
		{
			name: "get nodes defaults to wide output",
			call: func(k *Kubectl) error {
				_, err := k.GetNodes(ctx, "", "")
				return err
			},
			want: []string{"get", "nodes", "-o", "wide"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			if err := tt.call(NewKubectl(runner)); err != nil {
				t.Fatal(err)
			}
			if len(runner.calls) != 1 {
				t.Fatalf("expected one invocation, got %d", len(runner.calls))
			}
			if diff := cmp.Diff(tt.want, runner.calls[0]); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKubectlClientVersion(t *testing.T) {
	runner := &fakeRunner{output: `{"clientVersion":{"gitVersion":"v1.31.2"}}`}
	version, err := NewKubectl(runner).ClientVersion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if version != "v1.31.2" {
		t.Errorf("version: %s", version)
	}
}

func TestHelmInstallArgs(t *testing.T) {
	runner := &fakeRunner{}
	_, err := NewHelm(runner).Install(context.Background(), "web", "bitnami/nginx", "default", InstallOptions{
		ReleaseOptions: ReleaseOptions{
			Version: "15.1.0",
			Wait:    true,
			Timeout: "5m",
		},
		CreateNamespace: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"install", "web", "bitnami/nginx", "--namespace", "default",
		"--version", "15.1.0", "--wait", "--timeout", "5m", "--create-namespace",
	}
	if diff := cmp.Diff(want, runner.calls[0]); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestHelmInstallValuesFile(t *testing.T) {
	runner := &fakeRunner{}
	_, err := NewHelm(runner).Install(context.Background(), "web", "bitnami/nginx", "default", InstallOptions{
		ReleaseOptions: ReleaseOptions{
			Values: map[string]interface{}{"replicaCount": 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	args := runner.calls[0]
	idx := -1
	for i, a := range args {
		if a == "-f" {
			idx = i
		}
	}
	if idx == -1 || idx+1 >= len(args) {
		t.Fatalf("no values file flag in %v", args)
	}
	if !strings.HasSuffix(args[idx+1], ".yaml") {
		t.Errorf("values file path: %s", args[idx+1])
	}
}

func TestNewRunner(t *testing.T) {
	t.Run("splits command strings with quoting", func(t *testing.T) {
		r, err := NewRunner(`kubectl --context "my cluster"`)
		if err != nil {
			t.Fatal(err)
		}
		er := r.(execRunner)
		want := []string{"kubectl", "--context", "my cluster"}
		if diff := cmp.Diff(want, er.argv); diff != "" {
			t.Errorf("argv mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects empty commands", func(t *testing.T) {
		if _, err := NewRunner(""); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCheckVersion(t *testing.T) {
	if err := CheckVersion("kubectl", "v1.31.2", "1.27.0"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckVersion("kubectl", "v1.20.0", "1.27.0"); err == nil {
		t.Error("expected a too-old error")
	}
	if err := CheckVersion("helm", "v3.16.1", ""); err != nil {
		t.Errorf("empty minimum must pass: %v", err)
	}
	if err := CheckVersion("kubectl", "not-a-version", "1.27.0"); err == nil {
		t.Error("expected a parse error")
	}
}
