package invoke

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kubectl wraps the kubectl binary for the read-only and node-level
// operations the typed API does not cover.
type Kubectl struct {
	runner Runner
}

// NewKubectl returns a kubectl wrapper using the given runner.
func NewKubectl(runner Runner) *Kubectl {
	return &Kubectl{runner: runner}
}

// DrainOptions control the node drain behavior.
type DrainOptions struct {
	Force            bool
	IgnoreDaemonSets bool
	DeleteLocalData  bool
}

// ClusterInfo returns the control plane endpoints summary.
func (k *Kubectl) ClusterInfo(ctx context.Context) (string, error) {
	return k.runner.Run(ctx, "cluster-info")
}

// GetNodes lists the cluster nodes, optionally filtered by label selector.
func (k *Kubectl) GetNodes(ctx context.Context, labelSelector, output string) (string, error) {
	args := []string{"get", "nodes"}
	if labelSelector != "" {
		args = append(args, "-l", labelSelector)
	}
	args = append(args, "-o", defaultOutput(output))
	return k.runner.Run(ctx, args...)
}

// DescribeNode returns the full description of one node.
func (k *Kubectl) DescribeNode(ctx context.Context, name string) (string, error) {
	return k.runner.Run(ctx, "describe", "node", name)
}

// Cordon marks a node as unschedulable.
func (k *Kubectl) Cordon(ctx context.Context, name string) (string, error) {
	return k.runner.Run(ctx, "cordon", name)
}

// Uncordon marks a node as schedulable.
func (k *Kubectl) Uncordon(ctx context.Context, name string) (string, error) {
	return k.runner.Run(ctx, "uncordon", name)
}

// Drain evicts the workloads from a node in preparation for maintenance.
func (k *Kubectl) Drain(ctx context.Context, name string, opts DrainOptions) (string, error) {
	args := []string{"drain", name}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.IgnoreDaemonSets {
		args = append(args, "--ignore-daemonsets")
	}
	if opts.DeleteLocalData {
		args = append(args, "--delete-emptydir-data")
	}
	return k.runner.Run(ctx, args...)
}

// TopNodes returns node resource usage. Requires metrics-server.
func (k *Kubectl) TopNodes(ctx context.Context) (string, error) {
	return k.runner.Run(ctx, "top", "nodes")
}

// TopPods returns pod resource usage. Requires metrics-server.
func (k *Kubectl) TopPods(ctx context.Context, namespace, labelSelector string) (string, error) {
	args := []string{"top", "pods"}
	if namespace != "" {
		args = append(args, "-n", namespace)
	} else {
		args = append(args, "--all-namespaces")
	}
	if labelSelector != "" {
		args = append(args, "-l", labelSelector)
	}
	return k.runner.Run(ctx, args...)
}

// Exec runs a command inside a pod's container.
func (k *Kubectl) Exec(ctx context.Context, pod, namespace, container string, command []string) (string, error) {
	args := []string{"exec", pod, "-n", namespace}
	if container != "" {
		args = append(args, "-c", container)
	}
	args = append(args, "--")
	args = append(args, command...)
	return k.runner.Run(ctx, args...)
}

// PortForward forwards a local port to a resource.
func (k *Kubectl) PortForward(ctx context.Context, kind, name, namespace string, localPort, remotePort int) (string, error) {
	return k.runner.Run(ctx, "port-forward", fmt.Sprintf("%s/%s", kind, name),
		fmt.Sprintf("%d:%d", localPort, remotePort), "-n", namespace)
}

// RolloutHistory returns the revision history of a workload.
func (k *Kubectl) RolloutHistory(ctx context.Context, kind, name, namespace string) (string, error) {
	return k.runner.Run(ctx, "rollout", "history", fmt.Sprintf("%s/%s", kind, name), "-n", namespace)
}

// RolloutUndo rolls a workload back to an earlier revision, or to the
// previous one when toRevision is zero.
func (k *Kubectl) RolloutUndo(ctx context.Context, kind, name, namespace string, toRevision int) (string, error) {
	args := []string{"rollout", "undo", fmt.Sprintf("%s/%s", kind, name), "-n", namespace}
	if toRevision > 0 {
		args = append(args, "--to-revision", strconv.Itoa(toRevision))
	}
	return k.runner.Run(ctx, args...)
}

// GetNamespaces lists the namespaces, optionally filtered by label selector.
func (k *Kubectl) GetNamespaces(ctx context.Context, labelSelector, output string) (string, error) {
	args := []string{"get", "namespaces"}
	if labelSelector != "" {
		args = append(args, "-l", labelSelector)
	}
	args = append(args, "-o", defaultOutput(output))
	return k.runner.Run(ctx, args...)
}

// DescribeNamespace returns the full description of one namespace.
func (k *Kubectl) DescribeNamespace(ctx context.Context, name string) (string, error) {
	return k.runner.Run(ctx, "describe", "namespace", name)
}

// CreateNamespace creates a namespace.
func (k *Kubectl) CreateNamespace(ctx context.Context, name string) (string, error) {
	return k.runner.Run(ctx, "create", "namespace", name)
}

// DeleteNamespace deletes a namespace.
func (k *Kubectl) DeleteNamespace(ctx context.Context, name string, force bool) (string, error) {
	args := []string{"delete", "namespace", name}
	if force {
		args = append(args, "--force")
	}
	return k.runner.Run(ctx, args...)
}

// GetQuota returns the resource quotas of a namespace.
func (k *Kubectl) GetQuota(ctx context.Context, namespace, output string) (string, error) {
	return k.runner.Run(ctx, "get", "quota", "-n", namespace, "-o", defaultOutput(output))
}

// GetStatefulSets lists statefulsets, optionally filtered by namespace
// and label selector.
func (k *Kubectl) GetStatefulSets(ctx context.Context, namespace, labelSelector, output string) (string, error) {
	args := []string{"get", "statefulsets"}
	if namespace != "" {
		args = append(args, "-n", namespace)
	} else {
		args = append(args, "--all-namespaces")
	}
	if labelSelector != "" {
		args = append(args, "-l", labelSelector)
	}
	args = append(args, "-o", defaultOutput(output))
	return k.runner.Run(ctx, args...)
}

// DescribeStatefulSet returns the full description of one statefulset.
func (k *Kubectl) DescribeStatefulSet(ctx context.Context, name, namespace string) (string, error) {
	return k.runner.Run(ctx, "describe", "statefulset", name, "-n", namespace)
}

// ClientVersion returns the kubectl client semantic version.
func (k *Kubectl) ClientVersion(ctx context.Context) (string, error) {
	out, err := k.runner.Run(ctx, "version", "--client", "--output", "json")
	if err != nil {
		return "", err
	}
	var parsed struct {
		ClientVersion struct {
			GitVersion string `json:"gitVersion"`
		} `json:"clientVersion"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return "", fmt.Errorf("parsing kubectl version output: %w", err)
	}
	return parsed.ClientVersion.GitVersion, nil
}

func defaultOutput(output string) string {
	if output == "" {
		return "wide"
	}
	return output
}
