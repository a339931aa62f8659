/*
Copyright 2025 The Kubestrate Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cluster holds the remote API facade: one typed client per API
// group, authenticated once at construction. Every call is a single
// remote round trip, the facade performs no retries, no batching and no
// caching, and remote failures are surfaced to the caller unchanged.
package cluster

import (
	"errors"
	"fmt"

	"k8s.io/client-go/kubernetes"
	appsv1client "k8s.io/client-go/kubernetes/typed/apps/v1"
	batchv1client "k8s.io/client-go/kubernetes/typed/batch/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	networkingv1client "k8s.io/client-go/kubernetes/typed/networking/v1"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ErrNoConfiguration is returned when neither in-cluster credentials nor
// a kubeconfig could be loaded. There is no degraded mode: construction
// fails and the process should exit.
var ErrNoConfiguration = errors.New("kubernetes configuration unavailable")

// Client is the process-wide handle on the remote cluster API.
type Client struct {
	kube kubernetes.Interface
}

// New discovers credentials and builds the typed clientset. In-cluster
// service account credentials are attempted first, then the kubeconfig at
// the given path (or the default loading rules when the path is empty).
func New(kubeconfigPath string) (*Client, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
		if kubeconfigPath != "" {
			loadingRules.ExplicitPath = kubeconfigPath
		}
		cfg, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoConfiguration, err)
		}
	}

	cfg.QPS = 50
	cfg.Burst = 100

	kube, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConfiguration, err)
	}

	return &Client{kube: kube}, nil
}

// NewWithInterface wraps an existing clientset, used by tests to inject
// a fake remote API.
func NewWithInterface(kube kubernetes.Interface) *Client {
	return &Client{kube: kube}
}

// Core returns the core/v1 API accessor.
func (c *Client) Core() corev1client.CoreV1Interface {
	return c.kube.CoreV1()
}

// Apps returns the apps/v1 API accessor.
func (c *Client) Apps() appsv1client.AppsV1Interface {
	return c.kube.AppsV1()
}

// Batch returns the batch/v1 API accessor.
func (c *Client) Batch() batchv1client.BatchV1Interface {
	return c.kube.BatchV1()
}

// Networking returns the networking.k8s.io/v1 API accessor.
func (c *Client) Networking() networkingv1client.NetworkingV1Interface {
	return c.kube.NetworkingV1()
}
