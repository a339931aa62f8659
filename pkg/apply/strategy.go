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

package apply

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	appsv1client "k8s.io/client-go/kubernetes/typed/apps/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
)

// Strategy is the per-kind upsert surface the engine dispatches on.
// Get must return a NotFound API error when the target does not exist,
// the engine relies on that distinction to pick the create path.
type Strategy interface {
	Get(ctx context.Context, namespace, name string) error
	Create(ctx context.Context, namespace string, obj *unstructured.Unstructured) error
	Replace(ctx context.Context, namespace string, obj *unstructured.Unstructured) error
	Delete(ctx context.Context, namespace, name string) error
}

func fromUnstructured(obj *unstructured.Unstructured, into interface{}) error {
	return runtime.DefaultUnstructuredConverter.FromUnstructured(obj.Object, into)
}

type configMapStrategy struct {
	client corev1client.CoreV1Interface
}

func (s configMapStrategy) Get(ctx context.Context, namespace, name string) error {
	_, err := s.client.ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	return err
}

func (s configMapStrategy) Create(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	var cm corev1.ConfigMap
	if err := fromUnstructured(obj, &cm); err != nil {
		return err
	}
	_, err := s.client.ConfigMaps(namespace).Create(ctx, &cm, metav1.CreateOptions{})
	return err
}

func (s configMapStrategy) Replace(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	var cm corev1.ConfigMap
	if err := fromUnstructured(obj, &cm); err != nil {
		return err
	}
	_, err := s.client.ConfigMaps(namespace).Update(ctx, &cm, metav1.UpdateOptions{})
	return err
}

func (s configMapStrategy) Delete(ctx context.Context, namespace, name string) error {
	return s.client.ConfigMaps(namespace).Delete(ctx, name, metav1.DeleteOptions{})
}

type serviceStrategy struct {
	client corev1client.CoreV1Interface
}

func (s serviceStrategy) Get(ctx context.Context, namespace, name string) error {
	_, err := s.client.Services(namespace).Get(ctx, name, metav1.GetOptions{})
	return err
}

func (s serviceStrategy) Create(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	var svc corev1.Service
	if err := fromUnstructured(obj, &svc); err != nil {
		return err
	}
	_, err := s.client.Services(namespace).Create(ctx, &svc, metav1.CreateOptions{})
	return err
}

func (s serviceStrategy) Replace(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	var svc corev1.Service
	if err := fromUnstructured(obj, &svc); err != nil {
		return err
	}
	_, err := s.client.Services(namespace).Update(ctx, &svc, metav1.UpdateOptions{})
	return err
}

func (s serviceStrategy) Delete(ctx context.Context, namespace, name string) error {
	return s.client.Services(namespace).Delete(ctx, name, metav1.DeleteOptions{})
}

type deploymentStrategy struct {
	client appsv1client.AppsV1Interface
}

func (s deploymentStrategy) Get(ctx context.Context, namespace, name string) error {
	_, err := s.client.Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	return err
}

func (s deploymentStrategy) Create(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	var d appsv1.Deployment
	if err := fromUnstructured(obj, &d); err != nil {
		return err
	}
	_, err := s.client.Deployments(namespace).Create(ctx, &d, metav1.CreateOptions{})
	return err
}

func (s deploymentStrategy) Replace(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	var d appsv1.Deployment
	if err := fromUnstructured(obj, &d); err != nil {
		return err
	}
	_, err := s.client.Deployments(namespace).Update(ctx, &d, metav1.UpdateOptions{})
	return err
}

func (s deploymentStrategy) Delete(ctx context.Context, namespace, name string) error {
	return s.client.Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{})
}
