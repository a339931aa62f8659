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

package build

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/kubestrate/kubestrate/pkg/template"
)

// Service builds a Service from the canonical service configuration.
// When the configuration carries no selector the service selects the
// app identity label, pairing it with the workload of the same name.
func Service(name, namespace string, cfg template.ServiceConfig) *corev1.Service {
	selector := cfg.Selector
	if len(selector) == 0 {
		selector = map[string]string{AppLabel: name}
	}

	var ports []corev1.ServicePort
	for _, p := range cfg.Ports {
		protocol := corev1.ProtocolTCP
		if p.Protocol != "" {
			protocol = corev1.Protocol(p.Protocol)
		}
		ports = append(ports, corev1.ServicePort{
			Port:       p.Port,
			TargetPort: intstr.FromInt32(p.TargetPort),
			NodePort:   p.NodePort,
			Protocol:   protocol,
			Name:       p.Name,
		})
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    Labels(name),
		},
		Spec: corev1.ServiceSpec{
			Type:                  corev1.ServiceType(cfg.Type),
			Ports:                 ports,
			Selector:              selector,
			ExternalIPs:           cfg.ExternalIPs,
			LoadBalancerIP:        cfg.LoadBalancerIP,
			SessionAffinity:       corev1.ServiceAffinity(cfg.SessionAffinity),
			ExternalTrafficPolicy: corev1.ServiceExternalTrafficPolicy(cfg.ExternalTrafficPolicy),
			ExternalName:          cfg.ExternalName,
		},
	}
}

// ExposedService builds the minimal single-port Service that exposes a
// workload of the given name. The target port falls back to the service
// port when unset.
func ExposedService(name, namespace string, port, targetPort int32, serviceType string) *corev1.Service {
	if targetPort == 0 {
		targetPort = port
	}
	cfg := template.ServiceConfig{
		Type: serviceType,
		Ports: []template.ServicePort{
			{Port: port, TargetPort: targetPort, Protocol: "TCP"},
		},
	}
	return Service(name, namespace, cfg)
}
