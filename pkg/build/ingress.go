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
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// IngressPath routes one HTTP path to a backing service port.
type IngressPath struct {
	Path        string `json:"path,omitempty"`
	PathType    string `json:"pathType,omitempty"`
	ServiceName string `json:"serviceName"`
	ServicePort int32  `json:"servicePort"`
}

// IngressRule groups the paths served for one host.
type IngressRule struct {
	Host  string        `json:"host,omitempty"`
	Paths []IngressPath `json:"paths"`
}

// IngressTLS pairs a set of hosts with the secret holding their certificate.
type IngressTLS struct {
	Hosts      []string `json:"hosts,omitempty"`
	SecretName string   `json:"secretName,omitempty"`
}

// Ingress builds an Ingress from the given rules and TLS configuration.
// Paths default to "/" with a Prefix path type.
func Ingress(name, namespace string, rules []IngressRule, tls []IngressTLS, annotations map[string]string) *networkingv1.Ingress {
	var specRules []networkingv1.IngressRule
	for _, rule := range rules {
		var paths []networkingv1.HTTPIngressPath
		for _, p := range rule.Paths {
			path := p.Path
			if path == "" {
				path = "/"
			}
			pathType := networkingv1.PathTypePrefix
			if p.PathType != "" {
				pathType = networkingv1.PathType(p.PathType)
			}
			paths = append(paths, networkingv1.HTTPIngressPath{
				Path:     path,
				PathType: &pathType,
				Backend: networkingv1.IngressBackend{
					Service: &networkingv1.IngressServiceBackend{
						Name: p.ServiceName,
						Port: networkingv1.ServiceBackendPort{
							Number: p.ServicePort,
						},
					},
				},
			})
		}

		specRules = append(specRules, networkingv1.IngressRule{
			Host: rule.Host,
			IngressRuleValue: networkingv1.IngressRuleValue{
				HTTP: &networkingv1.HTTPIngressRuleValue{
					Paths: paths,
				},
			},
		})
	}

	var specTLS []networkingv1.IngressTLS
	for _, t := range tls {
		specTLS = append(specTLS, networkingv1.IngressTLS{
			Hosts:      t.Hosts,
			SecretName: t.SecretName,
		})
	}

	return &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "Ingress",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   namespace,
			Labels:      Labels(name),
			Annotations: annotations,
		},
		Spec: networkingv1.IngressSpec{
			Rules: specRules,
			TLS:   specTLS,
		},
	}
}
