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

package template

import "sort"

// Service template identifiers, one per Kubernetes service type.
const (
	ClusterIP    = "ClusterIP"
	NodePort     = "NodePort"
	LoadBalancer = "LoadBalancer"
	ExternalName = "ExternalName"
)

// ServicePort describes a single service port mapping.
type ServicePort struct {
	Port       int32  `json:"port"`
	TargetPort int32  `json:"targetPort,omitempty"`
	NodePort   int32  `json:"nodePort,omitempty"`
	Protocol   string `json:"protocol,omitempty"`
	Name       string `json:"name,omitempty"`
}

// ServiceConfig is the canonical service configuration produced by merging
// a service template with caller overrides.
type ServiceConfig struct {
	Type                  string            `json:"type"`
	Ports                 []ServicePort     `json:"ports,omitempty"`
	Selector              map[string]string `json:"selector,omitempty"`
	ExternalIPs           []string          `json:"externalIPs,omitempty"`
	LoadBalancerIP        string            `json:"loadBalancerIP,omitempty"`
	SessionAffinity       string            `json:"sessionAffinity,omitempty"`
	ExternalTrafficPolicy string            `json:"externalTrafficPolicy,omitempty"`
	ExternalName          string            `json:"externalName,omitempty"`
}

// ServiceOverrides carries the caller-supplied fields of a service
// configuration, with the same replace-wholesale semantics as Overrides.
type ServiceOverrides struct {
	Ports                 []ServicePort     `json:"ports,omitempty"`
	Selector              map[string]string `json:"selector,omitempty"`
	ExternalIPs           []string          `json:"externalIPs,omitempty"`
	LoadBalancerIP        *string           `json:"loadBalancerIP,omitempty"`
	SessionAffinity       *string           `json:"sessionAffinity,omitempty"`
	ExternalTrafficPolicy *string           `json:"externalTrafficPolicy,omitempty"`
	ExternalName          *string           `json:"externalName,omitempty"`
}

var serviceCatalog = map[string]ServiceConfig{
	ClusterIP: {
		Type: ClusterIP,
		Ports: []ServicePort{
			{Port: 80, TargetPort: 80, Protocol: "TCP", Name: "http"},
		},
		SessionAffinity: "None",
	},
	NodePort: {
		Type: NodePort,
		Ports: []ServicePort{
			{Port: 80, TargetPort: 80, NodePort: 30000, Protocol: "TCP", Name: "http"},
		},
		SessionAffinity: "None",
	},
	LoadBalancer: {
		Type: LoadBalancer,
		Ports: []ServicePort{
			{Port: 80, TargetPort: 80, Protocol: "TCP", Name: "http"},
		},
		SessionAffinity:       "None",
		ExternalTrafficPolicy: "Cluster",
	},
	ExternalName: {
		Type: ExternalName,
		Ports: []ServicePort{
			{Port: 80, Protocol: "TCP", Name: "http"},
		},
	},
}

// ServiceTypes returns the valid service template identifiers in sorted order.
func ServiceTypes() []string {
	ids := make([]string, 0, len(serviceCatalog))
	for id := range serviceCatalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeepCopy returns a copy of the service config that shares no mutable
// state with the receiver.
func (c ServiceConfig) DeepCopy() ServiceConfig {
	out := c
	if c.Ports != nil {
		out.Ports = make([]ServicePort, len(c.Ports))
		copy(out.Ports, c.Ports)
	}
	out.Selector = copyStringMap(c.Selector)
	out.ExternalIPs = copyStrings(c.ExternalIPs)
	return out
}

// Merge combines the service config with the given overrides, present
// fields replace the base field entirely. The receiver is not modified.
func (c ServiceConfig) Merge(o *ServiceOverrides) ServiceConfig {
	out := c.DeepCopy()
	if o == nil {
		return out
	}
	if o.Ports != nil {
		out.Ports = make([]ServicePort, len(o.Ports))
		copy(out.Ports, o.Ports)
	}
	if o.Selector != nil {
		out.Selector = copyStringMap(o.Selector)
	}
	if o.ExternalIPs != nil {
		out.ExternalIPs = copyStrings(o.ExternalIPs)
	}
	if o.LoadBalancerIP != nil {
		out.LoadBalancerIP = *o.LoadBalancerIP
	}
	if o.SessionAffinity != nil {
		out.SessionAffinity = *o.SessionAffinity
	}
	if o.ExternalTrafficPolicy != nil {
		out.ExternalTrafficPolicy = *o.ExternalTrafficPolicy
	}
	if o.ExternalName != nil {
		out.ExternalName = *o.ExternalName
	}
	return out
}

// ResolveService looks up the service template for the given service type
// and merges it with the caller overrides.
func ResolveService(serviceType string, overrides *ServiceOverrides) (ServiceConfig, error) {
	base, ok := serviceCatalog[serviceType]
	if !ok {
		return ServiceConfig{}, &UnknownTemplateError{Requested: serviceType, Valid: ServiceTypes()}
	}
	return base.Merge(overrides), nil
}
