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

import (
	corev1 "k8s.io/api/core/v1"
)

// Port describes a single container port of a workload configuration.
type Port struct {
	ContainerPort int32  `json:"containerPort"`
	Protocol      string `json:"protocol,omitempty"`
	Name          string `json:"name,omitempty"`
}

// EnvVar describes an environment variable, either by literal value
// or by reference to another source (secret key, field path, etc).
type EnvVar struct {
	Name      string               `json:"name"`
	Value     string               `json:"value,omitempty"`
	ValueFrom *corev1.EnvVarSource `json:"valueFrom,omitempty"`
}

// Resources holds the requests and limits quantity strings of a workload.
type Resources struct {
	Requests map[string]string `json:"requests,omitempty"`
	Limits   map[string]string `json:"limits,omitempty"`
}

// Config is the canonical workload configuration produced by merging
// a catalog template with caller overrides. It is the single input of
// the resource builders.
type Config struct {
	Image         string     `json:"image,omitempty"`
	Ports         []Port     `json:"ports,omitempty"`
	Env           []EnvVar   `json:"env,omitempty"`
	Resources     *Resources `json:"resources,omitempty"`
	Command       []string   `json:"command,omitempty"`
	Args          []string   `json:"args,omitempty"`
	RestartPolicy string     `json:"restartPolicy,omitempty"`
}

// Overrides carries the caller-supplied fields of a workload configuration.
// A nil field is inherited from the template, a non-nil field replaces the
// template's field wholesale. Lists are not appended to: supplying ports
// discards the template's ports entirely.
type Overrides struct {
	Image         *string    `json:"image,omitempty"`
	Ports         []Port     `json:"ports,omitempty"`
	Env           []EnvVar   `json:"env,omitempty"`
	Resources     *Resources `json:"resources,omitempty"`
	Command       []string   `json:"command,omitempty"`
	Args          []string   `json:"args,omitempty"`
	RestartPolicy *string    `json:"restartPolicy,omitempty"`
}

// DeepCopy returns a copy of the config that shares no mutable state
// with the receiver.
func (c Config) DeepCopy() Config {
	out := c
	out.Ports = copyPorts(c.Ports)
	out.Env = copyEnv(c.Env)
	out.Resources = c.Resources.DeepCopy()
	out.Command = copyStrings(c.Command)
	out.Args = copyStrings(c.Args)
	return out
}

// DeepCopy returns a copy of the resources block, or nil for a nil receiver.
func (r *Resources) DeepCopy() *Resources {
	if r == nil {
		return nil
	}
	return &Resources{
		Requests: copyStringMap(r.Requests),
		Limits:   copyStringMap(r.Limits),
	}
}

// Merge combines the config with the given overrides and returns the result.
// Every present override field replaces the corresponding field entirely,
// absent fields are inherited. The receiver is not modified.
func (c Config) Merge(o *Overrides) Config {
	out := c.DeepCopy()
	if o == nil {
		return out
	}
	if o.Image != nil {
		out.Image = *o.Image
	}
	if o.Ports != nil {
		out.Ports = copyPorts(o.Ports)
	}
	if o.Env != nil {
		out.Env = copyEnv(o.Env)
	}
	if o.Resources != nil {
		out.Resources = o.Resources.DeepCopy()
	}
	if o.Command != nil {
		out.Command = copyStrings(o.Command)
	}
	if o.Args != nil {
		out.Args = copyStrings(o.Args)
	}
	if o.RestartPolicy != nil {
		out.RestartPolicy = *o.RestartPolicy
	}
	return out
}

func copyPorts(in []Port) []Port {
	if in == nil {
		return nil
	}
	out := make([]Port, len(in))
	copy(out, in)
	return out
}

func copyEnv(in []EnvVar) []EnvVar {
	if in == nil {
		return nil
	}
	out := make([]EnvVar, len(in))
	for i, e := range in {
		out[i] = e
		out[i].ValueFrom = e.ValueFrom.DeepCopy()
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
