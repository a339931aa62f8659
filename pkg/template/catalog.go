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
	"fmt"
	"sort"
	"strings"
)

// Workload template identifiers form a closed set, an identifier outside
// the set is a caller error and never reaches the catalog.
const (
	WebServer = "web-server"
	NodeJS    = "nodejs"
	Python    = "python"
	Redis     = "redis"
	Postgres  = "postgres"
	MySQL     = "mysql"
	Custom    = "custom"
)

// UnknownTemplateError is returned when a template identifier is not part
// of the catalog. The message lists the valid identifiers so callers can
// self-correct.
type UnknownTemplateError struct {
	Requested string
	Valid     []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("invalid template %q, must be one of: %s",
		e.Requested, strings.Join(e.Valid, ", "))
}

var workloadCatalog = map[string]Config{
	WebServer: {
		Image: "nginx:latest",
		Ports: []Port{
			{ContainerPort: 80, Protocol: "TCP", Name: "http"},
		},
		Resources: &Resources{
			Requests: map[string]string{"cpu": "100m", "memory": "128Mi"},
			Limits:   map[string]string{"cpu": "500m", "memory": "512Mi"},
		},
		RestartPolicy: "Always",
	},
	NodeJS: {
		Image: "node:18",
		Ports: []Port{
			{ContainerPort: 3000, Protocol: "TCP", Name: "http"},
		},
		Resources: &Resources{
			Requests: map[string]string{"cpu": "200m", "memory": "256Mi"},
			Limits:   map[string]string{"cpu": "1000m", "memory": "1Gi"},
		},
		RestartPolicy: "Always",
	},
	Python: {
		Image: "python:3.9",
		Ports: []Port{
			{ContainerPort: 8000, Protocol: "TCP", Name: "http"},
		},
		Resources: &Resources{
			Requests: map[string]string{"cpu": "200m", "memory": "256Mi"},
			Limits:   map[string]string{"cpu": "1000m", "memory": "1Gi"},
		},
		RestartPolicy: "Always",
	},
	Redis: {
		Image: "redis:latest",
		Ports: []Port{
			{ContainerPort: 6379, Protocol: "TCP", Name: "redis"},
		},
		Resources: &Resources{
			Requests: map[string]string{"cpu": "100m", "memory": "128Mi"},
			Limits:   map[string]string{"cpu": "500m", "memory": "512Mi"},
		},
		RestartPolicy: "Always",
	},
	Postgres: {
		Image: "postgres:latest",
		Ports: []Port{
			{ContainerPort: 5432, Protocol: "TCP", Name: "postgres"},
		},
		Env: []EnvVar{
			{Name: "POSTGRES_PASSWORD", Value: "postgres"},
		},
		Resources: &Resources{
			Requests: map[string]string{"cpu": "200m", "memory": "256Mi"},
			Limits:   map[string]string{"cpu": "1000m", "memory": "1Gi"},
		},
		RestartPolicy: "Always",
	},
	MySQL: {
		Image: "mysql:latest",
		Ports: []Port{
			{ContainerPort: 3306, Protocol: "TCP", Name: "mysql"},
		},
		Env: []EnvVar{
			{Name: "MYSQL_ROOT_PASSWORD", Value: "mysql"},
		},
		Resources: &Resources{
			Requests: map[string]string{"cpu": "200m", "memory": "256Mi"},
			Limits:   map[string]string{"cpu": "1000m", "memory": "1Gi"},
		},
		RestartPolicy: "Always",
	},
	Custom: {
		Resources: &Resources{
			Requests: map[string]string{"cpu": "100m", "memory": "128Mi"},
			Limits:   map[string]string{"cpu": "500m", "memory": "512Mi"},
		},
		RestartPolicy: "Always",
	},
}

// Workloads returns the valid workload template identifiers in sorted order.
func Workloads() []string {
	ids := make([]string, 0, len(workloadCatalog))
	for id := range workloadCatalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve looks up the workload template with the given identifier and
// merges it with the caller overrides. The returned config shares no state
// with the catalog, mutating it leaves the stored template untouched.
func Resolve(id string, overrides *Overrides) (Config, error) {
	base, ok := workloadCatalog[id]
	if !ok {
		return Config{}, &UnknownTemplateError{Requested: id, Valid: Workloads()}
	}
	return base.Merge(overrides), nil
}
