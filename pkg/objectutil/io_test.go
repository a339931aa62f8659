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

package objectutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadDocuments(t *testing.T) {
	manifest := `
apiVersion: v1
kind: ConfigMap
metadata:
  name: first
---
# comment only
---
apiVersion: v1
kind: Service
metadata:
  name: second
---
metadata:
  name: kindless
---
apiVersion: v1
kind: List
items:
  - apiVersion: v1
    kind: ConfigMap
    metadata:
      name: third
  - apiVersion: v1
    kind: ConfigMap
    metadata:
      name: fourth
`

	objects, err := ReadDocuments(strings.NewReader(manifest))
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, obj := range objects {
		got = append(got, obj.GetKind()+"/"+obj.GetName())
	}

	want := []string{"ConfigMap/first", "Service/second", "ConfigMap/third", "ConfigMap/fourth"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDocumentsInvalid(t *testing.T) {
	if _, err := ReadDocuments(strings.NewReader("{not yaml")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestReadDocumentsEmpty(t *testing.T) {
	objects, err := ReadDocuments(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 0 {
		t.Errorf("expected no objects, got %d", len(objects))
	}
}
