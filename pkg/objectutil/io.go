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
	"io"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	apiruntime "k8s.io/apimachinery/pkg/runtime"
	yamlutil "k8s.io/apimachinery/pkg/util/yaml"
)

// ReadDocuments decodes the YAML or JSON documents from the given reader
// into unstructured objects, preserving document order. Documents that
// decode to an empty value and documents without a kind field are skipped,
// lists are flattened into their items.
func ReadDocuments(r io.Reader) ([]*unstructured.Unstructured, error) {
	reader := yamlutil.NewYAMLOrJSONDecoder(r, 2048)
	objects := make([]*unstructured.Unstructured, 0)

	for {
		// decode into a plain map first, Unstructured's own unmarshalling
		// rejects documents without a kind instead of letting us skip them
		var doc map[string]interface{}
		err := reader.Decode(&doc)
		if err != nil {
			if err == io.EOF {
				break
			}
			return objects, err
		}

		if len(doc) == 0 {
			continue
		}
		obj := &unstructured.Unstructured{Object: doc}

		if obj.IsList() {
			err = obj.EachListItem(func(item apiruntime.Object) error {
				if u := item.(*unstructured.Unstructured); u.GetKind() != "" {
					objects = append(objects, u)
				}
				return nil
			})
			if err != nil {
				return objects, err
			}
			continue
		}

		if obj.GetKind() == "" {
			continue
		}
		objects = append(objects, obj)
	}

	return objects, nil
}
