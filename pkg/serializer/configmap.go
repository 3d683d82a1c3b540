// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/header"
	"github.com/NVIDIA/hostprobe/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes output paths that target a ConfigMap.
	ConfigMapURIScheme = "cm://"

	fieldManager = "hostprobe"
)

// ConfigMapWriter writes serialized documents to a Kubernetes ConfigMap with
// server-side apply, creating or updating it in one call.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format

	// client is resolved through client.GetKubeClient when nil.
	client kubernetes.Interface
}

// NewConfigMapWriter creates a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalizeFormat(format),
	}
}

// WithClient sets the Kubernetes client, mostly for tests.
func (w *ConfigMapWriter) WithClient(c kubernetes.Interface) *ConfigMapWriter {
	w.client = c
	return w
}

// Serialize writes doc to the ConfigMap. The ConfigMap data holds:
//   - snapshot.{json|yaml|txt}: the serialized document
//   - format: the format used
//   - timestamp: the document timestamp, or now
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		c, cfg, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		slog.Info("configmap operation",
			"namespace", w.namespace,
			"name", w.name,
			"auth_method", client.AuthMethod(cfg),
			"format", w.format)
		cs = c
	}

	content, err := Marshal(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind, ver, ts := documentLabels(doc)

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "hostprobe",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   ver,
		}).
		WithData(map[string]string{
			"snapshot." + w.format.Extension(): string(content),
			"format":                           string(w.format),
			"timestamp":                        ts,
		})

	if _, err := cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm,
		metav1.ApplyOptions{FieldManager: fieldManager, Force: true}); err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	slog.Debug("configmap applied", "namespace", w.namespace, "name", w.name)
	return nil
}

// documentLabels extracts kind, version and timestamp from a document that
// embeds a header.Header.
func documentLabels(doc any) (kind, ver, ts string) {
	kind = header.KindSnapshot.String()
	ver = "unknown"
	ts = time.Now().UTC().Format(time.RFC3339)

	h, ok := doc.(interface{ GetHeader() *header.Header })
	if !ok || h.GetHeader() == nil {
		return kind, ver, ts
	}
	hdr := h.GetHeader()
	if hdr.Kind != "" {
		kind = hdr.Kind.String()
	}
	if v := hdr.Metadata[header.MetadataVersion]; v != "" {
		ver = v
	}
	if v := hdr.Metadata[header.MetadataTimestamp]; v != "" {
		ts = v
	}
	return kind, ver, ts
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI splits cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	ns, n, found := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !found {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(ns)
	name = strings.TrimSpace(n)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
