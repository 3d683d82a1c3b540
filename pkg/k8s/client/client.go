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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig names the environment variable holding a kubeconfig path.
const EnvKubeconfig = "KUBECONFIG"

// Interface is an alias for kubernetes.Interface so callers can pass fake
// clientsets.
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient Interface
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide client built on first call from the
// ambient configuration. Later calls return the same client or error.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cs, cfg, err := BuildKubeClient("")
		if err != nil {
			clientErr = err
			return
		}
		cachedClient, cachedConfig = cs, cfg
	})
	return cachedClient, cachedConfig, clientErr
}

// ResolveKubeconfig returns the kubeconfig path to use: explicit, then
// $KUBECONFIG, then ~/.kube/config when it exists. An empty result means
// in-cluster configuration.
func ResolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient creates a new client from kubeconfig, bypassing the
// process-wide cache. An empty path resolves through ResolveKubeconfig.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	path := ResolveKubeconfig(kubeconfig)

	var (
		cfg *rest.Config
		err error
	)
	if path == "" {
		cfg, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		cfg, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, cfg, nil
}

// AuthMethod names the credential type of cfg for audit logs. It never
// returns the credential itself.
func AuthMethod(cfg *rest.Config) string {
	switch {
	case cfg == nil:
		return "none"
	case cfg.AuthProvider != nil:
		return cfg.AuthProvider.Name
	case cfg.ExecProvider != nil:
		return "exec"
	case cfg.BearerToken != "" || cfg.BearerTokenFile != "":
		return "bearer-token"
	case cfg.CertData != nil || cfg.CertFile != "":
		return "cert"
	default:
		return "default"
	}
}
