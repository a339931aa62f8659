package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	KubestrateConfigKind       = "Config"
	KubestrateConfigApiVersion = "kubestrate.dev/v1"
	DefaultNamespace           = "default"
	DefaultKubectlCommand      = "kubectl"
	DefaultHelmCommand         = "helm"
	MinKubectlVersion          = "1.27.0"
	MinHelmVersion             = "3.12.0"
)

type Config struct {
	metav1.TypeMeta `json:",inline"`

	// Namespace is used for namespaced resources when no namespace
	// is given on the command line.
	Namespace string `json:"namespace,omitempty"`

	// Tools holds the external command configuration.
	Tools *Tools `json:"tools,omitempty"`
}

// Tools holds the command strings and minimum versions of the
// external binaries.
type Tools struct {
	// Kubectl is the command used for kubectl invocations, it may
	// carry extra arguments e.g. "kubectl --context staging".
	Kubectl string `json:"kubectl"`

	// Helm is the command used for helm invocations.
	Helm string `json:"helm"`

	// MinKubectlVersion is the oldest accepted kubectl client version.
	MinKubectlVersion string `json:"minKubectlVersion,omitempty"`

	// MinHelmVersion is the oldest accepted helm client version.
	MinHelmVersion string `json:"minHelmVersion,omitempty"`
}

// NewConfig returns a config with the default namespace and tools.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       KubestrateConfigKind,
			APIVersion: KubestrateConfigApiVersion,
		},
		Namespace: DefaultNamespace,
		Tools:     defaultTools(),
	}
}

func defaultTools() *Tools {
	return &Tools{
		Kubectl:           DefaultKubectlCommand,
		Helm:              DefaultHelmCommand,
		MinKubectlVersion: MinKubectlVersion,
		MinHelmVersion:    MinHelmVersion,
	}
}

// DefaultConfigPath returns '$HOME/.kubestrate/config'
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".kubestrate/config"), nil
}

// Read loads the config from the specified path,
// if the config file is not found, a default is returned.
func Read(configPath string) (*Config, error) {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("$HOME dir can't be determined, error: %w", err)
		}
		configPath = p
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}

	cfgData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(cfgData, cfg); err != nil {
		return nil, err
	}

	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	if cfg.Tools == nil {
		cfg.Tools = defaultTools()
	}

	if cfg.Tools.Kubectl == "" {
		return nil, fmt.Errorf("the kubectl command can't be empty")
	}

	if cfg.Tools.Helm == "" {
		return nil, fmt.Errorf("the helm command can't be empty")
	}

	return cfg, nil
}

// Write saves the config at the given path, if no path is specified
// it will create or override '$HOME/.kubestrate/config'.
func (c *Config) Write(configPath string) error {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), os.FileMode(0755)); err != nil {
		return err
	}

	cfgData, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, cfgData, os.FileMode(0666)); err != nil {
		return err
	}

	return nil
}
