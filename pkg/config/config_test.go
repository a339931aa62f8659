package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissingFile(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "config"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("namespace: %s", cfg.Namespace)
	}
	if cfg.Tools.Kubectl != DefaultKubectlCommand {
		t.Errorf("kubectl command: %s", cfg.Tools.Kubectl)
	}
}

func TestReadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	data := []byte("apiVersion: kubestrate.dev/v1\nkind: Config\nnamespace: staging\n")
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatal(err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Namespace != "staging" {
		t.Errorf("namespace: %s", cfg.Namespace)
	}
	if cfg.Tools == nil || cfg.Tools.Helm != DefaultHelmCommand {
		t.Errorf("tools not defaulted: %+v", cfg.Tools)
	}
}

func TestReadRejectsEmptyCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	data := []byte("tools:\n  kubectl: \"\"\n  helm: helm\n")
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); err == nil {
		t.Fatal("expected an error for an empty kubectl command")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config")

	cfg := NewConfig()
	cfg.Namespace = "ops"
	cfg.Tools.Kubectl = "kubectl --context staging"
	if err := cfg.Write(path); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Namespace != "ops" {
		t.Errorf("namespace: %s", got.Namespace)
	}
	if got.Tools.Kubectl != "kubectl --context staging" {
		t.Errorf("kubectl command: %s", got.Tools.Kubectl)
	}
}
