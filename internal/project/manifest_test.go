package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"risp/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "risp.toml"), "[package]\nname = \"demo\"\n\n[parse]\nmax-diagnostics = 7\n")
	writeFile(t, filepath.Join(root, "main.risp"), "(def x 1)\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := project.LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	want := project.DefaultConfig("demo")
	want.Parse.MaxDiagnostics = 7
	if diff := cmp.Diff(want, m.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	main, err := m.MainPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(main) != "main.risp" {
		t.Errorf("MainPath = %s", main)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := project.LoadManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v, want no manifest", ok, err)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no package", "[build]\nmain = \"x.risp\"\n", project.ErrPackageSectionMissing},
		{"empty name", "[package]\nname = \" \"\n", project.ErrPackageNameMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "risp.toml")
			writeFile(t, path, tt.content)
			if _, err := project.DecodeConfig(path); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risp.toml")
	writeFile(t, path, "[package]\nname = \"demo\"\nedition = 2\n")
	if _, err := project.DecodeConfig(path); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risp.toml")
	cfg := project.DefaultConfig("demo")
	cfg.Cache.Enabled = false
	if err := cfg.Encode(path); err != nil {
		t.Fatal(err)
	}
	got, err := project.DecodeConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if err := cfg.Encode(path); err == nil {
		t.Error("Encode overwrote an existing manifest")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	d := project.HashContent([]byte("(def x 1)"))
	if project.Combine(d, "a", "b") == project.Combine(d, "b", "a") {
		t.Error("Combine ignores part order")
	}
	if project.Combine(d, "ab") == project.Combine(d, "a", "b") {
		t.Error("Combine does not separate parts")
	}
	if d.IsZero() {
		t.Error("hash of content is zero")
	}
}
