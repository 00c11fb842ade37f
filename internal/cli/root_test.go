package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drawboard/pkg/errors"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("", "", "")

	out, err := runRoot(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "drawboard 1.0.0") || !strings.Contains(out, "commit: abc123") {
		t.Errorf("version output = %q", out)
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"render", "edit"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
			continue
		}
		for _, flag := range []string{"out", "width", "height", "shape"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("%s has no --%s flag", name, flag)
			}
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root has no --%s flag", flag)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	cfg := writeConfig(t, `
width = 40
height = 30
background_color = "#0000ff"

[grid]
enabled = false

[[elements]]
x = 10
y = 10
width = 20
height = 10
color = "#ff0000"
`)
	out := filepath.Join(t.TempDir(), "board.png")

	if _, err := runRoot(t, "render", "--config", cfg, "--out", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds = %v, want 40x30", b)
	}
	if r, g, b, _ := img.At(20, 15).RGBA(); r>>8 != 0xff || g != 0 || b != 0 {
		t.Errorf("element pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(2, 2).RGBA(); r != 0 || g != 0 || b>>8 != 0xff {
		t.Errorf("background pixel = %d,%d,%d, want blue", r>>8, g>>8, b>>8)
	}
}

func TestRenderCommandOverrides(t *testing.T) {
	cfg := writeConfig(t, "width = 40\nheight = 30\n")
	out := filepath.Join(t.TempDir(), "board.png")

	if _, err := runRoot(t, "render", "-c", cfg, "-o", out, "--width", "64"); err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	conf, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Width != 64 || conf.Height != 30 {
		t.Errorf("size = %dx%d, want 64x30", conf.Width, conf.Height)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(cfg string) []string
		code errors.Code
	}{
		{"bad shape flag", func(cfg string) []string { return []string{"render", "-c", cfg, "--shape", "star"} }, errors.ErrCodeInvalidShape},
		{"negative width", func(cfg string) []string { return []string{"render", "-c", cfg, "--width=-1"} }, errors.ErrCodeInvalidSize},
		{"export to missing dir", func(cfg string) []string {
			return []string{"render", "-c", cfg, "-o", filepath.Join(t.TempDir(), "missing", "x.png")}
		}, errors.ErrCodeExport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, "width = 10\nheight = 10\n")
			_, err := runRoot(t, tt.args(cfg)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	bad := writeConfig(t, "width = [")
	if _, err := runRoot(t, "render", "-c", bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config err = %v, want INVALID_CONFIG", err)
	}
}
