package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/linelog/tmpl"
)

// TestInitConfigRun tests the Config.Run command.
func TestInitConfigRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil, // no pre-existing file
			wantErr: nil,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				// Create existing file
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: nil,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				// Create existing file
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yml")

			// Run setup if provided
			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			// Create a Kong context with vars
			var cli struct {
				Level    string `default:"info"    help:"Record level"`
				Template string `default:"default" help:"Template set name or directory path"`
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			// Create context with kong context
			ctx := WithContext(context.Background(), kctx)

			// Run init config command
			initCmd := &Config{Force: tt.force}

			err = initCmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Config.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Config.Run() unexpected error = %v", err)
			}

			// Verify file was created
			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			output := string(content)

			if !strings.Contains(output, ConfigIdentifier+":") {
				t.Errorf("Config.Run() output missing %q key: %s", ConfigIdentifier, output)
			}

			if !strings.Contains(output, "level: info") {
				t.Errorf("Config.Run() output missing flag default: %s", output)
			}

			// Generated config must parse back as YAML
			var doc map[string]any
			if err := yaml.Unmarshal(content, &doc); err != nil {
				t.Errorf("Generated config is not valid YAML: %v", err)
			}

			if _, ok := doc[ConfigIdentifier]; !ok {
				t.Errorf("Generated config missing %q namespace: %s", ConfigIdentifier, output)
			}
		})
	}
}

// TestInitConfigFlagFiltering tests which flags survive into the generated
// configuration document.
func TestInitConfigFlagFiltering(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "config.yml")

	var cli struct {
		Level     string   `default:"info" help:"Record level"`
		MaxWidth  int      `default:"80"   help:"Maximum line width" name:"max-width"`
		Verbose   bool     `default:"true" help:"Verbose output"`
		Secret    string   `help:"Hidden flag" hidden:""`
		Reason    string   `help:"Unset string flag"`
		Sources   []string `help:"Unset slice flag"`
		PprofMode string   `default:"cpu" help:"Profiling mode" name:"pprof-mode"`
	}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: confPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	initCmd := &Config{}
	if err := initCmd.Run(ctx); err != nil {
		t.Fatalf("Config.Run() unexpected error = %v", err)
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	output := string(content)

	// Flag names serialize with hyphens replaced by underscores.
	want := []string{"level: info", "max_width: 80", "verbose: true"}
	for _, expected := range want {
		if !strings.Contains(output, expected) {
			t.Errorf("Config.Run() output = %q, want to contain %q", output, expected)
		}
	}

	// Hidden, empty, and profiling flags stay out of the document.
	skip := []string{"secret", "reason", "sources", "pprof_mode", "help"}
	for _, unexpected := range skip {
		if strings.Contains(output, unexpected) {
			t.Errorf("Config.Run() output = %q, should not contain %q", output, unexpected)
		}
	}
}

// TestInitConfigInvalidPath tests init config with an invalid file path.
func TestInitConfigInvalidPath(t *testing.T) {
	t.Parallel()

	// Use an invalid path (directory that doesn't exist)
	invalidPath := "/nonexistent/directory/config.yml"

	// Create a Kong context with vars
	var cli struct{}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: invalidPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	// Run init config command
	initCmd := &Config{Force: false}

	err = initCmd.Run(ctx)

	// Should fail because directory doesn't exist
	if err == nil {
		t.Error("Config.Run() expected error for invalid path, got nil")
	}
}

// TestInitTemplateRun tests scaffolding template directories from presets.
func TestInitTemplateRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		preset    string
		wantErr   error
		wantFiles []string
	}{
		{
			name:   "scaffold_default_preset",
			preset: "default",
			wantFiles: []string{
				"base.tpl",
				"debug.tpl",
				"info.tpl",
				"warning.tpl",
				"error.tpl",
				"critical.tpl",
			},
		},
		{
			name:      "scaffold_basic_preset",
			preset:    "basic",
			wantFiles: []string{"base.tpl"},
		},
		{
			name:    "unknown_preset",
			preset:  "no-such-preset",
			wantErr: tmpl.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := filepath.Join(t.TempDir(), "custom")

			tmplCmd := &Template{Name: target, From: tt.preset}

			err := tmplCmd.Run(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Template.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Template.Run() unexpected error = %v", err)
			}

			for _, file := range tt.wantFiles {
				path := filepath.Join(target, file)

				got, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("scaffolded file %s: %v", file, err)
				}

				want, err := fs.ReadFile(tmpl.BuiltinFS(), tt.preset+"/"+file)
				if err != nil {
					t.Fatal(err)
				}

				if string(got) != string(want) {
					t.Errorf("scaffolded %s = %q, want %q", file, got, want)
				}
			}
		})
	}
}

// TestInitTemplateForce tests that scaffolding refuses to overwrite without
// --force.
func TestInitTemplateForce(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "custom")

	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}

	// Pre-existing file collides with the preset's base.tpl.
	existing := filepath.Join(target, "base.tpl")
	if err := os.WriteFile(existing, []byte("{message}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tmplCmd := &Template{Name: target, From: "basic"}

	err := tmplCmd.Run(context.Background())
	if !errors.Is(err, ErrFileExists) {
		t.Errorf("Template.Run() error = %v, want %v", err, ErrFileExists)
	}

	// Force overwrites with the preset content.
	tmplCmd = &Template{Name: target, From: "basic", Force: true}

	if err := tmplCmd.Run(context.Background()); err != nil {
		t.Fatalf("Template.Run() unexpected error = %v", err)
	}

	got, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}

	want, err := fs.ReadFile(tmpl.BuiltinFS(), "basic/base.tpl")
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != string(want) {
		t.Errorf("forced base.tpl = %q, want %q", got, want)
	}
}

// TestInitTemplateLoadsBack tests that a scaffolded directory compiles as a
// custom template.
func TestInitTemplateLoadsBack(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "release-checks")

	tmplCmd := &Template{Name: target, From: "precommit"}
	if err := tmplCmd.Run(context.Background()); err != nil {
		t.Fatalf("Template.Run() unexpected error = %v", err)
	}

	set, err := tmpl.LoadDir(target)
	if err != nil {
		t.Fatalf("loading scaffolded directory: %v", err)
	}

	if set.Name() != "release-checks" {
		t.Errorf("set name = %q, want %q", set.Name(), "release-checks")
	}

	plan, ok := set.Plan(tmpl.LevelCritical)
	if !ok {
		t.Fatal("critical plan missing from scaffolded set")
	}

	if !strings.Contains(plan.Source(), "default=Failed") {
		t.Errorf("critical plan = %q, want preset override applied", plan.Source())
	}
}
