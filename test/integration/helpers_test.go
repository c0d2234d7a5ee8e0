//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/project-labs/project/internal/conflict"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ConfigPath   string // PROJECT_CONFIG
	TemplatePath string // holds one directory per template
	ProjectDir   string // destination root
}

// setupTestEnv creates isolated temp directories and points PROJECT_CONFIG
// at a fresh config file. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ConfigPath:   filepath.Join(t.TempDir(), "project", "config.json"),
		TemplatePath: t.TempDir(),
		ProjectDir:   t.TempDir(),
	}

	t.Setenv("PROJECT_CONFIG", env.ConfigPath)
	t.Setenv("PROJECT_TEMPLATEPATH", "")
	t.Setenv("PROJECT_STRATEGY", "")

	return env
}

// setupNodeTemplate creates a small Node service template and returns its
// name.
func setupNodeTemplate(t *testing.T, templatePath string) string {
	t.Helper()

	root := filepath.Join(templatePath, "node-service")
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "node-service",
  "version": "0.1.0",
  "scripts": {"start": "node src/index.js"},
  "__templateMergeExcludeKeys": ["name", "version"]
}`)
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{"compilerOptions": {"strict": true}}`)
	writeFile(t, filepath.Join(root, "config", "app.json"), `{"port": 8080, "debug": false}`)
	writeFile(t, filepath.Join(root, "src", "index.js"), "console.log('hello')\n")
	writeFile(t, filepath.Join(root, ".gitignore"), "node_modules/\n")

	return "node-service"
}

// countingChooser answers every question with the same action and counts
// how often it was asked.
type countingChooser struct {
	action conflict.Action
	asked  []string
}

func (c *countingChooser) Choose(_ context.Context, q conflict.Question) (conflict.Action, error) {
	c.asked = append(c.asked, q.Target)
	return c.action, nil
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path, failing the test if it is unreadable.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
