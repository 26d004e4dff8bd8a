package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestModelsList(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"models", "list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("models list failed: %v", err)
	}

	for _, want := range []string{"mnist", "resnet50-v2", "vgg19-bn"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("models list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestModelsFetchUnknownModel(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"models", "fetch", "--dir", t.TempDir(), "no-such-model"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("expected unknown-model error, got %v", err)
	}
}
