package cli

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/docpilot/docpilot/internal/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		debug       bool
		wantDebugOn bool
	}{
		{"production level", false, false},
		{"debug level", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := newLogger(tt.debug)
			if err != nil {
				t.Fatalf("newLogger(%v) error: %v", tt.debug, err)
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebugOn)
			}
		})
	}
}

func TestNewGitHubClient_TokenMode(t *testing.T) {
	c, err := newGitHubClient(config.GitHubConfig{Token: "ghp_test"})
	if err != nil {
		t.Fatalf("newGitHubClient error: %v", err)
	}
	if c == nil {
		t.Fatal("newGitHubClient returned nil client")
	}
}

func TestNewGitHubClient_AppModeMissingKey(t *testing.T) {
	_, err := newGitHubClient(config.GitHubConfig{
		AppID:          123,
		InstallationID: 456,
		PrivateKeyPath: "/nonexistent/key.pem",
	})
	if err == nil {
		t.Fatal("expected error for missing private key, got nil")
	}
}

func TestReviewCmd_ArgValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no args", nil, true},
		{"one arg", []string{"old.md"}, true},
		{"two args", []string{"old.md", "new.md"}, false},
		{"three args", []string{"a.md", "b.md", "c.md"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reviewCmd.Args(reviewCmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("Args(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestConfigSetCmd_ArgValidation(t *testing.T) {
	if err := configSetCmd.Args(configSetCmd, []string{"model"}); err == nil {
		t.Error("expected error for one arg, got nil")
	}
	if err := configSetCmd.Args(configSetCmd, []string{"model", "MiniMax-Text-01"}); err != nil {
		t.Errorf("unexpected error for two args: %v", err)
	}
}
