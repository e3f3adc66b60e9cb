package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"curriculum-kit/internal/config"
)

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core, Options{Redact: true, HashSalt: "salt"})

	log.Info("user saved", "email", "a@b.com", "user_id", "u1", "sftp_pass", "hunter2", "title", "Go 101")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()

	if fields["email"] != "[REDACTED]" {
		t.Errorf("Expected email to be redacted, got %v", fields["email"])
	}
	if fields["sftp_pass"] != "[REDACTED]" {
		t.Errorf("Expected sftp_pass to be redacted, got %v", fields["sftp_pass"])
	}
	uid, _ := fields["user_id"].(string)
	if !strings.HasPrefix(uid, "hash:") || len(uid) != len("hash:")+12 {
		t.Errorf("Expected user_id to be hashed, got %v", fields["user_id"])
	}
	if fields["title"] != "Go 101" {
		t.Errorf("Expected title to pass through, got %v", fields["title"])
	}
}

func TestRedactKeyWords(t *testing.T) {
	tests := []struct {
		key    string
		redact bool
		hash   bool
	}{
		{"email", true, false},
		{"user_email", true, false},
		{"sftp_pass", true, false},
		{"sftp-pass", true, false},
		{"sftpPass", true, false},
		{"auth_token", true, false},
		{"authToken", true, false},
		{"Authorization", true, false},
		{"api_key", true, false},
		{"APIKey", true, false},
		{"client.secret", true, false},
		{"passes", false, false},
		{"bypass", false, false},
		{"compass", false, false},
		{"passage_count", false, false},
		{"tokens_used", false, false},
		{"authors", false, false},
		{"user_id", false, true},
		{"userId", false, true},
		{"owner_user_id", false, true},
		{"title", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isRedactKey(tt.key); got != tt.redact {
				t.Errorf("Expected isRedactKey(%q) = %v, got %v", tt.key, tt.redact, got)
			}
			if got := isHashKey(tt.key); got != tt.hash {
				t.Errorf("Expected isHashKey(%q) = %v, got %v", tt.key, tt.hash, got)
			}
		})
	}
}

func TestRedactionKeepsSimilarKeys(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core, Options{Redact: true, HashSalt: "salt"})

	log.Info("checked", "passes", 3, "bypass", "cache", "sftpPass", "hunter2")

	fields := logs.All()[0].ContextMap()
	if fields["passes"] != int64(3) {
		t.Errorf("Expected passes to pass through, got %v", fields["passes"])
	}
	if fields["bypass"] != "cache" {
		t.Errorf("Expected bypass to pass through, got %v", fields["bypass"])
	}
	if fields["sftpPass"] != "[REDACTED]" {
		t.Errorf("Expected sftpPass to be redacted, got %v", fields["sftpPass"])
	}
}

func TestHashIsStable(t *testing.T) {
	a := FromCore(zapcore.NewNopCore(), Options{Redact: true, HashSalt: "s"})
	b := FromCore(zapcore.NewNopCore(), Options{Redact: true, HashSalt: "other"})

	if a.hash("u1") != a.hash("u1") {
		t.Error("Expected hash to be deterministic")
	}
	if a.hash("u1") == b.hash("u1") {
		t.Error("Expected salt to change the hash")
	}
	if a.hash("") != "" {
		t.Error("Expected empty value to hash to empty string")
	}
}

func TestRedactionDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromCore(core, Options{Redact: false})

	log.With("email", "a@b.com").Info("hello")

	fields := logs.All()[0].ContextMap()
	if fields["email"] != "a@b.com" {
		t.Errorf("Expected raw email with redaction off, got %v", fields["email"])
	}
}

func TestOddKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromCore(core, Options{Redact: true})

	log.Warn("dangling", "count", 3, "orphan")

	entries := logs.FilterMessage("dangling").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["count"] != int64(3) {
		t.Errorf("Expected count=3, got %v", entries[0].ContextMap()["count"])
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.Config{LogMode: "prod", LogDebug: true, LogRedact: true, LogHashSalt: "s"})
	want := Options{Mode: "prod", Debug: true, Redact: true, HashSalt: "s"}
	if opts != want {
		t.Errorf("Expected %+v, got %+v", want, opts)
	}

	log, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Debug("ready")
}
