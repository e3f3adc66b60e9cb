package config

import (
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_GETENV", "")
	if got := getenv("TEST_GETENV", "default"); got != "default" {
		t.Errorf("Expected default value 'default', got '%s'", got)
	}

	t.Setenv("TEST_GETENV", "test-value")
	if got := getenv("TEST_GETENV", "default"); got != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", got)
	}
}

func TestGetenvInt(t *testing.T) {
	testCases := []struct {
		value    string
		expected int
	}{
		{"", 42},
		{"100", 100},
		{" 7 ", 7},
		{"not-an-int", 42},
	}

	for _, tc := range testCases {
		t.Setenv("TEST_GETENV_INT", tc.value)
		if got := getenvInt("TEST_GETENV_INT", 42); got != tc.expected {
			t.Errorf("getenvInt(%q) = %d, want %d", tc.value, got, tc.expected)
		}
	}
}

func TestGetenvBool(t *testing.T) {
	testCases := []struct {
		value    string
		def      bool
		expected bool
	}{
		{"", true, true},
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"not-a-bool", true, true},
	}

	for _, tc := range testCases {
		t.Setenv("TEST_GETENV_BOOL", tc.value)
		if got := getenvBool("TEST_GETENV_BOOL", tc.def); got != tc.expected {
			t.Errorf("getenvBool(%q, %v) = %v, want %v", tc.value, tc.def, got, tc.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("CURRICULUM_DATA_DIR", "/tmp/curriculums")
	t.Setenv("CURRICULUM_DB_DSN", "test.db")
	t.Setenv("CURRICULUM_LOG_MODE", "prod")
	t.Setenv("CURRICULUM_WORKERS", "3")
	t.Setenv("CURRICULUM_HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("SFTP_HOST", "sftp.test")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_USER", "sftp-user")
	t.Setenv("SFTP_PASS", "sftp-pass")
	t.Setenv("SFTP_DIR", "/test-upload")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")
	t.Setenv("SFTP_KNOWN_HOSTS", "/etc/ssh/known_hosts")
	t.Setenv("CURRICULUM_SNAPSHOT_URL", "https://content.test/latest.json")

	cfg := Load()

	if cfg.DataDir != "/tmp/curriculums" {
		t.Errorf("Expected DataDir to be '/tmp/curriculums', got '%s'", cfg.DataDir)
	}
	if cfg.DBDSN != "test.db" {
		t.Errorf("Expected DBDSN to be 'test.db', got '%s'", cfg.DBDSN)
	}
	if cfg.LogMode != "prod" {
		t.Errorf("Expected LogMode to be 'prod', got '%s'", cfg.LogMode)
	}
	if cfg.Workers != 3 {
		t.Errorf("Expected Workers to be 3, got %d", cfg.Workers)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("Expected HTTPTimeout to be 5s, got %v", cfg.HTTPTimeout)
	}
	if cfg.SFTPPort != 2222 {
		t.Errorf("Expected SFTPPort to be 2222, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPInsecureIgnoreHostKey != false {
		t.Errorf("Expected SFTPInsecureIgnoreHostKey to be false, got %v", cfg.SFTPInsecureIgnoreHostKey)
	}
	if cfg.SFTPKnownHosts != "/etc/ssh/known_hosts" {
		t.Errorf("Expected SFTPKnownHosts to be set, got '%s'", cfg.SFTPKnownHosts)
	}
	if cfg.SnapshotURL != "https://content.test/latest.json" {
		t.Errorf("Expected SnapshotURL to be set, got '%s'", cfg.SnapshotURL)
	}

	t.Setenv("CURRICULUM_DATA_DIR", "")
	t.Setenv("CURRICULUM_WORKERS", "")
	t.Setenv("SFTP_PORT", "")
	t.Setenv("SFTP_DIR", "")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "")

	cfg = Load()
	if cfg.DataDir != "./data" {
		t.Errorf("Expected default DataDir to be './data', got '%s'", cfg.DataDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Expected default Workers to be 8, got %d", cfg.Workers)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("Expected default SFTPPort to be 22, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPDir != "/inbound" {
		t.Errorf("Expected default SFTPDir to be '/inbound', got '%s'", cfg.SFTPDir)
	}
	if cfg.SFTPInsecureIgnoreHostKey != true {
		t.Errorf("Expected default SFTPInsecureIgnoreHostKey to be true, got %v", cfg.SFTPInsecureIgnoreHostKey)
	}
}
