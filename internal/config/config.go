package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Storage
	DataDir string
	DBDSN   string

	// Logging
	LogMode     string
	LogDebug    bool
	LogRedact   bool
	LogHashSalt string

	// Processing
	Workers     int
	HTTPTimeout time.Duration

	// SFTP
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPKnownHosts            string
	SFTPInsecureIgnoreHostKey bool

	// Remote snapshot source for cmd/snapshot -fetch
	SnapshotURL   string
	SnapshotToken string
}

func Load() Config {
	return Config{
		DataDir: getenv("CURRICULUM_DATA_DIR", "./data"),
		DBDSN:   getenv("CURRICULUM_DB_DSN", "curriculum.db"),

		LogMode:     getenv("CURRICULUM_LOG_MODE", "dev"),
		LogDebug:    getenvBool("CURRICULUM_LOG_DEBUG", false),
		LogRedact:   getenvBool("LOG_REDACTION_ENABLED", true),
		LogHashSalt: os.Getenv("LOG_HASH_SALT"),

		Workers:     getenvInt("CURRICULUM_WORKERS", 8),
		HTTPTimeout: time.Duration(getenvInt("CURRICULUM_HTTP_TIMEOUT_SECONDS", 60)) * time.Second,

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPKnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),

		SnapshotURL:   os.Getenv("CURRICULUM_SNAPSHOT_URL"),
		SnapshotToken: os.Getenv("CURRICULUM_SNAPSHOT_TOKEN"),
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
