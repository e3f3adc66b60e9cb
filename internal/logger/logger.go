package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"curriculum-kit/internal/config"
)

// Logger is a thin key/value wrapper over zap's sugared logger.
// Values under sensitive keys are redacted and user ids are hashed before they reach a sink.
type Logger struct {
	sugar  *zap.SugaredLogger
	redact bool
	salt   string
}

type Options struct {
	// Mode is "prod"/"production" for JSON output, anything else for console output.
	Mode     string
	Debug    bool
	Redact   bool
	HashSalt string
}

// OptionsFromConfig reads the logging section of the environment configuration.
func OptionsFromConfig(c config.Config) Options {
	return Options{Mode: c.LogMode, Debug: c.LogDebug, Redact: c.LogRedact, HashSalt: c.LogHashSalt}
}

func New(opts Options) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return FromZap(zl, opts), nil
}

// FromZap wraps an existing zap logger (tests pass an observer core here).
func FromZap(zl *zap.Logger, opts Options) *Logger {
	return &Logger{sugar: zl.Sugar(), redact: opts.Redact, salt: opts.HashSalt}
}

// FromCore is FromZap for a bare core.
func FromCore(core zapcore.Core, opts Options) *Logger {
	return FromZap(zap.New(core), opts)
}

// Nop discards everything.
func Nop() *Logger {
	return FromZap(zap.NewNop(), Options{})
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, l.sanitize(kv)...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, l.sanitize(kv)...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, l.sanitize(kv)...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, l.sanitize(kv)...) }
func (l *Logger) Fatal(msg string, kv ...any) { l.sugar.Fatalw(msg, l.sanitize(kv)...) }

func (l *Logger) With(kv ...any) *Logger {
	return &Logger{sugar: l.sugar.With(l.sanitize(kv)...), redact: l.redact, salt: l.salt}
}

func (l *Logger) sanitize(kv []any) []any {
	if !l.redact || len(kv) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := fmt.Sprint(kv[i])
		out = append(out, key, l.sanitizeValue(strings.TrimSpace(key), kv[i+1]))
	}
	return out
}

func (l *Logger) sanitizeValue(key string, val any) any {
	switch {
	case isRedactKey(key):
		return "[REDACTED]"
	case isHashKey(key):
		return l.hash(val)
	}
	return val
}

var redactWords = map[string]bool{
	"email":         true,
	"password":      true,
	"passwd":        true,
	"pass":          true,
	"secret":        true,
	"token":         true,
	"authorization": true,
	"apikey":        true,
}

// isRedactKey matches whole words of the key, so sftp_pass and authToken are
// redacted but passes and bypass are not.
func isRedactKey(key string) bool {
	words := keyWords(key)
	if redactWords[strings.Join(words, "")] {
		return true
	}
	for _, w := range words {
		if redactWords[w] {
			return true
		}
	}
	return false
}

func isHashKey(key string) bool {
	k := strings.Join(keyWords(key), "")
	return k == "userid" || strings.HasSuffix(k, "userid")
}

// keyWords splits a log key on separators and lower-to-upper case changes and
// lowercases the parts: "sftp_pass" and "sftpPass" both give [sftp pass].
func keyWords(key string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	prevLower := false
	for _, r := range key {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			flush()
		}
		cur = append(cur, r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	flush()
	return words
}

func (l *Logger) hash(val any) string {
	raw := strings.TrimSpace(fmt.Sprint(val))
	if raw == "" {
		return ""
	}
	h := sha256.New()
	_, _ = h.Write([]byte(l.salt))
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}
