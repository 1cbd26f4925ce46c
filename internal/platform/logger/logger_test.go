package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(redact bool) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar(), redact: redact, hashSalt: "salt"}, logs
}

func TestRedactsSecretsAndHashesUserIDs(t *testing.T) {
	log, logs := observed(true)
	log.With("service", "AuthService").Info("login",
		"email", "ada@example.com",
		"access_token", "abc",
		"user_id", "8f0e7c9a-1111-2222-3333-444455556666",
		"project_id", "p-1",
		"note", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["email"] != "[REDACTED]" || fields["access_token"] != "[REDACTED]" || fields["note"] != "[REDACTED]" {
		t.Fatalf("secrets leaked: %v", fields)
	}
	if id, _ := fields["user_id"].(string); !strings.HasPrefix(id, "hash:") || len(id) != len("hash:")+12 {
		t.Fatalf("user_id not hashed: %v", fields["user_id"])
	}
	if fields["project_id"] != "p-1" || fields["service"] != "AuthService" {
		t.Fatalf("plain fields altered: %v", fields)
	}
}

func TestRedactionCanBeDisabled(t *testing.T) {
	log, logs := observed(false)
	log.Warn("debugging", "email", "ada@example.com")
	if got := logs.All()[0].ContextMap()["email"]; got != "ada@example.com" {
		t.Fatalf("expected raw value, got %v", got)
	}
}
