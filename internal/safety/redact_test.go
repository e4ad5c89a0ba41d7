package safety

import (
	"strings"
	"testing"
)

func TestRedactMessageRedactsAssignments(t *testing.T) {
	input := "PASSWORD=hunter2 loginctl terminate-user bob, stderr: token: xyz"
	got := RedactMessage(input)

	if strings.Contains(got, "hunter2") || strings.Contains(got, "xyz") {
		t.Fatalf("expected secrets to be redacted, got %q", got)
	}
	if !strings.Contains(got, "PASSWORD=<redacted>") {
		t.Fatalf("expected password assignment to be redacted, got %q", got)
	}
}

func TestRedactMessageRedactsBearerToken(t *testing.T) {
	got := RedactMessage("curl failed: Authorization: Bearer verysecrettoken")
	if strings.Contains(got, "verysecrettoken") {
		t.Fatalf("expected bearer token to be redacted, got %q", got)
	}
}

func TestRedactMessageRedactsFlagStyleSecrets(t *testing.T) {
	input := "unlock --passphrase hunter2 --api-key=abc123 --user bob"
	got := RedactMessage(input)

	if strings.Contains(got, "hunter2") || strings.Contains(got, "abc123") {
		t.Fatalf("expected flag-style secrets to be redacted, got %q", got)
	}
	if !strings.Contains(got, "--passphrase <redacted>") {
		t.Fatalf("expected --passphrase redaction, got %q", got)
	}
	if !strings.Contains(got, "--user bob") {
		t.Fatalf("expected non-secret flags to remain unchanged, got %q", got)
	}
}

func TestRedactMessageLeavesExecutionErrors(t *testing.T) {
	input := "systemctl -i reboot: exit status 1, stderr: Failed to reboot system: Access denied"
	if got := RedactMessage(input); got != input {
		t.Fatalf("expected error text unchanged, got %q", got)
	}
}
