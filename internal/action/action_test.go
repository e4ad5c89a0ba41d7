package action

import "testing"

func TestAllIsRegistryOrder(t *testing.T) {
	got := All()
	want := []Action{Lock, Logout, Poweroff, Reboot, Suspend, Hibernate}
	if len(got) != Count {
		t.Fatalf("expected %d actions, got %d", Count, len(got))
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("action[%d] mismatch: got=%v want=%v", idx, got[idx], want[idx])
		}
	}
}

func TestEveryActionHasMetadataAndDefaults(t *testing.T) {
	for _, a := range All() {
		if a.Name() == "" || a.Title() == "" || a.Description() == "" || a.Icon() == "" {
			t.Fatalf("action %d is missing static metadata", a)
		}
		if len(a.DefaultCommand()) == 0 {
			t.Fatalf("action %s has no default command", a)
		}
	}
}

func TestDefaultConfirmFlags(t *testing.T) {
	want := map[Action]bool{
		Lock:      false,
		Logout:    true,
		Poweroff:  true,
		Reboot:    true,
		Suspend:   false,
		Hibernate: false,
	}
	for a, confirm := range want {
		if a.DefaultConfirm() != confirm {
			t.Fatalf("%s confirm: got=%v want=%v", a, a.DefaultConfirm(), confirm)
		}
	}
}

func TestDefaultCommandReturnsCopy(t *testing.T) {
	cmd := Poweroff.DefaultCommand()
	cmd[0] = "echo"
	if Poweroff.DefaultCommand()[0] != "systemctl" {
		t.Fatalf("expected default command to be immutable")
	}
}

func TestParseRoundTripsNames(t *testing.T) {
	for _, a := range All() {
		got, ok := Parse(a.Name())
		if !ok || got != a {
			t.Fatalf("Parse(%q) = %v, %v", a.Name(), got, ok)
		}
	}
	if got, ok := Parse("  PowerOff "); !ok || got != Poweroff {
		t.Fatalf("expected case-insensitive parse, got %v %v", got, ok)
	}
	if _, ok := Parse("shutdown"); ok {
		t.Fatalf("expected unknown name to fail")
	}
}

func TestInvalidActionHasNoMetadata(t *testing.T) {
	bogus := Action(42)
	if bogus.Valid() {
		t.Fatalf("expected action 42 to be invalid")
	}
	if bogus.String() != "unknown" || bogus.Title() != "" {
		t.Fatalf("unexpected metadata for invalid action")
	}
}
