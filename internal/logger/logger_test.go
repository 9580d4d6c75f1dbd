package logger

import "testing"

func TestBuild(t *testing.T) {
	for _, env := range []string{"production", "development", "test", ""} {
		if build(env) == nil {
			t.Errorf("expected a logger for env %q", env)
		}
	}
	if build("test").Core().Enabled(0) {
		t.Error("expected the test logger to discard entries")
	}
}

func TestGetInitializes(t *testing.T) {
	if Get() == nil {
		t.Fatal("expected a logger")
	}
}
