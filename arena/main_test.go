package main

import "testing"

func TestWinnerFromStatus(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"black_won", "black"},
		{"white_won", "white"},
		{"draw", "draw"},
	}
	for _, tc := range cases {
		got, err := winnerFromStatus(tc.status)
		if err != nil || got != tc.want {
			t.Fatalf("expected %q for %q, got %q (%v)", tc.want, tc.status, got, err)
		}
	}
	if _, err := winnerFromStatus("not_started"); err == nil {
		t.Fatalf("expected an error for a status that is not a result")
	}
}

func TestLoadArenaConfigCleansBackends(t *testing.T) {
	t.Setenv("ARENA_BACKENDS", " http://one:8080/, ,http://two:9090 ")
	cfg := loadArenaConfig()
	if len(cfg.backends) != 2 {
		t.Fatalf("expected two backends, got %v", cfg.backends)
	}
	if cfg.backends[0] != "http://one:8080" || cfg.backends[1] != "http://two:9090" {
		t.Fatalf("expected trimmed backends, got %v", cfg.backends)
	}
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("ARENA_TEST_FLAG", "yes")
	if !getenvBool("ARENA_TEST_FLAG", false) {
		t.Fatalf("expected yes to read as true")
	}
	t.Setenv("ARENA_TEST_FLAG", "off")
	if getenvBool("ARENA_TEST_FLAG", true) {
		t.Fatalf("expected off to read as false")
	}
	t.Setenv("ARENA_TEST_FLAG", "maybe")
	if !getenvBool("ARENA_TEST_FLAG", true) {
		t.Fatalf("expected an unparsable value to fall back")
	}
}
