package main

import "testing"

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	want := map[string]bool{"read": false, "stats": false, "toc": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	for _, flag := range []string{"config", "wpm", "words-per-slide", "algorithm", "resume", "log-level"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag %q", flag)
		}
	}
}
