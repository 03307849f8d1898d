package hook

import "testing"

func guardEvent(tool, path string) *Event {
	ev := &Event{ToolName: tool}
	if path != "" {
		ev.ToolInput = map[string]any{"file_path": path}
	}
	return ev
}

func TestGuard_BlocksProtectedPrefix(t *testing.T) {
	g := NewGuard(Config{BlockedPrefixes: []string{"/home/alice/prod"}})

	cases := []struct {
		name  string
		event *Event
		want  string
	}{
		{"edit inside prefix", guardEvent("Edit", "/home/alice/prod/app.go"), "block"},
		{"write at prefix root", guardEvent("Write", "/home/alice/prod"), "block"},
		{"multiedit nested", guardEvent("MultiEdit", "/home/alice/prod/deep/dir/f.go"), "block"},
		{"edit outside prefix", guardEvent("Edit", "/home/alice/dev/app.go"), "allow"},
		{"sibling with shared prefix string", guardEvent("Edit", "/home/alice/prod-backup/f.go"), "allow"},
		{"read inside prefix", guardEvent("Read", "/home/alice/prod/app.go"), "allow"},
		{"bash anywhere", guardEvent("Bash", ""), "allow"},
		{"edit without path", guardEvent("Edit", ""), "allow"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Check(tc.event)
			if got.Decision != tc.want {
				t.Errorf("Check() = %s (%s), want %s", got.Decision, got.Reason, tc.want)
			}
		})
	}
}

func TestGuard_NormalizesPaths(t *testing.T) {
	g := NewGuard(Config{BlockedPrefixes: []string{"/home/alice/prod/"}})

	got := g.Check(guardEvent("Edit", "/home/alice/dev/../prod/app.go"))
	if got.Decision != "block" {
		t.Errorf("Check() = %s, want block for traversal into protected dir", got.Decision)
	}
}

func TestGuard_ResolvesRelativePathsAgainstCWD(t *testing.T) {
	g := NewGuard(Config{BlockedPrefixes: []string{"/home/alice/prod"}})

	cases := []struct {
		name string
		cwd  string
		path string
		want string
	}{
		{"relative path inside prefix", "/home/alice/prod", "app.go", "block"},
		{"relative path into prefix", "/home/alice", "prod/app.go", "block"},
		{"relative traversal into prefix", "/home/alice/dev", "../prod/app.go", "block"},
		{"relative path outside prefix", "/home/alice/dev", "app.go", "allow"},
		{"relative traversal out of prefix", "/home/alice/prod", "../dev/app.go", "allow"},
		{"relative path without cwd", "", "app.go", "allow"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := guardEvent("Edit", tc.path)
			ev.CWD = tc.cwd
			got := g.Check(ev)
			if got.Decision != tc.want {
				t.Errorf("Check() = %s (%s), want %s", got.Decision, got.Reason, tc.want)
			}
		})
	}
}

func TestGuard_ResolvesRelativePrefixAgainstCWD(t *testing.T) {
	g := NewGuard(Config{BlockedPrefixes: []string{"prod"}})

	ev := guardEvent("Edit", "/home/alice/prod/app.go")
	ev.CWD = "/home/alice"
	if got := g.Check(ev); got.Decision != "block" {
		t.Errorf("Check() = %s, want block for relative prefix under cwd", got.Decision)
	}

	ev = guardEvent("Edit", "/home/bob/prod/app.go")
	ev.CWD = "/home/alice"
	if got := g.Check(ev); got.Decision != "allow" {
		t.Errorf("Check() = %s, want allow outside resolved prefix", got.Decision)
	}
}

func TestGuard_NoPrefixesAllowsEverything(t *testing.T) {
	g := NewGuard(Config{})
	if got := g.Check(guardEvent("Write", "/etc/passwd")); got.Decision != "allow" {
		t.Errorf("Check() = %s, want allow with no configured prefixes", got.Decision)
	}
}

func TestGuard_NotebookPath(t *testing.T) {
	g := NewGuard(Config{BlockedPrefixes: []string{"/home/alice/prod"}})
	ev := &Event{
		ToolName:  "NotebookEdit",
		ToolInput: map[string]any{"notebook_path": "/home/alice/prod/nb.ipynb"},
	}
	if got := g.Check(ev); got.Decision != "block" {
		t.Errorf("Check() = %s, want block for notebook edit", got.Decision)
	}
}
