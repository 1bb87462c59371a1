package cli

import "testing"

func TestFmt(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	path := c.WriteFile("doc.json", `{"b":1,"a":2}`)

	stdout := c.MustRun("fmt", "--indent", "2", path)
	AssertContains(t, stdout, path+": rewritten")

	want := "{\n  \"a\": 2,\n  \"b\": 1\n}"
	if got := c.ReadFile("doc.json"); got != want {
		t.Errorf("rewritten file mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestFmtSkipsBadFiles(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	good := c.WriteFile("good.json", `{"a":1}`)
	bad := c.WriteFile("bad.json", `{"a":`)

	stdout, stderr, code := c.Run("fmt", "--indent", "2", good, bad)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}

	// The good sibling is still rewritten.
	AssertContains(t, stdout, good+": rewritten")
	AssertContains(t, stderr, "could not load "+bad)

	if got := c.ReadFile("bad.json"); got != `{"a":` {
		t.Errorf("bad file should be untouched, got %q", got)
	}
}

func TestFmtPoolStrategy(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	one := c.WriteFile("one.json", `{"a":1}`)
	two := c.WriteFile("two.json", `[1,2]`)

	stdout := c.MustRun("fmt", "--strategy", "pool", "--workers", "2", "--indent", "0", one, two)
	AssertContains(t, stdout, one+": rewritten")
	AssertContains(t, stdout, two+": rewritten")

	if got := c.ReadFile("one.json"); got != `{"a":1}` {
		t.Errorf("expected compact rewrite, got %q", got)
	}
}

func TestFmtUnknownStrategy(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	path := c.WriteFile("doc.json", `{}`)

	stderr := c.MustFail("fmt", "--strategy", "bogus", path)
	AssertContains(t, stderr, "unknown strategy: bogus")
}
