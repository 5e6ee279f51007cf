package main

import "testing"

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"*", []string{"*"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("NLID_TEST_KEY", "set")
	if got := envOr("NLID_TEST_KEY", "def"); got != "set" {
		t.Fatalf("got %q", got)
	}
	if got := envOr("NLID_TEST_KEY_MISSING", "def"); got != "def" {
		t.Fatalf("got %q", got)
	}
}
