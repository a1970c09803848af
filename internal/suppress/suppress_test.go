package suppress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "fillmore-labs.com/syncguard/internal/suppress"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/tree"
)

const src = `class A {
  //noinspection SynchronizeOnNonFinalField
  Object lock = new Object();

  @SuppressWarnings({"unchecked", "NotifyNotNotifyAll"})
  void signal() {
    notify();
  }

  @java.lang.SuppressWarnings("all")
  void everything() {
    notify();
  }

  void statement() {
    // unrelated
    //noinspection WaitNotInLoop, EmptySynchronizedStatement
    synchronized (lock) { }
    synchronized (lock) { }
  }
}
`

func TestSuppressed(t *testing.T) {
	t.Parallel()

	tr := testsource.File(t, src)
	x := New(tr)

	tests := []struct {
		name   string
		anchor tree.Cursor
		rule   string
		want   bool
	}{
		{"comment on field", testsource.Find(t, tr, tree.Ident, "lock"), "SynchronizeOnNonFinalField", true},
		{"other rule on field", testsource.Find(t, tr, tree.Ident, "lock"), "NotifyNotNotifyAll", false},
		{"annotation list", testsource.Nth(t, tr, tree.Ident, "notify", 0), "NotifyNotNotifyAll", true},
		{"annotation list other", testsource.Nth(t, tr, tree.Ident, "notify", 0), "WaitNotInLoop", false},
		{"qualified all", testsource.Nth(t, tr, tree.Ident, "notify", 1), "WaitNotInLoop", true},
		{"statement", testsource.Nth(t, tr, tree.Synchronized, "synchronized (lock) { }", 0), "EmptySynchronizedStatement", true},
		{"next statement", testsource.Nth(t, tr, tree.Synchronized, "synchronized (lock) { }", 1), "EmptySynchronizedStatement", false},
	}

	for _, tt := range tests {
		if got := x.Suppressed(tt.rule, tt.anchor); got != tt.want {
			t.Errorf("%s: Got %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestForeignTree(t *testing.T) {
	t.Parallel()

	tr := testsource.File(t, src)
	other := testsource.File(t, src)

	x := New(tr)

	assert.False(t, x.Suppressed("SynchronizeOnNonFinalField", testsource.Find(t, other, tree.Ident, "lock")))
}

func TestParseDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		rules []string
		ok    bool
	}{
		{"//noinspection A", []string{"A"}, true},
		{"// noinspection A,B", []string{"A", "B"}, true},
		{"//noinspection A, B ", []string{"A", "B"}, true},
		{"//noinspection", nil, false},
		{"// nothing to see", nil, false},
		{"/* noinspection A */", nil, false},
	}

	for _, tt := range tests {
		rules, ok := ParseDirective(tt.text)
		if ok != tt.ok {
			t.Errorf("%q: Got ok %t, want %t", tt.text, ok, tt.ok)
		}

		assert.Equal(t, tt.rules, rules, tt.text)
	}
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"header", "// Code generated by protoc. DO NOT EDIT.\npackage p;\nclass A { }\n", true},
		{"block header", "/*\n * Generated by the compiler\n */\nclass A { }\n", true},
		{"annotation", "@javax.annotation.processing.Generated(\"x\")\nclass A { }\n", true},
		{"simple annotation", "import javax.annotation.Generated;\n@Generated(\"x\")\nclass A { }\n", true},
		{"late comment", "package p;\n// Code generated by hand. DO NOT EDIT.\nclass A { }\n", false},
		{"hand-written", "// Copyright\nclass A { }\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsGenerated(testsource.File(t, tt.src)); got != tt.want {
				t.Errorf("Got %t, want %t", got, tt.want)
			}
		})
	}
}
