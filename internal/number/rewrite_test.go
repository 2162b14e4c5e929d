package number

import (
	"strings"
	"testing"

	"github.com/dgallion1/numthm/internal/envs"
)

func mustRegistry(t *testing.T) *envs.Registry {
	t.Helper()
	reg, err := envs.NewRegistry(nil)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

var groupsScope = []int{1, 2}

const groupsPath = "crypto/groups.md"

func TestRewriteChapter_NoLabelNoTitle(t *testing.T) {
	reg := mustRegistry(t)
	labels := NewLabelTable()
	out, n, warns := RewriteChapter("{{prop}}", groupsPath, groupsScope, reg, NewCounters(), labels, true)
	if out != "**Proposition 1.2.1.**" {
		t.Errorf("expected %q, got %q", "**Proposition 1.2.1.**", out)
	}
	if n != 1 {
		t.Errorf("expected 1 occurrence, got %d", n)
	}
	if labels.Len() != 0 {
		t.Errorf("expected empty label table, got %d entries", labels.Len())
	}
	if len(warns) != 0 {
		t.Errorf("expected no warnings, got %v", warns)
	}
}

func TestRewriteChapter_LabelNoTitle(t *testing.T) {
	reg := mustRegistry(t)
	labels := NewLabelTable()
	out, _, _ := RewriteChapter("{{prop}}{prop:lagrange}", groupsPath, groupsScope, reg, NewCounters(), labels, true)
	want := "<a name=\"prop:lagrange\"></a>\n**Proposition 1.2.1.**"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	entry, ok := labels.Get("prop:lagrange")
	if !ok {
		t.Fatal("expected label to be recorded")
	}
	if entry.NumName != "Proposition 1.2.1" {
		t.Errorf("expected numbered name %q, got %q", "Proposition 1.2.1", entry.NumName)
	}
	if entry.Path != groupsPath {
		t.Errorf("expected path %q, got %q", groupsPath, entry.Path)
	}
	if entry.HasTitle {
		t.Error("expected no title on entry")
	}
}

func TestRewriteChapter_TitleNoLabel(t *testing.T) {
	reg := mustRegistry(t)
	labels := NewLabelTable()
	out, _, _ := RewriteChapter("{{prop}}[Lagrange Theorem]", groupsPath, groupsScope, reg, NewCounters(), labels, true)
	want := "**Proposition 1.2.1 (Lagrange Theorem).**"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if labels.Len() != 0 {
		t.Errorf("expected empty label table, got %d entries", labels.Len())
	}
}

func TestRewriteChapter_LabelAndTitle(t *testing.T) {
	reg := mustRegistry(t)
	labels := NewLabelTable()
	out, _, _ := RewriteChapter("{{prop}}{prop:lagrange}[Lagrange Theorem]", groupsPath, groupsScope, reg, NewCounters(), labels, true)
	want := "<a name=\"prop:lagrange\"></a>\n**Proposition 1.2.1 (Lagrange Theorem).**"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	entry, _ := labels.Get("prop:lagrange")
	if !entry.HasTitle || entry.Title != "Lagrange Theorem" {
		t.Errorf("expected title on entry, got %+v", entry)
	}
}

func TestRewriteChapter_DuplicateLabelFirstWins(t *testing.T) {
	reg := mustRegistry(t)
	labels := NewLabelTable()
	ctrs := NewCounters()
	input := "{{prop}}{prop:lagrange}[Lagrange Theorem] {{thm}}{prop:lagrange}[Another Lagrange Theorem]"
	out, _, warns := RewriteChapter(input, groupsPath, groupsScope, reg, ctrs, labels, true)

	want := "<a name=\"prop:lagrange\"></a>\n**Proposition 1.2.1 (Lagrange Theorem).** " +
		"<a name=\"prop:lagrange\"></a>\n**Theorem 1.2.1 (Another Lagrange Theorem).**"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if len(warns) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warns))
	}
	if !strings.Contains(warns[0].Message, "prop:lagrange") {
		t.Errorf("warning should name the label, got %q", warns[0].Message)
	}
	if labels.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", labels.Len())
	}
	entry, _ := labels.Get("prop:lagrange")
	if entry.NumName != "Proposition 1.2.1" {
		t.Errorf("first definition should win, got %q", entry.NumName)
	}
}

func TestRewriteChapter_InterleavedKeysCountIndependently(t *testing.T) {
	reg := mustRegistry(t)
	ctrs := NewCounters()
	out, n, _ := RewriteChapter("{{thm}} {{lem}} {{lem}} {{thm}} {{lem}}", "ch.md", nil, reg, ctrs, NewLabelTable(), false)
	want := "**Theorem 1.** **Lemma 1.** **Lemma 2.** **Theorem 2.** **Lemma 3.**"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if n != 5 {
		t.Errorf("expected 5 occurrences, got %d", n)
	}
}

func TestRewriteChapter_UnrecognizedKeyPassesThrough(t *testing.T) {
	reg := mustRegistry(t)
	input := "{{mystery}}{lbl}[Title] and {{thm}}"
	out, n, warns := RewriteChapter(input, "ch.md", nil, reg, NewCounters(), NewLabelTable(), false)
	want := "{{mystery}}{lbl}[Title] and **Theorem 1.**"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if n != 1 {
		t.Errorf("expected only the recognized marker numbered, got %d", n)
	}
	if len(warns) != 0 {
		t.Errorf("unrecognized keys are not warnings, got %v", warns)
	}
}

func TestRewriteChapter_ItalicEmphasis(t *testing.T) {
	reg := mustRegistry(t)
	out, _, _ := RewriteChapter("{{rem}}", "ch.md", nil, reg, NewCounters(), NewLabelTable(), false)
	if out != "*Remark 1.*" {
		t.Errorf("expected %q, got %q", "*Remark 1.*", out)
	}
}

func TestRewriteChapter_PrefixDisabledIgnoresScope(t *testing.T) {
	reg := mustRegistry(t)
	out, _, _ := RewriteChapter("{{thm}}", "ch.md", []int{3, 4}, reg, NewCounters(), NewLabelTable(), false)
	if out != "**Theorem 1.**" {
		t.Errorf("expected bare number, got %q", out)
	}
}

func TestCounters_Next(t *testing.T) {
	c := NewCounters()
	for i := 1; i <= 3; i++ {
		if n := c.Next("thm"); n != i {
			t.Errorf("expected thm counter %d, got %d", i, n)
		}
	}
	if n := c.Next("lem"); n != 1 {
		t.Errorf("expected independent lem counter 1, got %d", n)
	}
}

func TestPrefix(t *testing.T) {
	cases := []struct {
		scope []int
		want  string
	}{
		{nil, ""},
		{[]int{1}, "1."},
		{[]int{1, 2}, "1.2."},
		{[]int{10, 2, 7}, "10.2.7."},
	}
	for _, tc := range cases {
		if got := Prefix(tc.scope); got != tc.want {
			t.Errorf("Prefix(%v): expected %q, got %q", tc.scope, tc.want, got)
		}
	}
}
