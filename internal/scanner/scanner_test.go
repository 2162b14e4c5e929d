package scanner

import "testing"

func TestEnvMarkers_KeyOnly(t *testing.T) {
	matches := EnvMarkers("before {{thm}} after")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Kind != KindEnv {
		t.Errorf("expected KindEnv, got %v", m.Kind)
	}
	if m.Key != "thm" {
		t.Errorf("expected key %q, got %q", "thm", m.Key)
	}
	if m.HasLabel || m.HasTitle {
		t.Errorf("expected no label/title, got label=%v title=%v", m.HasLabel, m.HasTitle)
	}
	if got := "before {{thm}} after"[m.Start:m.End]; got != "{{thm}}" {
		t.Errorf("expected span %q, got %q", "{{thm}}", got)
	}
}

func TestEnvMarkers_LabelAndTitle(t *testing.T) {
	matches := EnvMarkers("{{thm}}{thm:clt}[Central Limit Theorem]")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if !m.HasLabel || m.Label != "thm:clt" {
		t.Errorf("expected label %q, got %q (present=%v)", "thm:clt", m.Label, m.HasLabel)
	}
	if !m.HasTitle || m.Title != "Central Limit Theorem" {
		t.Errorf("expected title %q, got %q (present=%v)", "Central Limit Theorem", m.Title, m.HasTitle)
	}
}

func TestEnvMarkers_LabelOnly(t *testing.T) {
	matches := EnvMarkers("{{lem}}{lem:zorn}")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if !matches[0].HasLabel || matches[0].Label != "lem:zorn" {
		t.Errorf("expected label lem:zorn, got %+v", matches[0])
	}
	if matches[0].HasTitle {
		t.Error("expected no title")
	}
}

func TestEnvMarkers_TitleOnly(t *testing.T) {
	matches := EnvMarkers("{{prop}}[Lagrange]")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].HasLabel {
		t.Error("expected no label")
	}
	if !matches[0].HasTitle || matches[0].Title != "Lagrange" {
		t.Errorf("expected title Lagrange, got %+v", matches[0])
	}
}

func TestEnvMarkers_LeftToRightOrder(t *testing.T) {
	matches := EnvMarkers("{{thm}} middle {{lem}}{l} end {{def}}[d]")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	wantKeys := []string{"thm", "lem", "def"}
	for i, want := range wantKeys {
		if matches[i].Key != want {
			t.Errorf("match %d: expected key %q, got %q", i, want, matches[i].Key)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Start < matches[i-1].End {
			t.Errorf("matches %d and %d overlap", i-1, i)
		}
	}
}

func TestEnvMarkers_LabelStopsAtNewline(t *testing.T) {
	// A brace on a later line must not be pulled into the label.
	matches := EnvMarkers("{{thm}}{unclosed\n}")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].HasLabel {
		t.Errorf("expected no label for unterminated brace, got %q", matches[0].Label)
	}
}

func TestEnvMarkers_DoesNotMatchRefs(t *testing.T) {
	if matches := EnvMarkers("{{ref: thm:a}} {{tref: thm:a}}"); len(matches) != 0 {
		t.Errorf("expected env scan to skip references, got %d matches", len(matches))
	}
}

func TestRefMarkers_Basic(t *testing.T) {
	matches := RefMarkers("see {{ref: thm:clt}} and {{tref: lem:zorn}}")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Key != "ref" || matches[0].Label != "thm:clt" {
		t.Errorf("unexpected first match %+v", matches[0])
	}
	if matches[1].Key != "tref" || matches[1].Label != "lem:zorn" {
		t.Errorf("unexpected second match %+v", matches[1])
	}
	for _, m := range matches {
		if m.Kind != KindRef {
			t.Errorf("expected KindRef, got %v", m.Kind)
		}
	}
}

func TestRefMarkers_RequiresSingleSpace(t *testing.T) {
	if matches := RefMarkers("{{ref:thm:a}}"); len(matches) != 0 {
		t.Errorf("expected no match without space, got %d", len(matches))
	}
	if matches := RefMarkers("{{ref:  thm:a}}"); len(matches) != 0 {
		t.Errorf("expected no match with double space, got %d", len(matches))
	}
}

func TestRefMarkers_IgnoresEnvMarkers(t *testing.T) {
	if matches := RefMarkers("{{thm}}{thm:a}[T]"); len(matches) != 0 {
		t.Errorf("expected ref scan to skip definitions, got %d matches", len(matches))
	}
}
