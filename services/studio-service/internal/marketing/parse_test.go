package marketing

import "testing"

func TestParsePost_AllSections(t *testing.T) {
	raw := "TITLE: Brows that last\nCONTENT: Wake up ready.\n\nBook your session.\nHASHTAGS: #microblading #brows"
	got := ParsePost(raw)
	if got.Title != "Brows that last" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	want := "Wake up ready.\n\nBook your session.\n\n#microblading #brows"
	if got.Body != want {
		t.Fatalf("unexpected body %q, want %q", got.Body, want)
	}
}

func TestParsePost_NoHashtagsKeepsContentVerbatim(t *testing.T) {
	raw := "TITLE: Lip blushing\nCONTENT: Soft natural colour for your lips."
	got := ParsePost(raw)
	if got.Body != "Soft natural colour for your lips." {
		t.Fatalf("expected content verbatim without append, got %q", got.Body)
	}
}

func TestParsePost_MissingContentFallsBackToRaw(t *testing.T) {
	raw := "Here is a post about lash liner without any labels."
	got := ParsePost(raw)
	if got.Title != "" || got.Body != raw {
		t.Fatalf("expected raw fallback, got %+v", got)
	}
}

func TestParsePost_TitleOnOwnLine(t *testing.T) {
	raw := "TITLE:\n  Nanoblading explained  \nCONTENT: Fine strokes."
	got := ParsePost(raw)
	if got.Title != "Nanoblading explained" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if got.Body != "Fine strokes." {
		t.Fatalf("unexpected body %q", got.Body)
	}
}

func TestParsePost_OutOfOrderSections(t *testing.T) {
	raw := "HASHTAGS: #pmu\nCONTENT: Body first.\nTITLE: Late title"
	got := ParsePost(raw)
	if got.Title != "Late title" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if got.Body != "Body first.\n\n#pmu" {
		t.Fatalf("unexpected body %q", got.Body)
	}
}

func TestParsePost_EmptyHashtagsNotAppended(t *testing.T) {
	got := ParsePost("TITLE: T\nCONTENT: C\nHASHTAGS:   ")
	if got.Body != "C" {
		t.Fatalf("unexpected body %q", got.Body)
	}
}

func TestParseEmail(t *testing.T) {
	got := ParseEmail("SUBJECT: Your brows, refreshed\nBODY: Dear friend,\n\nIt is touch-up season.")
	if got.Subject != "Your brows, refreshed" {
		t.Fatalf("unexpected subject %q", got.Subject)
	}
	if got.Body != "Dear friend,\n\nIt is touch-up season." {
		t.Fatalf("unexpected body %q", got.Body)
	}

	raw := "Just some text"
	got = ParseEmail(raw)
	if got.Subject != "" || got.Body != raw {
		t.Fatalf("expected raw fallback, got %+v", got)
	}
}

func TestParse_EmptySectionFallsBackToRaw(t *testing.T) {
	raw := "SUBJECT: Hi\nBODY:"
	email := ParseEmail(raw)
	if email.Subject != "Hi" || email.Body != raw {
		t.Fatalf("expected raw body fallback, got %+v", email)
	}

	raw = "TITLE: Brows\nCONTENT:   "
	post := ParsePost(raw)
	if post.Title != "Brows" || post.Body != raw {
		t.Fatalf("expected raw body fallback, got %+v", post)
	}
}
