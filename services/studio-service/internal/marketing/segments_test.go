package marketing

import (
	"strings"
	"testing"
	"time"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

func TestRecipients(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	clients := []model.Client{
		{ID: "fresh", CreatedAt: model.FormatTimestamp(now.Add(-10 * day))},
		{ID: "middle", CreatedAt: model.FormatTimestamp(now.Add(-120 * day))},
		{ID: "old", CreatedAt: model.FormatTimestamp(now.Add(-200 * day))},
		{ID: "unknown"},
	}

	ids := func(cs []model.Client) string {
		var out []string
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return strings.Join(out, ",")
	}

	if got := ids(Recipients(clients, SegmentAll, now)); got != "fresh,middle,old,unknown" {
		t.Fatalf("all: %s", got)
	}
	if got := ids(Recipients(clients, SegmentRecent, now)); got != "fresh" {
		t.Fatalf("recent: %s", got)
	}
	if got := ids(Recipients(clients, SegmentInactive, now)); got != "old,unknown" {
		t.Fatalf("inactive: %s", got)
	}
}

func TestParseSegment(t *testing.T) {
	if s, err := ParseSegment(""); err != nil || s != SegmentAll {
		t.Fatalf("expected default all, got %q (%v)", s, err)
	}
	if _, err := ParseSegment("vip"); err == nil {
		t.Fatal("expected error for unknown segment")
	}
}

func TestComposeCampaignBody(t *testing.T) {
	post := &model.Post{Title: "Spring glow", Content: "Lip blushing offer."}
	got := ComposeCampaignBody("Yaelle PMU Art", "  See you soon.  ", post)
	for _, want := range []string{"Dear Client,\n\nSee you soon.\n\n", "Spring glow\n\nLip blushing offer.", "Best regards,\nYaelle PMU Art\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}
