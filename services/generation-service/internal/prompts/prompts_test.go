package prompts

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	s := Studio{Name: "Yaelle PMU Art", Location: "Limassol, Cyprus"}

	system, user := s.Build(TypePost, "spring brows")
	if !strings.Contains(system, "Yaelle PMU Art, a permanent makeup studio in Limassol, Cyprus") {
		t.Fatalf("unexpected system prompt %q", system)
	}
	if !strings.Contains(user, "about: spring brows") || !strings.Contains(user, "HASHTAGS: [hashtags here]") {
		t.Fatalf("unexpected user prompt %q", user)
	}

	_, user = s.Build(TypeEmail, "summer offer")
	if !strings.Contains(user, "SUBJECT:") || !strings.Contains(user, "BODY:") {
		t.Fatalf("unexpected email prompt %q", user)
	}

	system, user = s.Build("tweet", "raw prompt")
	if system != "" || user != "raw prompt" {
		t.Fatalf("unknown type must pass through, got %q / %q", system, user)
	}
}
