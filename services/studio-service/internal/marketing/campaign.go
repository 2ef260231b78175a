package marketing

import (
	"strings"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

// ComposeCampaignBody renders the plain text campaign mail: greeting, body, the
// optional attached post and the studio signature.
func ComposeCampaignBody(brand, body string, attached *model.Post) string {
	var b strings.Builder
	b.WriteString("Dear Client,\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n\n")
	if attached != nil {
		b.WriteString("---\n")
		b.WriteString(attached.Title)
		b.WriteString("\n\n")
		b.WriteString(attached.Content)
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Best regards,\n")
	b.WriteString(brand)
	b.WriteString("\n")
	return b.String()
}
