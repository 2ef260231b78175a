// Package prompts builds the LLM prompts for each kind of marketing content.
package prompts

import "fmt"

const (
	TypePost  = "post"
	TypeEmail = "email"
)

const postSystem = `You are a marketing expert for %[1]s, a permanent makeup studio in %[2]s.
You specialize in microblading, nanoblading, lip blushing, lash liner, and brow lamination.
Create engaging, professional social media content that:
- Highlights the artistry and expertise of permanent makeup
- Uses a warm, welcoming tone
- Includes relevant hashtags
- Is concise and impactful
Do not use emojis excessively - keep it elegant and professional.`

const postUser = `Create a social media post about: %s

Include:
1. A catchy title (one line)
2. Engaging content (2-3 paragraphs)
3. A call to action
4. 5-7 relevant hashtags

Format the response as:
TITLE: [title here]
CONTENT: [content here]
HASHTAGS: [hashtags here]`

const emailSystem = `You are a marketing expert for %[1]s, a permanent makeup studio in %[2]s.
Create professional email content that is warm, personal, and persuasive.
Keep the tone elegant and welcoming.`

const emailUser = `Write a marketing email about: %s

Include:
1. A compelling subject line
2. Email body that's personal and engaging
3. A clear call to action

Format the response as:
SUBJECT: [subject line here]
BODY: [email body here]`

// Studio names the business the prompts speak for.
type Studio struct {
	Name     string
	Location string
}

// Build returns the system and user prompt for kind. Unknown kinds pass the
// prompt through unchanged with no system prompt.
func (s Studio) Build(kind, prompt string) (system, user string) {
	switch kind {
	case TypePost:
		return fmt.Sprintf(postSystem, s.Name, s.Location), fmt.Sprintf(postUser, prompt)
	case TypeEmail:
		return fmt.Sprintf(emailSystem, s.Name, s.Location), fmt.Sprintf(emailUser, prompt)
	default:
		return "", prompt
	}
}
