package llm

import "fmt"

// DefaultSummaryTemplate is the fixed instruction prompt for the summarization
// stage. The document text is substituted for the %s placeholder verbatim.
const DefaultSummaryTemplate = `Please provide a concise summary of the following text.
Focus on the main points and key information:

%s

Summary:`

// DefaultFieldsTemplate is the fixed instruction prompt for the field
// extraction stage. It enumerates the required keys with an example shape and
// instructs the model to emit only JSON.
const DefaultFieldsTemplate = `Analyze the following text and extract the key fields as a single JSON object.
Required keys: date, title, author, recipient, main_points, summary.
Use null for any value that is not present, and an empty list for main_points when there are none.
Example shape:
{"date": "2024-03-20", "title": "Quarterly Review", "author": "J. Smith", "recipient": "Finance Team", "main_points": ["first point", "second point"], "summary": "One-sentence summary."}
Return only the JSON object without any additional text:

%s

JSON:`

// RenderPrompt substitutes the input text into a stage template.
func RenderPrompt(template, text string) string {
	return fmt.Sprintf(template, text)
}
