package lessons

import "github.com/minuteclass/minuteclass/internal/llm"

// LessonSchema defines the JSON schema for micro-lesson generation.
var LessonSchema = &llm.Schema{
	Name:        "micro-lesson",
	Description: "A one-minute micro-lesson with paragraphs, a core takeaway and its inspiration",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short, compelling title (3-8 words)",
			},
			"content": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 concise paragraphs, in reading order",
			},
			"takeaway": map[string]any{
				"type":        "string",
				"description": "One punchy sentence the reader should remember",
			},
			"readTime": map[string]any{
				"type":        "string",
				"description": "Estimated read time, e.g. \"1 min\"",
			},
			"inspiration": map[string]any{
				"type":        "string",
				"description": "The specific author or philosophy the lesson draws on",
			},
		},
		"required":             []any{"title", "content", "takeaway", "readTime", "inspiration"},
		"additionalProperties": false,
	},
}
