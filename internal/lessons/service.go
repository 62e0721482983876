package lessons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minuteclass/minuteclass/internal/llm"
)

// Service generates micro-lessons. It makes exactly one provider call per
// Generate and keeps no state between calls.
type Service struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, now: time.Now}
}

// WithClock replaces the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type lessonOutput struct {
	Title       string   `json:"title"`
	Content     []string `json:"content"`
	Takeaway    string   `json:"takeaway"`
	ReadTime    string   `json:"readTime"`
	Inspiration string   `json:"inspiration"`
}

// Generate creates a lesson for slot in lang. When category is nil the
// rotation policy picks today's category for the slot.
func (s *Service) Generate(ctx context.Context, slot TimeSlot, category *Category, lang Language) (*Lesson, error) {
	ctx = llm.WithPurpose(ctx, "lesson")
	now := s.now()

	effective := RotateCategory(slot, now)
	if category != nil {
		effective = *category
	}

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(slot, effective, lang)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return nil, &ParseError{Content: invalid.Content, Reason: "schema mismatch", Err: err}
		}
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	out, err := decodeLesson(resp.Content)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("lesson id: %w", err)
	}

	return &Lesson{
		ID:          fmt.Sprintf("lesson-%s-%s", slot, id),
		Title:       out.Title,
		Content:     out.Content,
		Takeaway:    out.Takeaway,
		Category:    effective,
		Date:        FormatDate(now, lang),
		ReadTime:    out.ReadTime,
		Inspiration: out.Inspiration,
		Language:    lang,
		TimeSlot:    slot,
	}, nil
}

// decodeLesson validates raw against LessonSchema and decodes it. It
// either returns a complete output or a *ParseError.
func decodeLesson(raw json.RawMessage) (*lessonOutput, error) {
	if err := llm.Validate(LessonSchema, raw); err != nil {
		return nil, &ParseError{Content: raw, Reason: "schema mismatch", Err: err}
	}

	var out lessonOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ParseError{Content: raw, Reason: "malformed JSON", Err: err}
	}

	paragraphs := out.Content[:0]
	for _, p := range out.Content {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	out.Content = paragraphs

	switch {
	case strings.TrimSpace(out.Title) == "":
		return nil, &ParseError{Content: raw, Reason: "empty title"}
	case len(out.Content) == 0:
		return nil, &ParseError{Content: raw, Reason: "no paragraphs"}
	case strings.TrimSpace(out.Takeaway) == "":
		return nil, &ParseError{Content: raw, Reason: "empty takeaway"}
	}
	return &out, nil
}
