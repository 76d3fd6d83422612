// Package learning models learning-path activities and generates them from
// a topic's indexed sections.
package learning

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"salescoach-ai/internal/storage"
)

// ActivityType discriminates the activity union.
type ActivityType string

// Activity types.
const (
	TypeSlide      ActivityType = "slide"
	TypeQuiz       ActivityType = "quiz"
	TypeFlashcard  ActivityType = "flashcard"
	TypeFillBlanks ActivityType = "fill_blanks"
	TypeMatching   ActivityType = "matching"
	TypeEmbed      ActivityType = "embed"
)

// BlankMarker marks a gap in fill-in-the-blanks text.
const BlankMarker = "___"

var (
	// ErrUnknownType is returned for an activity type outside the closed set.
	ErrUnknownType = errors.New("unknown activity type")
	// ErrInvalidActivity is returned when an activity fails validation.
	ErrInvalidActivity = errors.New("invalid activity")
)

// Config is the type-specific part of an activity. The set of
// implementations is closed: SlideConfig, QuizConfig, FlashcardConfig,
// FillBlanksConfig, MatchingConfig and EmbedConfig.
type Config interface {
	Type() ActivityType
	Validate() error
	isConfig()
}

// SlideConfig is a reading slide written in Markdown.
type SlideConfig struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"` // rendered from Markdown
}

// QuizConfig is a multiple-choice quiz.
type QuizConfig struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// FlashcardConfig is a deck of two-sided cards.
type FlashcardConfig struct {
	Cards []Flashcard `json:"cards"`
}

// Flashcard is one card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FillBlanksConfig is text with gaps marked by BlankMarker, one answer per gap.
type FillBlanksConfig struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// MatchingConfig pairs terms with definitions.
type MatchingConfig struct {
	Pairs []MatchPair `json:"pairs"`
}

// MatchPair is one term and its match.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// EmbedConfig embeds external media such as a video.
type EmbedConfig struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (SlideConfig) Type() ActivityType      { return TypeSlide }
func (QuizConfig) Type() ActivityType       { return TypeQuiz }
func (FlashcardConfig) Type() ActivityType  { return TypeFlashcard }
func (FillBlanksConfig) Type() ActivityType { return TypeFillBlanks }
func (MatchingConfig) Type() ActivityType   { return TypeMatching }
func (EmbedConfig) Type() ActivityType      { return TypeEmbed }

func (SlideConfig) isConfig()      {}
func (QuizConfig) isConfig()       {}
func (FlashcardConfig) isConfig()  {}
func (FillBlanksConfig) isConfig() {}
func (MatchingConfig) isConfig()   {}
func (EmbedConfig) isConfig()      {}

// Validate checks the slide has content.
func (c SlideConfig) Validate() error {
	if strings.TrimSpace(c.Markdown) == "" {
		return invalid("slide markdown is empty")
	}
	return nil
}

// Validate checks every question has a prompt, at least two options and a
// correct index within range.
func (c QuizConfig) Validate() error {
	if len(c.Questions) == 0 {
		return invalid("quiz has no questions")
	}
	for i, q := range c.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return invalid("question %d is empty", i+1)
		}
		if len(q.Options) < 2 {
			return invalid("question %d needs at least 2 options", i+1)
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return invalid("question %d option %d is empty", i+1, j+1)
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return invalid("question %d correct_index %d out of range", i+1, q.CorrectIndex)
		}
	}
	return nil
}

// Validate checks every card has both sides.
func (c FlashcardConfig) Validate() error {
	if len(c.Cards) == 0 {
		return invalid("flashcard deck is empty")
	}
	for i, card := range c.Cards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			return invalid("card %d is missing a side", i+1)
		}
	}
	return nil
}

// Validate checks there is one non-empty answer per blank.
func (c FillBlanksConfig) Validate() error {
	blanks := strings.Count(c.Text, BlankMarker)
	if blanks == 0 {
		return invalid("text has no %s blanks", BlankMarker)
	}
	if blanks != len(c.Answers) {
		return invalid("text has %d blanks but %d answers", blanks, len(c.Answers))
	}
	for i, a := range c.Answers {
		if strings.TrimSpace(a) == "" {
			return invalid("answer %d is empty", i+1)
		}
	}
	return nil
}

// Validate checks there are at least two complete pairs with distinct left sides.
func (c MatchingConfig) Validate() error {
	if len(c.Pairs) < 2 {
		return invalid("matching needs at least 2 pairs")
	}
	seen := make(map[string]struct{}, len(c.Pairs))
	for i, p := range c.Pairs {
		left := strings.TrimSpace(p.Left)
		if left == "" || strings.TrimSpace(p.Right) == "" {
			return invalid("pair %d is incomplete", i+1)
		}
		if _, dup := seen[strings.ToLower(left)]; dup {
			return invalid("pair %d repeats %q", i+1, left)
		}
		seen[strings.ToLower(left)] = struct{}{}
	}
	return nil
}

// Validate checks the URL is absolute http or https.
func (c EmbedConfig) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalid("embed url %q must be an absolute http(s) URL", c.URL)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidActivity, fmt.Sprintf(format, args...))
}

// Activity is one step of a learning path.
type Activity struct {
	ID       string
	Position int
	Title    string
	Config   Config
}

// Type returns the activity's discriminator, or "" without a config.
func (a Activity) Type() ActivityType {
	if a.Config == nil {
		return ""
	}
	return a.Config.Type()
}

// Validate checks the title and the type-specific config.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is empty")
	}
	if a.Config == nil {
		return invalid("config is missing")
	}
	return a.Config.Validate()
}

type activityJSON struct {
	ID       string          `json:"id,omitempty"`
	Position int             `json:"position"`
	Title    string          `json:"title"`
	Type     ActivityType    `json:"type"`
	Config   json.RawMessage `json:"config"`
}

// MarshalJSON encodes the activity with "type" as discriminator.
func (a Activity) MarshalJSON() ([]byte, error) {
	if a.Config == nil {
		return nil, invalid("config is missing")
	}
	config, err := json.Marshal(a.Config)
	if err != nil {
		return nil, err
	}
	return json.Marshal(activityJSON{
		ID:       a.ID,
		Position: a.Position,
		Title:    a.Title,
		Type:     a.Config.Type(),
		Config:   config,
	})
}

// UnmarshalJSON decodes the config variant selected by "type".
func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw activityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	config, err := DecodeConfig(raw.Type, raw.Config)
	if err != nil {
		return err
	}
	*a = Activity{ID: raw.ID, Position: raw.Position, Title: raw.Title, Config: config}
	return nil
}

// DecodeConfig decodes a config document of the given type.
func DecodeConfig(t ActivityType, data []byte) (Config, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, invalid("config is missing")
	}
	switch t {
	case TypeSlide:
		return decodeAs[SlideConfig](data)
	case TypeQuiz:
		return decodeAs[QuizConfig](data)
	case TypeFlashcard:
		return decodeAs[FlashcardConfig](data)
	case TypeFillBlanks:
		return decodeAs[FillBlanksConfig](data)
	case TypeMatching:
		return decodeAs[MatchingConfig](data)
	case TypeEmbed:
		return decodeAs[EmbedConfig](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

func decodeAs[C Config](data []byte) (Config, error) {
	var c C
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: config: %w", ErrInvalidActivity, err)
	}
	return c, nil
}

// ToRecord converts the activity to its stored form.
func (a Activity) ToRecord(pathID string) (storage.ActivityRecord, error) {
	if a.Config == nil {
		return storage.ActivityRecord{}, invalid("config is missing")
	}
	config, err := json.Marshal(a.Config)
	if err != nil {
		return storage.ActivityRecord{}, fmt.Errorf("failed to encode config: %w", err)
	}
	return storage.ActivityRecord{
		ID:       a.ID,
		PathID:   pathID,
		Position: a.Position,
		Title:    a.Title,
		Type:     string(a.Config.Type()),
		Config:   string(config),
	}, nil
}

// FromRecord converts a stored activity back to its typed form.
func FromRecord(rec storage.ActivityRecord) (Activity, error) {
	config, err := DecodeConfig(ActivityType(rec.Type), []byte(rec.Config))
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s: %w", rec.ID, err)
	}
	return Activity{ID: rec.ID, Position: rec.Position, Title: rec.Title, Config: config}, nil
}
