package feedback_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salescoach-ai/internal/feedback"
	"salescoach-ai/internal/feedback/mocks"
	"salescoach-ai/internal/llm"
	llmmocks "salescoach-ai/internal/llm/mocks"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/vectorstore"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const transcript = "Rep: What made you look at new tools this quarter?\nBuyer: Our renewal is up and pricing doubled."

const modelFeedback = `{
  "scores": [
    {"criterion": "Closing", "score": 5, "comment": "No next step agreed"},
    {"criterion": "discovery", "score": 8, "comment": "Good opening question"},
    {"criterion": "charisma", "score": 10},
    {"criterion": "objection_handling", "score": 12},
    {"criterion": "discovery", "score": 1}
  ],
  "strengths": ["Open question first", "  "],
  "improvements": ["Confirm a next meeting"],
  "summary": "  Solid discovery, weak close. "
}`

func TestEvaluator_Evaluate(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := llmmocks.NewMockCompleter(ctrl)
	search := mocks.NewMockSectionSearcher(ctrl)
	e := feedback.NewEvaluator(completer, search)

	search.EXPECT().SearchSections(gomock.Any(), "Renewals Price increase at renewal", "t1", gomock.Any()).
		Return([]vectorstore.SearchResult{{Content: "Annual plans lock pricing for 12 months."}}, nil)
	completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
			assert.True(t, params.JSON)
			for _, c := range feedback.Rubric {
				assert.Contains(t, messages[0].Content, string(c))
			}
			user := messages[1].Content
			assert.Contains(t, user, "Scenario: Price increase at renewal")
			assert.Contains(t, user, "SECTION: Annual plans lock pricing for 12 months.")
			assert.True(t, strings.HasSuffix(strings.TrimSpace(user), "pricing doubled."))
			return modelFeedback, nil
		})

	result, err := e.Evaluate(context.Background(), feedback.Request{
		TopicID:    "t1",
		TopicTitle: "Renewals",
		Scenario:   "Price increase at renewal",
		Transcript: transcript,
	})
	require.NoError(t, err)

	assert.Equal(t, []feedback.CriterionScore{
		{Criterion: feedback.Discovery, Score: 8, Comment: "Good opening question"},
		{Criterion: feedback.ObjectionHandling, Score: 10},
		{Criterion: feedback.Closing, Score: 5, Comment: "No next step agreed"},
	}, result.Scores)
	// (0.25*8 + 0.25*10 + 0.15*5) / 0.65 = 8.08
	assert.Equal(t, 81, result.Readiness)
	assert.Equal(t, feedback.LevelReady, result.Level)
	assert.Equal(t, []string{"Open question first"}, result.Strengths)
	assert.Equal(t, []string{"Confirm a next meeting"}, result.Improvements)
	assert.Equal(t, "Solid discovery, weak close.", result.Summary)
}

func TestEvaluator_Evaluate_WithoutReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := llmmocks.NewMockCompleter(ctrl)
	e := feedback.NewEvaluator(completer, nil)

	completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, _ llm.ChatParams) (string, error) {
			assert.NotContains(t, messages[1].Content, "Reference sections")
			return "```json\n{\"scores\": []}\n```", nil
		})

	result, err := e.Evaluate(context.Background(), feedback.Request{TopicID: "t1", Transcript: transcript})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Readiness)
	assert.Equal(t, feedback.LevelNeedsPractice, result.Level)
	assert.Empty(t, result.Scores)
}

func TestEvaluator_Evaluate_SearchFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := llmmocks.NewMockCompleter(ctrl)
	search := mocks.NewMockSectionSearcher(ctrl)
	e := feedback.NewEvaluator(completer, search)

	search.EXPECT().SearchSections(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, rag.ErrSearch)
	completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"scores":[{"criterion":"communication","score":6}]}`, nil)

	result, err := e.Evaluate(context.Background(), feedback.Request{TopicID: "t1", Transcript: transcript})
	require.NoError(t, err)
	assert.Equal(t, 60, result.Readiness)
	assert.Equal(t, feedback.LevelDeveloping, result.Level)
}

func TestEvaluator_Evaluate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		reply      string
		replyErr   error
		wantErr    error
	}{
		{name: "blank transcript", transcript: " \n ", wantErr: feedback.ErrEmptyTranscript},
		{name: "transcript too long", transcript: strings.Repeat("a", feedback.MaxTranscriptLength+1), wantErr: feedback.ErrTranscriptTooLong},
		{name: "completion failure", transcript: transcript, replyErr: errors.New("timeout"), wantErr: rag.ErrCompletion},
		{name: "malformed reply", transcript: transcript, reply: "Great job!", wantErr: feedback.ErrMalformedFeedback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := llmmocks.NewMockCompleter(ctrl)
			if tt.reply != "" || tt.replyErr != nil {
				completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.reply, tt.replyErr)
			}

			_, err := feedback.NewEvaluator(completer, nil).Evaluate(context.Background(), feedback.Request{Transcript: tt.transcript})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
