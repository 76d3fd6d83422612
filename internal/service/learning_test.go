package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salescoach-ai/internal/learning"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/service"
	"salescoach-ai/internal/service/mocks"
	"salescoach-ai/internal/storage"
	storagemocks "salescoach-ai/internal/storage/mocks"
)

type learningMocks struct {
	generator *mocks.MockPathGenerator
	topics    *storagemocks.MockTopicStore
	paths     *storagemocks.MockLearningPathStore
}

func newLearningService(t *testing.T) (service.LearningService, learningMocks) {
	ctrl := gomock.NewController(t)
	m := learningMocks{
		generator: mocks.NewMockPathGenerator(ctrl),
		topics:    storagemocks.NewMockTopicStore(ctrl),
		paths:     storagemocks.NewMockLearningPathStore(ctrl),
	}
	return service.NewLearningService(m.generator, learning.NewRenderer(), m.topics, m.paths), m
}

func quizActivity(position int) learning.Activity {
	return learning.Activity{
		ID:       fmt.Sprintf("a%d", position),
		Position: position,
		Title:    "Check your understanding",
		Config: learning.QuizConfig{Questions: []learning.QuizQuestion{{
			Question:     "When should renewal outreach start?",
			Options:      []string{"30 days out", "90 days out"},
			CorrectIndex: 1,
		}}},
	}
}

func TestLearningService_Generate(t *testing.T) {
	svc, m := newLearningService(t)

	m.topics.EXPECT().Get(gomock.Any(), "t1").Return(renewals, nil)
	m.generator.EXPECT().
		Generate(gomock.Any(), *renewals, learning.GenerateOptions{ActivityCount: 2, Focus: "pricing"}).
		Return(&learning.Plan{
			Description: "Practice renewals",
			Activities:  []learning.Activity{quizActivity(0), quizActivity(1)},
			Dropped:     1,
		}, nil)
	m.paths.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path *storage.LearningPath, records []storage.ActivityRecord) error {
			assert.Equal(t, "Renewals", path.Title, "empty plan title falls back to the topic title")
			assert.Equal(t, "t1", path.TopicID)
			require.Len(t, records, 2)
			assert.Equal(t, "quiz", records[1].Type)
			assert.Equal(t, 1, records[1].Position)
			path.ID = "p1"
			return nil
		})

	got, err := svc.Generate(testContext(), service.GenerateRequest{TopicID: "t1", ActivityCount: 2, Focus: "pricing"})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Len(t, got.Activities, 2)
	assert.Equal(t, 1, got.Dropped)
}

func TestLearningService_Generate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       service.GenerateRequest
		genErr    error
		topicErr  error
		wantErr   error
		wantField string
	}{
		{name: "activity count out of range", req: service.GenerateRequest{TopicID: "t1", ActivityCount: learning.MaxActivityCount + 1}, wantField: "activity_count"},
		{name: "unknown topic", req: service.GenerateRequest{TopicID: "t1"}, topicErr: storage.ErrNotFound, wantErr: service.ErrNotFound},
		{name: "unknown activity type", req: service.GenerateRequest{TopicID: "t1"}, genErr: fmt.Errorf("%w: %q", learning.ErrUnknownType, "video"), wantField: "types"},
		{name: "no material", req: service.GenerateRequest{TopicID: "t1"}, genErr: learning.ErrNoSourceMaterial, wantErr: service.ErrInvalidInput},
		{name: "malformed plan", req: service.GenerateRequest{TopicID: "t1"}, genErr: learning.ErrMalformedPlan, wantErr: service.ErrExternalService},
		{name: "nothing valid", req: service.GenerateRequest{TopicID: "t1"}, genErr: learning.ErrNoValidActivities, wantErr: service.ErrExternalService},
		{name: "completion failure keeps its kind", req: service.GenerateRequest{TopicID: "t1"}, genErr: rag.ErrCompletion, wantErr: rag.ErrCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newLearningService(t)
			if tt.wantField != "activity_count" {
				if tt.topicErr != nil {
					m.topics.EXPECT().Get(gomock.Any(), "t1").Return(nil, tt.topicErr)
				} else {
					m.topics.EXPECT().Get(gomock.Any(), "t1").Return(renewals, nil)
					m.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.genErr)
				}
			}

			_, err := svc.Generate(testContext(), tt.req)
			if tt.wantField != "" {
				if !isValidation(tt.wantField)(err) {
					t.Errorf("Generate() error = %v, want validation error on %s", err, tt.wantField)
				}
				return
			}
			checkErr(t, "Generate()", err, tt.wantErr)
		})
	}
}

func TestLearningService_Get(t *testing.T) {
	svc, m := newLearningService(t)

	good, err := quizActivity(0).ToRecord("p1")
	require.NoError(t, err)
	broken := storage.ActivityRecord{ID: "a9", PathID: "p1", Position: 1, Title: "Broken", Type: "video", Config: "{}"}

	m.paths.EXPECT().Get(gomock.Any(), "p1").Return(&storage.LearningPath{ID: "p1", TopicID: "t1", Title: "Renewals"}, nil)
	m.paths.EXPECT().ListActivities(gomock.Any(), "p1").Return([]storage.ActivityRecord{good, broken}, nil)

	path, err := svc.Get(testContext(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renewals", path.Title)
	require.Len(t, path.Activities, 1, "unreadable activities are skipped")
	assert.Equal(t, learning.TypeQuiz, path.Activities[0].Type())

	m.paths.EXPECT().Get(gomock.Any(), "p9").Return(nil, storage.ErrNotFound)
	_, err = svc.Get(testContext(), "p9")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLearningService_Delete(t *testing.T) {
	svc, m := newLearningService(t)

	m.paths.EXPECT().Delete(gomock.Any(), "p1").Return(nil)
	assert.NoError(t, svc.Delete(testContext(), "p1"))

	m.paths.EXPECT().Delete(gomock.Any(), "p9").Return(storage.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(testContext(), "p9"), service.ErrNotFound)
}

func TestLearningService_UpdateActivity(t *testing.T) {
	t.Run("replaces config and renders slides", func(t *testing.T) {
		svc, m := newLearningService(t)

		m.paths.EXPECT().GetActivity(gomock.Any(), "a3").
			Return(&storage.ActivityRecord{ID: "a3", PathID: "p1", Position: 3, Type: "quiz"}, nil)
		m.paths.EXPECT().UpdateActivity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *storage.ActivityRecord) error {
				assert.Equal(t, "a3", rec.ID)
				assert.Equal(t, "p1", rec.PathID)
				assert.Equal(t, 3, rec.Position)
				assert.Equal(t, "slide", rec.Type)
				stored, err := learning.FromRecord(*rec)
				require.NoError(t, err)
				assert.Contains(t, stored.Config.(learning.SlideConfig).HTML, "<strong>value</strong>")
				return nil
			})

		got, err := svc.UpdateActivity(testContext(), "a3", learning.Activity{
			ID:       "ignored",
			Position: 99,
			Title:    " Lead with value ",
			Config:   learning.SlideConfig{Markdown: "Lead with **value**."},
		})
		require.NoError(t, err)
		assert.Equal(t, "a3", got.ID)
		assert.Equal(t, 3, got.Position)
		assert.Equal(t, "Lead with value", got.Title)
		slide, ok := got.Config.(learning.SlideConfig)
		require.True(t, ok)
		assert.Contains(t, slide.HTML, "<strong>value</strong>")
	})

	t.Run("invalid config", func(t *testing.T) {
		svc, _ := newLearningService(t)

		_, err := svc.UpdateActivity(testContext(), "a3", learning.Activity{
			Title:  "Quiz",
			Config: learning.QuizConfig{},
		})
		assert.True(t, isValidation("activity")(err), "got %v", err)
	})

	t.Run("missing config", func(t *testing.T) {
		svc, _ := newLearningService(t)

		_, err := svc.UpdateActivity(testContext(), "a3", learning.Activity{Title: "Quiz"})
		assert.True(t, isValidation("config")(err), "got %v", err)
	})

	t.Run("unknown activity", func(t *testing.T) {
		svc, m := newLearningService(t)

		m.paths.EXPECT().GetActivity(gomock.Any(), "a9").Return(nil, storage.ErrNotFound)
		_, err := svc.UpdateActivity(testContext(), "a9", quizActivity(0))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestLearningService_List(t *testing.T) {
	svc, m := newLearningService(t)

	m.topics.EXPECT().Get(gomock.Any(), "t1").Return(renewals, nil)
	m.paths.EXPECT().ListByTopic(gomock.Any(), "t1").Return([]storage.LearningPath{{ID: "p1"}}, nil)

	paths, err := svc.List(testContext(), "t1")
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	m.topics.EXPECT().Get(gomock.Any(), "t9").Return(nil, errors.New("database is locked"))
	_, err = svc.List(testContext(), "t9")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrNotFound)
}
