package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"salescoach-ai/internal/service"
	"salescoach-ai/internal/service/mocks"
	"salescoach-ai/internal/storage"
	storagemocks "salescoach-ai/internal/storage/mocks"
)

func TestTopicService_Create(t *testing.T) {
	tests := []struct {
		name         string
		req          service.TopicRequest
		mockSetup    func(*storagemocks.MockTopicStore)
		wantErr      bool
		checkErrType func(error) bool
	}{
		{
			name: "trims fields",
			req:  service.TopicRequest{Title: "  Renewals ", Description: " Keeping customers \n"},
			mockSetup: func(topics *storagemocks.MockTopicStore) {
				topics.EXPECT().
					Create(gomock.Any(), &storage.Topic{Title: "Renewals", Description: "Keeping customers"}).
					DoAndReturn(func(_ context.Context, topic *storage.Topic) error {
						topic.ID = "t1"
						return nil
					})
			},
		},
		{
			name:         "empty title",
			req:          service.TopicRequest{Title: "  "},
			mockSetup:    func(*storagemocks.MockTopicStore) {},
			wantErr:      true,
			checkErrType: isValidation("title"),
		},
		{
			name:         "title too long",
			req:          service.TopicRequest{Title: strings.Repeat("x", service.MaxTitleLength+1)},
			mockSetup:    func(*storagemocks.MockTopicStore) {},
			wantErr:      true,
			checkErrType: isValidation("title"),
		},
		{
			name:         "description too long",
			req:          service.TopicRequest{Title: "Renewals", Description: strings.Repeat("x", service.MaxDescriptionLength+1)},
			mockSetup:    func(*storagemocks.MockTopicStore) {},
			wantErr:      true,
			checkErrType: isValidation("description"),
		},
		{
			name: "store failure",
			req:  service.TopicRequest{Title: "Renewals"},
			mockSetup: func(topics *storagemocks.MockTopicStore) {
				topics.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			topics := storagemocks.NewMockTopicStore(ctrl)
			tt.mockSetup(topics)

			topic, err := service.NewTopicService(topics, mocks.NewMockTopicRemover(ctrl)).Create(testContext(), tt.req)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Create() expected error, got nil")
				} else if tt.checkErrType != nil && !tt.checkErrType(err) {
					t.Errorf("Create() error type mismatch: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if topic.ID != "t1" {
				t.Errorf("Create() id = %v, want t1", topic.ID)
			}
		})
	}
}

func TestTopicService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	topics := storagemocks.NewMockTopicStore(ctrl)
	svc := service.NewTopicService(topics, mocks.NewMockTopicRemover(ctrl))

	topics.EXPECT().Get(gomock.Any(), "t1").Return(&storage.Topic{ID: "t1", Title: "Old"}, nil)
	topics.EXPECT().Update(gomock.Any(), &storage.Topic{ID: "t1", Title: "Renewals", Description: "New"}).Return(nil)

	topic, err := svc.Update(testContext(), "t1", service.TopicRequest{Title: "Renewals", Description: "New"})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if topic.Title != "Renewals" {
		t.Errorf("Update() title = %v, want Renewals", topic.Title)
	}

	topics.EXPECT().Get(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
	if _, err := svc.Update(testContext(), "missing", service.TopicRequest{Title: "X"}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Update() error = %v, want %v", err, service.ErrNotFound)
	}
}

func TestTopicService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	topics := storagemocks.NewMockTopicStore(ctrl)
	svc := service.NewTopicService(topics, mocks.NewMockTopicRemover(ctrl))

	topics.EXPECT().Get(gomock.Any(), "t1").Return(renewals, nil)
	topic, err := svc.Get(testContext(), "t1")
	if err != nil || topic.Title != "Renewals" {
		t.Errorf("Get() = %v, %v, want Renewals", topic, err)
	}

	topics.EXPECT().Get(gomock.Any(), "t2").Return(nil, errors.New("database is locked"))
	if _, err := svc.Get(testContext(), "t2"); err == nil || errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() error = %v, want internal error", err)
	}
}

func TestTopicService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	topics := storagemocks.NewMockTopicStore(ctrl)
	topics.EXPECT().List(gomock.Any()).Return([]storage.Topic{*renewals}, nil)

	got, err := service.NewTopicService(topics, mocks.NewMockTopicRemover(ctrl)).List(testContext())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("List() returned %d topics, want 1", len(got))
	}
}

func TestTopicService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(*storagemocks.MockTopicStore, *mocks.MockTopicRemover)
		wantErr   error
	}{
		{
			name: "removes topic with its material",
			mockSetup: func(topics *storagemocks.MockTopicStore, remover *mocks.MockTopicRemover) {
				topics.EXPECT().Get(gomock.Any(), "t1").Return(renewals, nil)
				remover.EXPECT().DeleteTopic(gomock.Any(), "t1").Return(nil)
			},
		},
		{
			name: "unknown topic",
			mockSetup: func(topics *storagemocks.MockTopicStore, _ *mocks.MockTopicRemover) {
				topics.EXPECT().Get(gomock.Any(), "t1").Return(nil, storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "section index failure",
			mockSetup: func(topics *storagemocks.MockTopicStore, remover *mocks.MockTopicRemover) {
				topics.EXPECT().Get(gomock.Any(), "t1").Return(renewals, nil)
				remover.EXPECT().DeleteTopic(gomock.Any(), "t1").Return(errors.New("qdrant unavailable"))
			},
			wantErr: errAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			topics := storagemocks.NewMockTopicStore(ctrl)
			remover := mocks.NewMockTopicRemover(ctrl)
			tt.mockSetup(topics, remover)

			err := service.NewTopicService(topics, remover).Delete(testContext(), "t1")
			checkErr(t, "Delete()", err, tt.wantErr)
		})
	}
}

// errAny matches any non-nil error in checkErr.
var errAny = errors.New("any error")

func checkErr(t *testing.T, op string, err, want error) {
	t.Helper()
	switch {
	case want == nil && err != nil:
		t.Errorf("%s unexpected error: %v", op, err)
	case want == errAny && err == nil:
		t.Errorf("%s expected error, got nil", op)
	case want != nil && want != errAny && !errors.Is(err, want):
		t.Errorf("%s error = %v, want %v", op, err, want)
	}
}
