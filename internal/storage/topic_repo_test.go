package storage

import (
	"context"
	"errors"
	"testing"
)

func TestTopicRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTopicRepo(newTestDB(t))

	topic := &Topic{Title: "Discovery calls", Description: "Asking good questions"}
	if err := repo.Create(ctx, topic); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if topic.ID == "" {
		t.Fatal("Create() should assign an ID")
	}

	got, err := repo.Get(ctx, topic.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Discovery calls" || got.Description != "Asking good questions" {
		t.Errorf("Get() = %+v, want %+v", got, topic)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Get() CreatedAt should be set")
	}

	got.Title = "Discovery"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	updated, _ := repo.Get(ctx, topic.ID)
	if updated.Title != "Discovery" {
		t.Errorf("Update() title = %v, want Discovery", updated.Title)
	}

	if err := repo.Create(ctx, &Topic{Title: "Closing"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	topics, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(topics) != 2 {
		t.Errorf("List() returned %d topics, want 2", len(topics))
	}

	if err := repo.Delete(ctx, topic.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, topic.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
}

func TestTopicRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewTopicRepo(newTestDB(t))

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "get",
			call: func() error {
				_, err := repo.Get(ctx, "missing")
				return err
			},
		},
		{
			name: "update",
			call: func() error { return repo.Update(ctx, &Topic{ID: "missing", Title: "x"}) },
		},
		{
			name: "delete",
			call: func() error { return repo.Delete(ctx, "missing") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestTopicRepo_List_Empty(t *testing.T) {
	topics, err := NewTopicRepo(newTestDB(t)).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if topics == nil || len(topics) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", topics)
	}
}
