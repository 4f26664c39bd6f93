package store

import (
	"context"
	"errors"
	"testing"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestQuestionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.QuestionCount(ctx)
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d questions", count)
	}

	q := model.Question{
		TypeKey: "mcq",
		Spec: map[string]any{
			"prompt":      "Pick one",
			"options":     []any{"a", "b", "c"},
			"answerIndex": 2.0,
		},
		Solution: map[string]any{"explanation": "because"},
		Marks:    4,
	}
	id, err := s.InsertQuestion(ctx, q)
	if err != nil {
		t.Fatalf("InsertQuestion: %v", err)
	}

	got, err := s.GetQuestion(ctx, id)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.TypeKey != "mcq" || got.Marks != 4 {
		t.Errorf("got %+v", got)
	}
	if got.Spec["answerIndex"] != 2.0 {
		t.Errorf("spec answerIndex = %v, want 2", got.Spec["answerIndex"])
	}
	if got.Solution["explanation"] != "because" {
		t.Errorf("solution = %v", got.Solution)
	}

	count, err = s.QuestionCount(ctx)
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestQuestionWithoutSolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.InsertQuestion(ctx, model.Question{
		TypeKey: "sequence",
		Spec:    map[string]any{"correctOrder": []any{"x", "y"}},
		Marks:   2,
	})
	if err != nil {
		t.Fatalf("InsertQuestion: %v", err)
	}
	got, err := s.GetQuestion(ctx, id)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.Solution != nil {
		t.Errorf("solution = %v, want nil", got.Solution)
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetQuestion(context.Background(), 9999)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, model.User{Name: "Ada", Email: "ada@example.com"}, "s3cret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Name != "Ada" || u.Email != "ada@example.com" {
		t.Errorf("got %+v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret" {
		t.Error("password should be stored hashed")
	}

	byEmail, err := s.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != id {
		t.Errorf("byEmail.ID = %d, want %d", byEmail.ID, id)
	}

	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("len(users) = %d, want 1", len(users))
	}
}

func TestUserWithoutPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, model.User{Name: "Bob", Email: "bob@example.com"}, "")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.PasswordHash != "" {
		t.Errorf("hash = %q, want empty", u.PasswordHash)
	}
}
