package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/akarim/code-notebook/internal/apperror"
	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/repository"
)

// mockExecutionRepo is an in-memory ExecutionRepository.
type mockExecutionRepo struct {
	executions []model.Execution
	nextID     int
	createErr  error
	listErr    error
}

func (m *mockExecutionRepo) CreateExecution(_ context.Context, exec *model.Execution) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	exec.ID = fmt.Sprintf("mock-%d", m.nextID)
	exec.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Millisecond)
	m.executions = append(m.executions, *exec)
	return nil
}

func (m *mockExecutionRepo) ListExecutionsByUser(_ context.Context, userID string, opts repository.ListOptions) ([]model.Execution, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []model.Execution{}
	for _, e := range m.executions {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

// mockSuggester counts calls and returns a fixed hint.
type mockSuggester struct {
	calls      int
	lastCode   string
	lastError  string
	lastLocale model.Locale
	hint       string
}

func (m *mockSuggester) Suggest(_ context.Context, code, errText string, locale model.Locale) string {
	m.calls++
	m.lastCode = code
	m.lastError = errText
	m.lastLocale = locale
	return m.hint
}

func newTestExecutionService(t *testing.T) (*ExecutionService, *mockExecutionRepo, *mockSuggester) {
	t.Helper()
	repo := &mockExecutionRepo{}
	sug := &mockSuggester{hint: "essayez print"}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewExecutionService(repo, sug, logger)
	return svc, repo, sug
}

func TestExecute_PrintLiteral(t *testing.T) {
	svc, repo, sug := newTestExecutionService(t)

	result, err := svc.Execute(context.Background(), "user-1", `print("hello")`, model.LocaleFrench)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Output != "hello" {
		t.Errorf("Output = %q, want %q", result.Output, "hello")
	}
	if result.Error != "" {
		t.Errorf("Error = %q, want empty", result.Error)
	}
	if result.Suggestion != "" {
		t.Errorf("Suggestion = %q, want empty", result.Suggestion)
	}
	if sug.calls != 0 {
		t.Errorf("suggester called %d times on success, want 0", sug.calls)
	}
	if len(repo.executions) != 1 {
		t.Fatalf("persisted %d records, want 1", len(repo.executions))
	}

	rec := repo.executions[0]
	if rec.UserID != "user-1" || rec.Output != "hello" || rec.Error != "" || rec.Suggestion != "" {
		t.Errorf("unexpected persisted record: %+v", rec)
	}
	if rec.Language != model.LanguagePython {
		t.Errorf("Language = %q, want %q", rec.Language, model.LanguagePython)
	}
	if rec.UILocale != model.LocaleFrench {
		t.Errorf("UILocale = %q, want fr", rec.UILocale)
	}
}

func TestExecute_TypoTriggersOneSuggestion(t *testing.T) {
	svc, repo, sug := newTestExecutionService(t)

	result, err := svc.Execute(context.Background(), "user-1", `pritn("hello")`, model.LocaleArabic)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantErr := "NameError: name 'pritn' is not defined"
	if result.Error != wantErr {
		t.Errorf("Error = %q, want %q", result.Error, wantErr)
	}
	if result.Output != "" {
		t.Errorf("Output = %q, want empty", result.Output)
	}
	if result.Suggestion != "essayez print" {
		t.Errorf("Suggestion = %q, want the suggester's hint", result.Suggestion)
	}

	if sug.calls != 1 {
		t.Fatalf("suggester called %d times, want exactly 1", sug.calls)
	}
	if sug.lastCode != `pritn("hello")` {
		t.Errorf("suggester got code %q", sug.lastCode)
	}
	if sug.lastError != wantErr {
		t.Errorf("suggester got error %q", sug.lastError)
	}
	if sug.lastLocale != model.LocaleArabic {
		t.Errorf("suggester got locale %q, want ar", sug.lastLocale)
	}

	if len(repo.executions) != 1 {
		t.Fatalf("persisted %d records, want 1", len(repo.executions))
	}
	if repo.executions[0].Suggestion != "essayez print" {
		t.Errorf("persisted suggestion = %q", repo.executions[0].Suggestion)
	}
}

func TestExecute_GenericSuccess(t *testing.T) {
	svc, _, sug := newTestExecutionService(t)

	result, err := svc.Execute(context.Background(), "user-1", "x = 1 + 2", model.LocaleFrench)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Output != "Code executed successfully" {
		t.Errorf("Output = %q, want the generic success output", result.Output)
	}
	if sug.calls != 0 {
		t.Errorf("suggester called %d times, want 0", sug.calls)
	}
}

func TestExecute_TwiceProducesTwoRecords(t *testing.T) {
	svc, repo, _ := newTestExecutionService(t)

	first, err := svc.Execute(context.Background(), "user-1", `print("same")`, model.LocaleFrench)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	second, err := svc.Execute(context.Background(), "user-1", `print("same")`, model.LocaleFrench)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}

	if len(repo.executions) != 2 {
		t.Fatalf("persisted %d records, want 2", len(repo.executions))
	}
	if repo.executions[0].ID == repo.executions[1].ID {
		t.Error("two executions share an ID")
	}
	if first.Output != second.Output {
		t.Errorf("identical code gave different outputs: %q vs %q", first.Output, second.Output)
	}
}

func TestExecute_Unauthenticated(t *testing.T) {
	svc, repo, _ := newTestExecutionService(t)

	_, err := svc.Execute(context.Background(), "", `print("x")`, model.LocaleFrench)
	if !errors.Is(err, apperror.ErrUnauthenticated) {
		t.Errorf("Execute() error = %v, want ErrUnauthenticated", err)
	}
	if len(repo.executions) != 0 {
		t.Errorf("persisted %d records for anonymous caller, want 0", len(repo.executions))
	}
}

func TestExecute_EmptyCode(t *testing.T) {
	svc, _, _ := newTestExecutionService(t)

	_, err := svc.Execute(context.Background(), "user-1", "", model.LocaleFrench)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Execute() error = %v, want ErrValidation", err)
	}
}

func TestExecute_InvalidLocale(t *testing.T) {
	svc, _, _ := newTestExecutionService(t)

	_, err := svc.Execute(context.Background(), "user-1", "x = 1", model.Locale("en"))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Execute() error = %v, want ErrValidation", err)
	}
}

func TestExecute_PersistenceFailureIsGeneric(t *testing.T) {
	svc, repo, _ := newTestExecutionService(t)
	repo.createErr = errors.New("disk full: /data/notebook.db")

	_, err := svc.Execute(context.Background(), "user-1", `print("x")`, model.LocaleFrench)
	if !errors.Is(err, apperror.ErrInternal) {
		t.Fatalf("Execute() error = %v, want ErrInternal", err)
	}

	// The public message stays generic; the cause goes to the log only.
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.Message != "failed to execute code" {
		t.Errorf("Message = %q, want the generic message", appErr.Message)
	}
}

func TestHistory_CappedAtLimit(t *testing.T) {
	svc, _, _ := newTestExecutionService(t)

	for i := 0; i < HistoryLimit+5; i++ {
		if _, err := svc.Execute(context.Background(), "user-1", "x = 1", model.LocaleFrench); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
	}

	history, err := svc.History(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != HistoryLimit {
		t.Errorf("History() returned %d records, want %d", len(history), HistoryLimit)
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].CreatedAt.Before(history[i].CreatedAt) {
			t.Errorf("history not newest-first at index %d", i)
		}
	}
}

func TestHistory_AnonymousGetsEmpty(t *testing.T) {
	svc, _, _ := newTestExecutionService(t)

	history, err := svc.History(context.Background(), "")
	if err != nil {
		t.Fatalf("History() error = %v, want nil for anonymous", err)
	}
	if len(history) != 0 {
		t.Errorf("History() returned %d records for anonymous, want 0", len(history))
	}
}

func TestHistory_ScopedToCaller(t *testing.T) {
	svc, _, _ := newTestExecutionService(t)

	if _, err := svc.Execute(context.Background(), "user-1", "a = 1", model.LocaleFrench); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Execute(context.Background(), "user-2", "b = 2", model.LocaleFrench); err != nil {
		t.Fatal(err)
	}

	history, err := svc.History(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("History() returned %d records, want 1", len(history))
	}
	if history[0].UserID != "user-1" {
		t.Errorf("history contains a record owned by %q", history[0].UserID)
	}
}
