package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "pyrefgen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().Get("file")
		if !exists || file != "pyrefgen.yaml" {
			t.Errorf("expected context file=pyrefgen.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("no modules configured").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := NotFoundError("module not found").Build()
		wrapped := fmt.Errorf("resolve modules: %w", inner)

		if GetCategory(wrapped) != CategoryNotFound {
			t.Errorf("expected not_found category, got %s", GetCategory(wrapped))
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to map to internal")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	sentinel := errors.New("walk failed")
	err := WrapError(fmt.Errorf("%w: pkg", sentinel), CategoryFileSystem, "render module").
		WithSeverity(SeverityWarning).
		WithContext("module", "pkg").
		Build()

	if !errors.Is(err, sentinel) {
		t.Error("expected sentinel to be reachable through the classified error")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("expected warning severity, got %s", err.Severity())
	}
	if got := err.Error(); got != "[filesystem:warning] render module: walk failed: pkg" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, NewError(CategoryFileSystem, "render module").Build()) {
		t.Error("expected classified errors with equal category and message to match")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("permission denied")

	fsErr := FileSystemError(cause, "promote generated reference").Build()
	if fsErr.Category() != CategoryFileSystem || fsErr.IsFatal() {
		t.Errorf("unexpected filesystem error %s/%s", fsErr.Category(), fsErr.Severity())
	}
	if !errors.Is(fsErr, cause) {
		t.Error("expected cause to be reachable from filesystem error")
	}

	buildErr := BuildError(cause, "merge navigation").Build()
	if buildErr.Category() != CategoryBuild || !buildErr.IsFatal() {
		t.Errorf("unexpected build error %s/%s", buildErr.Category(), buildErr.Severity())
	}
	if got := buildErr.Error(); got != "[build:fatal] merge navigation: permission denied" {
		t.Errorf("unexpected message %q", got)
	}
}
