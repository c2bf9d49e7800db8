package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad file: %s", "components.json")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad file: components.json" {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if want := "INVALID_INPUT: bad file: components.json"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStoreUnavailable, cause, "redis at %s", "localhost:6379")

	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable through errors.Is")
	}
	if want := "STORE_UNAVAILABLE: redis at localhost:6379: connection refused"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "no such project")

	if !Is(err, ErrCodeNotFound) {
		t.Error("expected Is to match the code")
	}
	if Is(err, ErrCodeStore) {
		t.Error("expected Is to reject a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("expected Is to reject a plain error")
	}
	if Is(nil, ErrCodeNotFound) {
		t.Error("expected Is to reject nil")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeFileNotFound, "missing")
	outer := fmt.Errorf("loading: %w", inner)

	if !Is(outer, ErrCodeFileNotFound) {
		t.Error("expected Is to unwrap fmt-wrapped errors")
	}
	if GetCode(outer) != ErrCodeFileNotFound {
		t.Errorf("expected code through wrapping, got %s", GetCode(outer))
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("expected %s, got %s", ErrCodeInternal, got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("expected empty code for a plain error, got %s", got)
	}
}

func TestUserMessage(t *testing.T) {
	coded := Wrap(ErrCodeStore, stderrors.New("disk full"), "save positions")
	if got := UserMessage(coded); got != "save positions" {
		t.Errorf("expected the bare message, got %q", got)
	}

	plain := stderrors.New("something broke")
	if got := UserMessage(plain); got != "something broke" {
		t.Errorf("expected the raw error string, got %q", got)
	}
}
