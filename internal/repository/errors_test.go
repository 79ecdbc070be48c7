package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

// 一意制約違反のSQLSTATE（23505）が正しく判定されることを検証
func TestIsUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: pq.ErrorCode(pqUniqueViolation)}
	if !isUniqueViolation(pqErr) {
		t.Error("expected 23505 to be detected as unique violation")
	}

	wrapped := fmt.Errorf("insert failed: %w", pqErr)
	if !isUniqueViolation(wrapped) {
		t.Error("expected wrapped 23505 to be detected as unique violation")
	}
}

// 外部キー制約違反のSQLSTATE（23503）が正しく判定されることを検証
func TestIsForeignKeyViolation(t *testing.T) {
	pqErr := &pq.Error{Code: pq.ErrorCode(pqForeignKeyViolation)}
	if !isForeignKeyViolation(pqErr) {
		t.Error("expected 23503 to be detected as foreign key violation")
	}
}

// 制約違反以外のエラーが誤判定されないことを検証
func TestViolationChecks_NonPQErrors(t *testing.T) {
	plain := errors.New("connection refused")
	if isUniqueViolation(plain) {
		t.Error("plain error should not be a unique violation")
	}
	if isForeignKeyViolation(plain) {
		t.Error("plain error should not be a foreign key violation")
	}

	if isUniqueViolation(nil) {
		t.Error("nil should not be a unique violation")
	}

	// 別のSQLSTATE（NOT NULL違反）は対象外
	other := &pq.Error{Code: "23502"}
	if isUniqueViolation(other) || isForeignKeyViolation(other) {
		t.Error("23502 should not match either violation check")
	}
}

// ラップされたセンチネルエラーがerrors.Isで検出できることを検証
// （サービス層のエラー分岐で使用する）
func TestSentinelErrors_Wrapped(t *testing.T) {
	dup := fmt.Errorf("シェフ名 Ana: %w", ErrDuplicateKey)
	if !errors.Is(dup, ErrDuplicateKey) {
		t.Error("wrapped ErrDuplicateKey should match errors.Is")
	}

	nf := fmt.Errorf("Cooksキー a,b: %w", ErrNotFound)
	if !errors.Is(nf, ErrNotFound) {
		t.Error("wrapped ErrNotFound should match errors.Is")
	}

	ref := fmt.Errorf("Cooksキー a,b: %w", ErrInvalidReference)
	if !errors.Is(ref, ErrInvalidReference) {
		t.Error("wrapped ErrInvalidReference should match errors.Is")
	}
}
