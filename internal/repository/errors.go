package repository

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQLのSQLSTATEエラーコード
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var (
	// ErrDuplicateKey は一意制約違反を表す。
	// 名前のUNIQUE制約またはCooks関係の複合キーPK制約に違反した場合に返される。
	ErrDuplicateKey = errors.New("unique constraint violation")

	// ErrNotFound は操作対象のレコードが存在しないことを表す。
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference は外部キー制約違反を表す。
	// 参照先のシェフまたは料理が存在しない場合に返される。
	ErrInvalidReference = errors.New("foreign key constraint violation")
)

// isUniqueViolation はpqの一意制約違反エラーかどうかを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}

// isForeignKeyViolation はpqの外部キー制約違反エラーかどうかを判定する。
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation
}
