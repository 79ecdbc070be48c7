package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, duplicate, not_found, reference, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation       = "VALIDATION"
	ErrCodeDuplicateChef    = "DUPLICATE_CHEF"
	ErrCodeDuplicateDish    = "DUPLICATE_DISH"
	ErrCodeDuplicateCooks   = "DUPLICATE_COOKS"
	ErrCodeChefNotFound     = "CHEF_NOT_FOUND"
	ErrCodeDishNotFound     = "DISH_NOT_FOUND"
	ErrCodeCooksNotFound    = "COOKS_NOT_FOUND"
	ErrCodeInvalidReference = "INVALID_REFERENCE"
)

// NewValidationError は必須フィールド欠落エラーを生成する。
func NewValidationError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("必須フィールドが指定されていません: %s", field),
		Category: "validation",
		Action:   "必須フィールドを入力してください。",
	}
}

// NewDuplicateChefError は同名シェフが既に存在する場合のエラーを生成する。
func NewDuplicateChefError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateChef,
		Message:  fmt.Sprintf("シェフ %s は既に存在します。", name),
		Category: "duplicate",
		Action:   "別の名前でシェフを作成してください。",
	}
}

// NewDuplicateDishError は同名料理が既に存在する場合のエラーを生成する。
func NewDuplicateDishError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateDish,
		Message:  fmt.Sprintf("料理 %s は既に存在します。", name),
		Category: "duplicate",
		Action:   "別の名前で料理を作成してください。",
	}
}

// NewDuplicateCooksError は同一ペアのCooks関係が既に存在する場合のエラーを生成する。
func NewDuplicateCooksError(chefName, dishName string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateCooks,
		Message:  fmt.Sprintf("%s と %s のCooks関係は既に存在します。", chefName, dishName),
		Category: "duplicate",
		Action:   "別のシェフと料理の組み合わせを指定してください。",
	}
}

// NewChefNotFoundError はシェフが見つからない場合のエラーを生成する。
func NewChefNotFoundError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeChefNotFound,
		Message:  fmt.Sprintf("シェフ %s が見つかりません。", name),
		Category: "not_found",
		Action:   "シェフ名を確認してください。",
	}
}

// NewDishNotFoundError は料理が見つからない場合のエラーを生成する。
func NewDishNotFoundError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeDishNotFound,
		Message:  fmt.Sprintf("料理 %s が見つかりません。", name),
		Category: "not_found",
		Action:   "料理名を確認してください。",
	}
}

// NewCooksNotFoundError はCooks関係が見つからない場合のエラーを生成する。
func NewCooksNotFoundError(chefName, dishName string) *APIError {
	return &APIError{
		Code:     ErrCodeCooksNotFound,
		Message:  fmt.Sprintf("%s と %s のCooks関係が見つかりません。", chefName, dishName),
		Category: "not_found",
		Action:   "シェフ名と料理名の組み合わせを確認してください。",
	}
}

// NewInvalidChefReferenceError はCooks操作の参照先シェフが存在しない場合のエラーを生成する。
// シェフ自体の操作で返すNewChefNotFoundErrorとは区別される（ペア未登録とも異なる）。
func NewInvalidChefReferenceError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidReference,
		Message:  fmt.Sprintf("参照先のシェフ %s が存在しません。", name),
		Category: "reference",
		Action:   "存在するシェフ名を指定してください。",
	}
}

// NewInvalidPairReferenceError は名前解決後・格納前に参照先エンティティが
// 削除された場合のエラーを生成する（外部キー制約違反から検出される）。
func NewInvalidPairReferenceError(chefName, dishName string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidReference,
		Message:  fmt.Sprintf("参照先のシェフ %s または料理 %s が削除されました。", chefName, dishName),
		Category: "reference",
		Action:   "シェフと料理が存在することを確認して再度お試しください。",
	}
}

// NewInvalidDishReferenceError はCooks操作の参照先料理が存在しない場合のエラーを生成する。
func NewInvalidDishReferenceError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidReference,
		Message:  fmt.Sprintf("参照先の料理 %s が存在しません。", name),
		Category: "reference",
		Action:   "存在する料理名を指定してください。",
	}
}
