package model

import "time"

// cooksKeySeparator は複合キーの区切り文字。
// エンティティIDはUUIDv4文字列（[0-9a-f-]のみ）であるため、
// この文字がID内に出現することはなく、連結は単射になる。
const cooksKeySeparator = ","

// Cooks はシェフと料理のCooks関係を表す。
// Keyは CooksKey(ChefID, DishID) で導出される主識別子。
// CreatedAtは通常の操作では不変だが、スワップ時のみ旧レコードから引き継がれる。
type Cooks struct {
	Key       string
	ChefID    string
	DishID    string
	CreatedAt time.Time
}

// CooksKey はシェフIDと料理IDからCooks関係の複合キーを導出する。
// 純粋関数であり、同一の入力に対して常に同一のキーを返す。
// 順序依存（シェフが先、料理が後）であり、CooksKey(a, b) ≠ CooksKey(b, a)。
func CooksKey(chefID, dishID string) string {
	return chefID + cooksKeySeparator + dishID
}

// CooksPair はCooks関係を現在のエンティティ名で解決した表示用のペア。
type CooksPair struct {
	ChefName string
	DishName string
}
