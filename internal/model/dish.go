package model

import "time"

// Dish は料理を表す。
// Nameは全料理の中で一意であり、外部から見た識別子として使用される。
type Dish struct {
	ID        string
	Name      string
	Detail    string
	CreatedAt time.Time
}

// DishPatch は料理の部分更新を表す。
// 空文字列のフィールドは「未指定」として扱い、既存の値を保持する。
type DishPatch struct {
	Name   string
	Detail string
}

// IsEmpty は全フィールドが未指定かどうかを返す。
func (p DishPatch) IsEmpty() bool {
	return p.Name == "" && p.Detail == ""
}
