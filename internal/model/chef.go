// Package model はドメインモデルを定義する。
package model

import "time"

// Chef はシェフを表す。
// Nameは全シェフの中で一意であり、外部から見た識別子として使用される。
// IDはストア内部の識別子（UUIDv4文字列）。
type Chef struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
}

// ChefPatch はシェフの部分更新を表す。
// 空文字列のフィールドは「未指定」として扱い、既存の値を保持する。
type ChefPatch struct {
	Name    string
	Address string
	Phone   string
}

// IsEmpty は全フィールドが未指定かどうかを返す。
func (p ChefPatch) IsEmpty() bool {
	return p.Name == "" && p.Address == "" && p.Phone == ""
}
