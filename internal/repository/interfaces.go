// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/chefbook/internal/model"
)

// ChefRepository はシェフデータの永続化インターフェース。
type ChefRepository interface {
	// FindByName は指定名のシェフを取得する。見つからない場合はnilを返す。
	// 名前は大文字小文字を区別する完全一致。
	FindByName(ctx context.Context, name string) (*model.Chef, error)

	// Create はシェフを作成する。
	// 同名シェフが既に存在する場合はErrDuplicateKeyを返す。
	// 存在チェックは行わず、ストアのUNIQUE制約に委ねる。
	Create(ctx context.Context, chef *model.Chef) error

	// ListOrderedByCreation は全シェフをcreated_at昇順で返す。
	// 同時刻はストアが記録した挿入順で安定化される。
	ListOrderedByCreation(ctx context.Context) ([]*model.Chef, error)

	// UpdateByName は指定名のシェフを部分更新する。
	// patchの空フィールドは既存値を保持する。更新対象が存在しない場合はfalseを返す。
	// 改名が他のシェフ名と衝突した場合はErrDuplicateKeyを返す。
	UpdateByName(ctx context.Context, name string, patch model.ChefPatch) (bool, error)

	// DeleteCascadeByID は指定IDのシェフを参照する全Cooks関係と
	// シェフ本体を同一トランザクションで削除し、削除したCooks関係の件数を返す。
	DeleteCascadeByID(ctx context.Context, id string) (int, error)
}

// DishRepository は料理データの永続化インターフェース。
type DishRepository interface {
	// FindByName は指定名の料理を取得する。見つからない場合はnilを返す。
	FindByName(ctx context.Context, name string) (*model.Dish, error)

	// Create は料理を作成する。同名料理が既に存在する場合はErrDuplicateKeyを返す。
	Create(ctx context.Context, dish *model.Dish) error

	// ListOrderedByCreation は全料理をcreated_at昇順で返す。
	ListOrderedByCreation(ctx context.Context) ([]*model.Dish, error)

	// UpdateByName は指定名の料理を部分更新する。
	// patchの空フィールドは既存値を保持する。更新対象が存在しない場合はfalseを返す。
	UpdateByName(ctx context.Context, name string, patch model.DishPatch) (bool, error)

	// DeleteCascadeByID は指定IDの料理を参照する全Cooks関係と
	// 料理本体を同一トランザクションで削除し、削除したCooks関係の件数を返す。
	DeleteCascadeByID(ctx context.Context, id string) (int, error)
}

// CooksRepository はCooks関係データの永続化インターフェース。
type CooksRepository interface {
	// Create はCooks関係を作成する。
	// 同一キーが既に存在する場合はErrDuplicateKey、
	// 参照先エンティティが存在しない場合はErrInvalidReferenceを返す。
	Create(ctx context.Context, cooks *model.Cooks) error

	// ListPairs は全Cooks関係をcreated_at昇順で、参照先の現在の名前に
	// 解決して返す（ライブJOIN。改名は即座に一覧へ反映される）。
	ListPairs(ctx context.Context) ([]model.CooksPair, error)

	// DeleteByKey は指定キーのCooks関係を削除する。
	// 削除対象が存在しない場合はfalseを返す。
	DeleteByKey(ctx context.Context, key string) (bool, error)

	// Swap は旧キーのCooks関係を新しいペアへ付け替える。
	// 新レコードのcreated_atは旧レコードから引き継がれ、挿入と旧レコード削除は
	// 同一トランザクションで実行される。
	// 新キーが既に存在する場合はErrDuplicateKey、旧キーが存在しない場合は
	// ErrNotFound、参照先エンティティが存在しない場合はErrInvalidReferenceを返す。
	Swap(ctx context.Context, oldKey string, next *model.Cooks) error
}
