package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/chefbook/internal/model"
)

// PostgresCooksRepo はPostgreSQLを使用したCooks関係リポジトリ。
type PostgresCooksRepo struct {
	db *sql.DB
}

// NewPostgresCooksRepo はPostgresCooksRepoを生成する。
func NewPostgresCooksRepo(db *sql.DB) *PostgresCooksRepo {
	return &PostgresCooksRepo{db: db}
}

// Create はCooks関係を作成する。
// キーのPK制約違反はErrDuplicateKey、外部キー制約違反はErrInvalidReferenceに変換する。
// 後者は名前解決と挿入の間に参照先が削除された場合にのみ発生する。
func (r *PostgresCooksRepo) Create(ctx context.Context, cooks *model.Cooks) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cooks (key, chef_id, dish_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		cooks.Key, cooks.ChefID, cooks.DishID, cooks.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("Cooksキー %s: %w", cooks.Key, ErrDuplicateKey)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("Cooksキー %s: %w", cooks.Key, ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("Cooks関係の作成に失敗しました: %w", err)
	}
	return nil
}

// ListPairs は全Cooks関係をcreated_at昇順で、参照先の現在の名前に解決して返す。
// JOINは参照時に行うため、シェフや料理の改名は即座に一覧へ反映される。
func (r *PostgresCooksRepo) ListPairs(ctx context.Context) ([]model.CooksPair, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.name, d.name
		 FROM cooks k
		 INNER JOIN chefs c ON k.chef_id = c.id
		 INNER JOIN dishes d ON k.dish_id = d.id
		 ORDER BY k.created_at ASC, k.seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("Cooks一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var pairs []model.CooksPair
	for rows.Next() {
		var pair model.CooksPair
		if err := rows.Scan(&pair.ChefName, &pair.DishName); err != nil {
			return nil, fmt.Errorf("Cooks一覧の読み取りに失敗しました: %w", err)
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Cooks一覧の走査に失敗しました: %w", err)
	}

	return pairs, nil
}

// DeleteByKey は指定キーのCooks関係を削除する。
// 削除対象が存在しなかった場合はfalseを返す。
func (r *PostgresCooksRepo) DeleteByKey(ctx context.Context, key string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cooks WHERE key = $1`,
		key,
	)
	if err != nil {
		return false, fmt.Errorf("Cooks関係の削除に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}
	return affected > 0, nil
}

// Swap は旧キーのCooks関係を新しいペアへ付け替える。
// 関係の論理的な付け替えであり新規作成ではないため、新レコードのcreated_atは
// INSERT ... SELECTで旧レコードからコピーされる（リセットしない）。
// 挿入と旧レコード削除は同一トランザクションで実行され、
// 「両方存在する」「どちらも存在しない」状態が外部から観測されることはない。
func (r *PostgresCooksRepo) Swap(ctx context.Context, oldKey string, next *model.Cooks) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	// 新キーの重複を先に判定する（旧キー不在より優先される失敗）。
	// 競合時はこの後のINSERTのPK制約が最終的な防壁になる。
	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM cooks WHERE key = $1)`,
		next.Key,
	).Scan(&exists); err != nil {
		return fmt.Errorf("Cooksキーの確認に失敗しました: %w", err)
	}
	if exists {
		return fmt.Errorf("Cooksキー %s: %w", next.Key, ErrDuplicateKey)
	}

	// created_atを旧レコードから引き継いで新レコードを挿入する。
	// 旧レコードが存在しなければ挿入行数は0になる。
	result, err := tx.ExecContext(ctx,
		`INSERT INTO cooks (key, chef_id, dish_id, created_at)
		 SELECT $1, $2, $3, created_at FROM cooks WHERE key = $4`,
		next.Key, next.ChefID, next.DishID, oldKey,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("Cooksキー %s: %w", next.Key, ErrDuplicateKey)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("Cooksキー %s: %w", next.Key, ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("Cooks関係の付け替えに失敗しました: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("挿入行数の取得に失敗しました: %w", err)
	}
	if inserted == 0 {
		return fmt.Errorf("Cooksキー %s: %w", oldKey, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cooks WHERE key = $1`,
		oldKey,
	); err != nil {
		return fmt.Errorf("旧Cooks関係の削除に失敗しました: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}

	return nil
}

// compile-time interface check
var _ CooksRepository = (*PostgresCooksRepo)(nil)
