package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/chefbook/internal/model"
)

// PostgresDishRepo はPostgreSQLを使用した料理リポジトリ。
type PostgresDishRepo struct {
	db *sql.DB
}

// NewPostgresDishRepo はPostgresDishRepoを生成する。
func NewPostgresDishRepo(db *sql.DB) *PostgresDishRepo {
	return &PostgresDishRepo{db: db}
}

// FindByName は指定名の料理を取得する。見つからない場合はnilを返す。
func (r *PostgresDishRepo) FindByName(ctx context.Context, name string) (*model.Dish, error) {
	dish := &model.Dish{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, detail, created_at FROM dishes WHERE name = $1`,
		name,
	).Scan(&dish.ID, &dish.Name, &dish.Detail, &dish.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("料理の取得に失敗しました: %w", err)
	}

	return dish, nil
}

// Create は料理を作成する。
// 事前の存在チェックは行わず、nameのUNIQUE制約違反をErrDuplicateKeyに変換する。
func (r *PostgresDishRepo) Create(ctx context.Context, dish *model.Dish) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dishes (id, name, detail, created_at)
		 VALUES ($1, $2, $3, $4)`,
		dish.ID, dish.Name, dish.Detail, dish.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("料理名 %s: %w", dish.Name, ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("料理の作成に失敗しました: %w", err)
	}
	return nil
}

// ListOrderedByCreation は全料理をcreated_at昇順で返す。
// 同時刻の行はseq（挿入順）で安定化される。
func (r *PostgresDishRepo) ListOrderedByCreation(ctx context.Context) ([]*model.Dish, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, detail, created_at
		 FROM dishes ORDER BY created_at ASC, seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("料理一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var dishes []*model.Dish
	for rows.Next() {
		dish := &model.Dish{}
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Detail, &dish.CreatedAt); err != nil {
			return nil, fmt.Errorf("料理一覧の読み取りに失敗しました: %w", err)
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("料理一覧の走査に失敗しました: %w", err)
	}

	return dishes, nil
}

// UpdateByName は指定名の料理を部分更新する。
// patchの空フィールドは既存値を保持する。
func (r *PostgresDishRepo) UpdateByName(ctx context.Context, name string, patch model.DishPatch) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dishes SET
		    name   = COALESCE(NULLIF($2, ''), name),
		    detail = COALESCE(NULLIF($3, ''), detail)
		 WHERE name = $1`,
		name, patch.Name, patch.Detail,
	)
	if isUniqueViolation(err) {
		return false, fmt.Errorf("料理名 %s: %w", patch.Name, ErrDuplicateKey)
	}
	if err != nil {
		return false, fmt.Errorf("料理の更新に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	return affected > 0, nil
}

// DeleteCascadeByID は料理を参照する全Cooks関係と料理本体を
// 同一トランザクションで削除する。戻り値は削除したCooks関係の件数。
func (r *PostgresDishRepo) DeleteCascadeByID(ctx context.Context, id string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM cooks WHERE dish_id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("Cooks関係のカスケード削除に失敗しました: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM dishes WHERE id = $1`,
		id,
	); err != nil {
		return 0, fmt.Errorf("料理の削除に失敗しました: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}

	return int(removed), nil
}

// compile-time interface check
var _ DishRepository = (*PostgresDishRepo)(nil)
