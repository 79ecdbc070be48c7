package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/chefbook/internal/model"
)

// PostgresChefRepo はPostgreSQLを使用したシェフリポジトリ。
type PostgresChefRepo struct {
	db *sql.DB
}

// NewPostgresChefRepo はPostgresChefRepoを生成する。
func NewPostgresChefRepo(db *sql.DB) *PostgresChefRepo {
	return &PostgresChefRepo{db: db}
}

// FindByName は指定名のシェフを取得する。見つからない場合はnilを返す。
func (r *PostgresChefRepo) FindByName(ctx context.Context, name string) (*model.Chef, error) {
	chef := &model.Chef{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, phone, created_at FROM chefs WHERE name = $1`,
		name,
	).Scan(&chef.ID, &chef.Name, &chef.Address, &chef.Phone, &chef.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("シェフの取得に失敗しました: %w", err)
	}

	return chef, nil
}

// Create はシェフを作成する。
// 事前の存在チェックは行わず、nameのUNIQUE制約違反をErrDuplicateKeyに変換する。
func (r *PostgresChefRepo) Create(ctx context.Context, chef *model.Chef) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chefs (id, name, address, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		chef.ID, chef.Name, chef.Address, chef.Phone, chef.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("シェフ名 %s: %w", chef.Name, ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("シェフの作成に失敗しました: %w", err)
	}
	return nil
}

// ListOrderedByCreation は全シェフをcreated_at昇順で返す。
// 同時刻の行はseq（挿入順）で安定化される。
func (r *PostgresChefRepo) ListOrderedByCreation(ctx context.Context) ([]*model.Chef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, phone, created_at
		 FROM chefs ORDER BY created_at ASC, seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("シェフ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var chefs []*model.Chef
	for rows.Next() {
		chef := &model.Chef{}
		if err := rows.Scan(&chef.ID, &chef.Name, &chef.Address, &chef.Phone, &chef.CreatedAt); err != nil {
			return nil, fmt.Errorf("シェフ一覧の読み取りに失敗しました: %w", err)
		}
		chefs = append(chefs, chef)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("シェフ一覧の走査に失敗しました: %w", err)
	}

	return chefs, nil
}

// UpdateByName は指定名のシェフを部分更新する。
// NULLIFとCOALESCEにより、patchの空フィールドは既存値を保持する
// （空入力はフィールドのクリアではなく無指定として扱う）。
// 改名が既存シェフ名と衝突した場合はUNIQUE制約がErrDuplicateKeyとして返る。
func (r *PostgresChefRepo) UpdateByName(ctx context.Context, name string, patch model.ChefPatch) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE chefs SET
		    name    = COALESCE(NULLIF($2, ''), name),
		    address = COALESCE(NULLIF($3, ''), address),
		    phone   = COALESCE(NULLIF($4, ''), phone)
		 WHERE name = $1`,
		name, patch.Name, patch.Address, patch.Phone,
	)
	if isUniqueViolation(err) {
		return false, fmt.Errorf("シェフ名 %s: %w", patch.Name, ErrDuplicateKey)
	}
	if err != nil {
		return false, fmt.Errorf("シェフの更新に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	return affected > 0, nil
}

// DeleteCascadeByID はシェフを参照する全Cooks関係とシェフ本体を
// 同一トランザクションで削除する。部分完了が外部から観測されることはない。
// 戻り値は削除したCooks関係の件数。
func (r *PostgresChefRepo) DeleteCascadeByID(ctx context.Context, id string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	// 先に依存するCooks関係を削除する（カスケード、次に親の順序）
	result, err := tx.ExecContext(ctx,
		`DELETE FROM cooks WHERE chef_id = $1`,
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
		`DELETE FROM chefs WHERE id = $1`,
		id,
	); err != nil {
		return 0, fmt.Errorf("シェフの削除に失敗しました: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}

	return int(removed), nil
}

// compile-time interface check
var _ ChefRepository = (*PostgresChefRepo)(nil)
