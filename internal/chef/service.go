// Package chef はシェフ管理のドメインロジックを提供する。
package chef

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/chefbook/internal/integrity"
	"github.com/hitoshi/chefbook/internal/metrics"
	"github.com/hitoshi/chefbook/internal/model"
	"github.com/hitoshi/chefbook/internal/repository"
	"github.com/hitoshi/chefbook/internal/security"
)

// Service はシェフ管理のサービス層。
// 作成・一覧・部分更新・カスケード削除のビジネスロジックを提供する。
type Service struct {
	repo      repository.ChefRepository
	guard     *integrity.Guard
	sanitizer security.InputSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// sanitizerとcollectorはnil許容。
func NewService(
	repo repository.ChefRepository,
	guard *integrity.Guard,
	sanitizer security.InputSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		repo:      repo,
		guard:     guard,
		sanitizer: sanitizer,
		collector: collector,
	}
}

// Create は新しいシェフを作成し、ストア内部のIDを返す。
// 名前が空の場合はバリデーションエラー、同名シェフが既に存在する場合は
// 重複エラーを返す。重複判定はストアのUNIQUE制約に委ね、事前チェックは行わない。
func (s *Service) Create(ctx context.Context, name, address, phone string) (string, error) {
	name = s.sanitize(name)
	if name == "" {
		return "", model.NewValidationError("name")
	}

	chef := &model.Chef{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   s.sanitize(address),
		Phone:     s.sanitize(phone),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, chef); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", model.NewDuplicateChefError(name)
		}
		return "", fmt.Errorf("シェフの作成に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordChefCreated()
	}

	return chef.ID, nil
}

// List は全シェフを作成日時の昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Chef, error) {
	chefs, err := s.repo.ListOrderedByCreation(ctx)
	if err != nil {
		return nil, fmt.Errorf("シェフ一覧の取得に失敗しました: %w", err)
	}
	return chefs, nil
}

// Update は現在の名前で指定されたシェフを部分更新する。
// patchの空フィールドは既存の値を保持する（空入力はクリアではなく無指定）。
// 改名は同じ部分更新経路で行われ、新しい名前が他のシェフと衝突する場合は
// 重複エラーを返す。対象が存在しない場合はNotFoundエラー。
func (s *Service) Update(ctx context.Context, selectorName string, patch model.ChefPatch) error {
	patch.Name = s.sanitize(patch.Name)
	patch.Address = s.sanitize(patch.Address)
	patch.Phone = s.sanitize(patch.Phone)

	// 全フィールド未指定の場合は存在確認のみ行う（更新は何も変えない）
	if patch.IsEmpty() {
		chef, err := s.repo.FindByName(ctx, selectorName)
		if err != nil {
			return fmt.Errorf("シェフの取得に失敗しました: %w", err)
		}
		if chef == nil {
			return model.NewChefNotFoundError(selectorName)
		}
		return nil
	}

	updated, err := s.repo.UpdateByName(ctx, selectorName, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.NewDuplicateChefError(patch.Name)
		}
		return fmt.Errorf("シェフの更新に失敗しました: %w", err)
	}
	if !updated {
		return model.NewChefNotFoundError(selectorName)
	}

	return nil
}

// Delete は指定名のシェフを削除する。
// 削除前に整合性ガードがこのシェフを参照する全Cooks関係をカスケード削除し、
// 両者は単一トランザクションとして実行される。
func (s *Service) Delete(ctx context.Context, name string) error {
	chef, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("シェフの取得に失敗しました: %w", err)
	}
	if chef == nil {
		return model.NewChefNotFoundError(name)
	}

	if _, err := s.guard.CascadeDeleteChef(ctx, chef); err != nil {
		return fmt.Errorf("シェフの削除に失敗しました: %w", err)
	}

	return nil
}

// sanitize はsanitizer設定時のみ入力を浄化する。
func (s *Service) sanitize(input string) string {
	if s.sanitizer == nil {
		return input
	}
	return s.sanitizer.Sanitize(input)
}
