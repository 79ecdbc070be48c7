// Package dish は料理管理のドメインロジックを提供する。
package dish

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

// Service は料理管理のサービス層。
// 作成・一覧・部分更新・カスケード削除のビジネスロジックを提供する。
type Service struct {
	repo      repository.DishRepository
	guard     *integrity.Guard
	sanitizer security.InputSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// sanitizerとcollectorはnil許容。
func NewService(
	repo repository.DishRepository,
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

// Create は新しい料理を作成し、ストア内部のIDを返す。
// 名前が空の場合はバリデーションエラー、同名料理が既に存在する場合は
// 重複エラーを返す。
func (s *Service) Create(ctx context.Context, name, detail string) (string, error) {
	name = s.sanitize(name)
	if name == "" {
		return "", model.NewValidationError("name")
	}

	dish := &model.Dish{
		ID:        uuid.NewString(),
		Name:      name,
		Detail:    s.sanitize(detail),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, dish); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", model.NewDuplicateDishError(name)
		}
		return "", fmt.Errorf("料理の作成に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordDishCreated()
	}

	return dish.ID, nil
}

// List は全料理を作成日時の昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Dish, error) {
	dishes, err := s.repo.ListOrderedByCreation(ctx)
	if err != nil {
		return nil, fmt.Errorf("料理一覧の取得に失敗しました: %w", err)
	}
	return dishes, nil
}

// Update は現在の名前で指定された料理を部分更新する。
// patchの空フィールドは既存の値を保持する。対象が存在しない場合はNotFoundエラー。
func (s *Service) Update(ctx context.Context, selectorName string, patch model.DishPatch) error {
	patch.Name = s.sanitize(patch.Name)
	patch.Detail = s.sanitize(patch.Detail)

	// 全フィールド未指定の場合は存在確認のみ行う
	if patch.IsEmpty() {
		dish, err := s.repo.FindByName(ctx, selectorName)
		if err != nil {
			return fmt.Errorf("料理の取得に失敗しました: %w", err)
		}
		if dish == nil {
			return model.NewDishNotFoundError(selectorName)
		}
		return nil
	}

	updated, err := s.repo.UpdateByName(ctx, selectorName, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.NewDuplicateDishError(patch.Name)
		}
		return fmt.Errorf("料理の更新に失敗しました: %w", err)
	}
	if !updated {
		return model.NewDishNotFoundError(selectorName)
	}

	return nil
}

// Delete は指定名の料理を削除する。
// 削除前に整合性ガードがこの料理を参照する全Cooks関係をカスケード削除する。
func (s *Service) Delete(ctx context.Context, name string) error {
	dish, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("料理の取得に失敗しました: %w", err)
	}
	if dish == nil {
		return model.NewDishNotFoundError(name)
	}

	if _, err := s.guard.CascadeDeleteDish(ctx, dish); err != nil {
		return fmt.Errorf("料理の削除に失敗しました: %w", err)
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
