// Package cooks はシェフと料理のCooks関係管理のドメインロジックを提供する。
package cooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/chefbook/internal/integrity"
	"github.com/hitoshi/chefbook/internal/metrics"
	"github.com/hitoshi/chefbook/internal/model"
	"github.com/hitoshi/chefbook/internal/repository"
)

// Service はCooks関係管理のサービス層。
// 作成・一覧・削除・付け替え（スワップ）のビジネスロジックを提供する。
// 操作はすべてシェフ名・料理名を入力とし、整合性ガードで内部IDへ解決する。
type Service struct {
	repo      repository.CooksRepository
	guard     *integrity.Guard
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorはnil許容。
func NewService(repo repository.CooksRepository, guard *integrity.Guard, collector metrics.MetricsCollector) *Service {
	return &Service{
		repo:      repo,
		guard:     guard,
		collector: collector,
	}
}

// Create はシェフと料理のCooks関係を作成する。
// いずれかの名前が解決できない場合は参照エラー、同一ペアの関係が
// 既に存在する場合は重複エラーを返す。
func (s *Service) Create(ctx context.Context, chefName, dishName string) error {
	if chefName == "" {
		return model.NewValidationError("chef_name")
	}
	if dishName == "" {
		return model.NewValidationError("dish_name")
	}

	chefID, dishID, err := s.guard.ResolvePair(ctx, chefName, dishName)
	if err != nil {
		return err
	}

	cooks := &model.Cooks{
		Key:       model.CooksKey(chefID, dishID),
		ChefID:    chefID,
		DishID:    dishID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, cooks); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.NewDuplicateCooksError(chefName, dishName)
		}
		if errors.Is(err, repository.ErrInvalidReference) {
			// 名前解決と挿入の間に参照先が削除された場合
			return model.NewInvalidPairReferenceError(chefName, dishName)
		}
		return fmt.Errorf("Cooks関係の作成に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordCooksCreated()
	}

	return nil
}

// List は全Cooks関係を作成日時の昇順で、現在のエンティティ名に解決して返す。
func (s *Service) List(ctx context.Context) ([]model.CooksPair, error) {
	pairs, err := s.repo.ListPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("Cooks一覧の取得に失敗しました: %w", err)
	}
	return pairs, nil
}

// Delete はシェフと料理のCooks関係を削除する。
// 参照先エンティティが存在しない場合は参照エラー（ペア未登録のNotFoundとは
// 区別される）、ペアが関連付けられていない場合はNotFoundエラーを返す。
func (s *Service) Delete(ctx context.Context, chefName, dishName string) error {
	chefID, dishID, err := s.guard.ResolvePair(ctx, chefName, dishName)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteByKey(ctx, model.CooksKey(chefID, dishID))
	if err != nil {
		return fmt.Errorf("Cooks関係の削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewCooksNotFoundError(chefName, dishName)
	}

	return nil
}

// Swap は既存のCooks関係を旧ペアから新ペアへ付け替える。
// 作成と削除の組み合わせではなく関係の論理的な付け替えであり、
// 元のcreated_at（時系列上の位置）は新ペアへ引き継がれる。
// 4つの名前のいずれかが解決できない場合は参照エラー、新ペアの関係が既に
// 存在する場合は重複エラー、旧ペアの関係が存在しない場合はNotFoundエラーを返す。
func (s *Service) Swap(ctx context.Context, oldChefName, oldDishName, newChefName, newDishName string) error {
	oldChefID, oldDishID, err := s.guard.ResolvePair(ctx, oldChefName, oldDishName)
	if err != nil {
		return err
	}
	newChefID, newDishID, err := s.guard.ResolvePair(ctx, newChefName, newDishName)
	if err != nil {
		return err
	}

	oldKey := model.CooksKey(oldChefID, oldDishID)
	next := &model.Cooks{
		Key:    model.CooksKey(newChefID, newDishID),
		ChefID: newChefID,
		DishID: newDishID,
	}

	if err := s.repo.Swap(ctx, oldKey, next); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return model.NewDuplicateCooksError(newChefName, newDishName)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewCooksNotFoundError(oldChefName, oldDishName)
		}
		if errors.Is(err, repository.ErrInvalidReference) {
			return model.NewInvalidPairReferenceError(newChefName, newDishName)
		}
		return fmt.Errorf("Cooks関係の付け替えに失敗しました: %w", err)
	}

	slog.Info("Cooks関係を付け替えました",
		slog.String("old_chef", oldChefName),
		slog.String("old_dish", oldDishName),
		slog.String("new_chef", newChefName),
		slog.String("new_dish", newDishName),
	)
	if s.collector != nil {
		s.collector.RecordCooksSwapped()
	}

	return nil
}
