// Package integrity はエンティティとCooks関係にまたがる整合性ルールを提供する。
//
// Guard はシェフ・料理の削除時のカスケード伝播と、Cooks操作時の
// 参照先存在チェックを一箇所に集約する。エンティティのサービス層と
// Cooksのサービス層の両方から呼び出される横断的コンポーネント。
package integrity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/chefbook/internal/model"
	"github.com/hitoshi/chefbook/internal/repository"
)

// CascadeRecorder はカスケード削除件数のメトリクス記録インターフェース。
type CascadeRecorder interface {
	RecordCascadeRemoved(kind string, count int)
}

// Guard は参照整合性の番人。
// 全Cooks関係のchef_id/dish_idが常に存在するエンティティを指すという
// 不変条件を、作成時の解決チェックと削除時のカスケードの両面から守る。
type Guard struct {
	chefRepo  repository.ChefRepository
	dishRepo  repository.DishRepository
	collector CascadeRecorder
}

// NewGuard はGuardの新しいインスタンスを生成する。
// collectorはnil許容（テストやメトリクス無効時）。
func NewGuard(chefRepo repository.ChefRepository, dishRepo repository.DishRepository, collector CascadeRecorder) *Guard {
	return &Guard{
		chefRepo:  chefRepo,
		dishRepo:  dishRepo,
		collector: collector,
	}
}

// ResolvePair はシェフ名と料理名を内部IDへ解決する。
// いずれかが存在しない場合は、どちら側が欠けているかを区別した
// INVALID_REFERENCEエラーを返す。
func (g *Guard) ResolvePair(ctx context.Context, chefName, dishName string) (chefID, dishID string, err error) {
	chef, err := g.chefRepo.FindByName(ctx, chefName)
	if err != nil {
		return "", "", fmt.Errorf("参照先シェフの解決に失敗しました: %w", err)
	}
	if chef == nil {
		return "", "", model.NewInvalidChefReferenceError(chefName)
	}

	dish, err := g.dishRepo.FindByName(ctx, dishName)
	if err != nil {
		return "", "", fmt.Errorf("参照先料理の解決に失敗しました: %w", err)
	}
	if dish == nil {
		return "", "", model.NewInvalidDishReferenceError(dishName)
	}

	return chef.ID, dish.ID, nil
}

// CascadeDeleteChef はシェフを参照する全Cooks関係とシェフ本体を削除する。
// 削除はリポジトリ側で単一トランザクションとして実行されるため、
// Cooks関係が削除済みエンティティを指したまま残ることはない。
// 戻り値は削除したCooks関係の件数。
func (g *Guard) CascadeDeleteChef(ctx context.Context, chef *model.Chef) (int, error) {
	removed, err := g.chefRepo.DeleteCascadeByID(ctx, chef.ID)
	if err != nil {
		return 0, fmt.Errorf("シェフのカスケード削除に失敗しました: %w", err)
	}

	slog.Info("シェフを削除しました",
		slog.String("chef_name", chef.Name),
		slog.Int("cooks_removed", removed),
	)
	if g.collector != nil {
		g.collector.RecordCascadeRemoved("chef", removed)
	}

	return removed, nil
}

// CascadeDeleteDish は料理を参照する全Cooks関係と料理本体を削除する。
// 戻り値は削除したCooks関係の件数。
func (g *Guard) CascadeDeleteDish(ctx context.Context, dish *model.Dish) (int, error) {
	removed, err := g.dishRepo.DeleteCascadeByID(ctx, dish.ID)
	if err != nil {
		return 0, fmt.Errorf("料理のカスケード削除に失敗しました: %w", err)
	}

	slog.Info("料理を削除しました",
		slog.String("dish_name", dish.Name),
		slog.Int("cooks_removed", removed),
	)
	if g.collector != nil {
		g.collector.RecordCascadeRemoved("dish", removed)
	}

	return removed, nil
}
