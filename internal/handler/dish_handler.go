package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/chefbook/internal/model"
)

// DishServiceInterface は料理ハンドラーが必要とするサービスインターフェース。
type DishServiceInterface interface {
	// Create は新しい料理を作成し、ストア内部のIDを返す。
	Create(ctx context.Context, name, detail string) (string, error)
	// List は全料理を作成日時の昇順で返す。
	List(ctx context.Context) ([]*model.Dish, error)
	// Update は現在の名前で指定された料理を部分更新する。
	Update(ctx context.Context, selectorName string, patch model.DishPatch) error
	// Delete は指定名の料理と関連するCooks関係を削除する。
	Delete(ctx context.Context, name string) error
}

// DishHandler は料理管理のHTTPハンドラー。
type DishHandler struct {
	service DishServiceInterface
}

// NewDishHandler はDishHandlerを生成する。
func NewDishHandler(service DishServiceInterface) *DishHandler {
	return &DishHandler{service: service}
}

// createDishRequest は料理作成リクエストのボディ。
type createDishRequest struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// updateDishRequest は料理更新リクエストのボディ。
// 空のフィールドは既存の値を保持する。
type updateDishRequest struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// dishResponse は料理情報のAPIレスポンス。
type dishResponse struct {
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

// CreateDish は料理作成を処理する。
// POST /api/dishes
func (h *DishHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	var req createDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	id, err := h.service.Create(r.Context(), req.Name, req.Detail)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdResponse{ID: id})
}

// ListDishes は料理一覧を作成日時の昇順で返す。
// GET /api/dishes
func (h *DishHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]dishResponse, 0, len(dishes))
	for _, dish := range dishes {
		resp = append(resp, toDishResponse(dish))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// UpdateDish は料理の部分更新を処理する。
// PATCH /api/dishes/{name}
func (h *DishHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req updateDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	patch := model.DishPatch{
		Name:   req.Name,
		Detail: req.Detail,
	}

	if err := h.service.Update(r.Context(), name, patch); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteDish は料理と関連するCooks関係の削除を処理する。
// DELETE /api/dishes/{name}
func (h *DishHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.service.Delete(r.Context(), name); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toDishResponse はmodel.DishからAPIレスポンスに変換する。
func toDishResponse(dish *model.Dish) dishResponse {
	return dishResponse{
		Name:      dish.Name,
		Detail:    dish.Detail,
		CreatedAt: dish.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
