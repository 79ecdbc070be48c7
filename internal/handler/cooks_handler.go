package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/chefbook/internal/model"
)

// CooksServiceInterface はCooksハンドラーが必要とするサービスインターフェース。
type CooksServiceInterface interface {
	// Create はシェフと料理のCooks関係を作成する。
	Create(ctx context.Context, chefName, dishName string) error
	// List は全Cooks関係を作成日時の昇順で、現在のエンティティ名に解決して返す。
	List(ctx context.Context) ([]model.CooksPair, error)
	// Delete はシェフと料理のCooks関係を削除する。
	Delete(ctx context.Context, chefName, dishName string) error
	// Swap は既存のCooks関係を旧ペアから新ペアへ付け替える。
	Swap(ctx context.Context, oldChefName, oldDishName, newChefName, newDishName string) error
}

// CooksHandler はCooks関係管理のHTTPハンドラー。
type CooksHandler struct {
	service CooksServiceInterface
}

// NewCooksHandler はCooksHandlerを生成する。
func NewCooksHandler(service CooksServiceInterface) *CooksHandler {
	return &CooksHandler{service: service}
}

// createCooksRequest はCooks関係作成リクエストのボディ。
type createCooksRequest struct {
	ChefName string `json:"chef_name"`
	DishName string `json:"dish_name"`
}

// swapCooksRequest はCooks関係付け替えリクエストのボディ。
type swapCooksRequest struct {
	OldChefName string `json:"old_chef_name"`
	OldDishName string `json:"old_dish_name"`
	NewChefName string `json:"new_chef_name"`
	NewDishName string `json:"new_dish_name"`
}

// cooksPairResponse はCooks関係のAPIレスポンス。
type cooksPairResponse struct {
	ChefName string `json:"chef_name"`
	DishName string `json:"dish_name"`
}

// CreateCooks はCooks関係の作成を処理する。
// POST /api/cooks
func (h *CooksHandler) CreateCooks(w http.ResponseWriter, r *http.Request) {
	var req createCooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	if err := h.service.Create(r.Context(), req.ChefName, req.DishName); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ListCooks はCooks関係一覧を作成日時の昇順で返す。
// GET /api/cooks
func (h *CooksHandler) ListCooks(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]cooksPairResponse, 0, len(pairs))
	for _, pair := range pairs {
		resp = append(resp, cooksPairResponse{
			ChefName: pair.ChefName,
			DishName: pair.DishName,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DeleteCooks はCooks関係の削除を処理する。
// DELETE /api/cooks?chef={chefName}&dish={dishName}
func (h *CooksHandler) DeleteCooks(w http.ResponseWriter, r *http.Request) {
	chefName := r.URL.Query().Get("chef")
	dishName := r.URL.Query().Get("dish")

	if chefName == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("chef"))
		return
	}
	if dishName == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("dish"))
		return
	}

	if err := h.service.Delete(r.Context(), chefName, dishName); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SwapCooks はCooks関係の付け替えを処理する。
// PUT /api/cooks/swap
func (h *CooksHandler) SwapCooks(w http.ResponseWriter, r *http.Request) {
	var req swapCooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	if req.OldChefName == "" || req.OldDishName == "" || req.NewChefName == "" || req.NewDishName == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("old/new pair"))
		return
	}

	if err := h.service.Swap(r.Context(), req.OldChefName, req.OldDishName, req.NewChefName, req.NewDishName); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
