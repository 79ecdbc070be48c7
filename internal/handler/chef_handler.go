// Package handler はHTTP APIのハンドラー層を提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/chefbook/internal/model"
)

// ChefServiceInterface はシェフハンドラーが必要とするサービスインターフェース。
type ChefServiceInterface interface {
	// Create は新しいシェフを作成し、ストア内部のIDを返す。
	Create(ctx context.Context, name, address, phone string) (string, error)
	// List は全シェフを作成日時の昇順で返す。
	List(ctx context.Context) ([]*model.Chef, error)
	// Update は現在の名前で指定されたシェフを部分更新する。
	Update(ctx context.Context, selectorName string, patch model.ChefPatch) error
	// Delete は指定名のシェフと関連するCooks関係を削除する。
	Delete(ctx context.Context, name string) error
}

// ChefHandler はシェフ管理のHTTPハンドラー。
type ChefHandler struct {
	service ChefServiceInterface
}

// NewChefHandler はChefHandlerを生成する。
func NewChefHandler(service ChefServiceInterface) *ChefHandler {
	return &ChefHandler{service: service}
}

// createChefRequest はシェフ作成リクエストのボディ。
type createChefRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// updateChefRequest はシェフ更新リクエストのボディ。
// 空のフィールドは既存の値を保持する。
type updateChefRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// chefResponse はシェフ情報のAPIレスポンス。
type chefResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

// createdResponse は作成系APIのレスポンス。
type createdResponse struct {
	ID string `json:"id"`
}

// CreateChef はシェフ作成を処理する。
// POST /api/chefs
func (h *ChefHandler) CreateChef(w http.ResponseWriter, r *http.Request) {
	var req createChefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	id, err := h.service.Create(r.Context(), req.Name, req.Address, req.Phone)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdResponse{ID: id})
}

// ListChefs はシェフ一覧を作成日時の昇順で返す。
// GET /api/chefs
func (h *ChefHandler) ListChefs(w http.ResponseWriter, r *http.Request) {
	chefs, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]chefResponse, 0, len(chefs))
	for _, chef := range chefs {
		resp = append(resp, toChefResponse(chef))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// UpdateChef はシェフの部分更新を処理する。
// PATCH /api/chefs/{name}
func (h *ChefHandler) UpdateChef(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req updateChefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestResponse(w)
		return
	}

	patch := model.ChefPatch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.service.Update(r.Context(), name, patch); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteChef はシェフと関連するCooks関係の削除を処理する。
// DELETE /api/chefs/{name}
func (h *ChefHandler) DeleteChef(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.service.Delete(r.Context(), name); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// toChefResponse はmodel.ChefからAPIレスポンスに変換する。
func toChefResponse(chef *model.Chef) chefResponse {
	return chefResponse{
		Name:      chef.Name,
		Address:   chef.Address,
		Phone:     chef.Phone,
		CreatedAt: chef.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeInvalidRequestResponse はリクエストボディの解析失敗レスポンスを書き込む。
func writeInvalidRequestResponse(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation:
		return http.StatusBadRequest
	case model.ErrCodeDuplicateChef, model.ErrCodeDuplicateDish, model.ErrCodeDuplicateCooks:
		return http.StatusConflict
	case model.ErrCodeChefNotFound, model.ErrCodeDishNotFound, model.ErrCodeCooksNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidReference:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
