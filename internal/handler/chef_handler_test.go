package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/chefbook/internal/model"
)

// --- モック ---

type mockChefService struct {
	createFn func(ctx context.Context, name, address, phone string) (string, error)
	listFn   func(ctx context.Context) ([]*model.Chef, error)
	updateFn func(ctx context.Context, selectorName string, patch model.ChefPatch) error
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockChefService) Create(ctx context.Context, name, address, phone string) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, address, phone)
	}
	return "chef-1", nil
}
func (m *mockChefService) List(ctx context.Context) ([]*model.Chef, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockChefService) Update(ctx context.Context, selectorName string, patch model.ChefPatch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, selectorName, patch)
	}
	return nil
}
func (m *mockChefService) Delete(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return nil
}

// chefTestRouter はシェフハンドラーだけを組み込んだテスト用ルーターを返す。
func chefTestRouter(svc ChefServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewChefHandler(svc)
	r.Post("/api/chefs", h.CreateChef)
	r.Get("/api/chefs", h.ListChefs)
	r.Patch("/api/chefs/{name}", h.UpdateChef)
	r.Delete("/api/chefs/{name}", h.DeleteChef)
	return r
}

// --- テスト ---

// POST /api/chefs が201とIDを返すことを検証
func TestCreateChef(t *testing.T) {
	var gotName, gotAddress, gotPhone string
	svc := &mockChefService{
		createFn: func(ctx context.Context, name, address, phone string) (string, error) {
			gotName, gotAddress, gotPhone = name, address, phone
			return "chef-1", nil
		},
	}

	router := chefTestRouter(svc)

	body := bytes.NewBufferString(`{"name":"Ana","address":"1 Main St","phone":"555-0100"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chefs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if gotName != "Ana" || gotAddress != "1 Main St" || gotPhone != "555-0100" {
		t.Errorf("service received (%q, %q, %q)", gotName, gotAddress, gotPhone)
	}

	var resp createdResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスのJSONパースに失敗: %v", err)
	}
	if resp.ID != "chef-1" {
		t.Errorf("ID = %q, want %q", resp.ID, "chef-1")
	}
}

// 重複エラーが409にマッピングされることを検証
func TestCreateChef_DuplicateReturns409(t *testing.T) {
	svc := &mockChefService{
		createFn: func(ctx context.Context, name, address, phone string) (string, error) {
			return "", model.NewDuplicateChefError(name)
		},
	}

	router := chefTestRouter(svc)

	body := bytes.NewBufferString(`{"name":"Ana"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chefs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスのJSONパースに失敗: %v", err)
	}
	if resp.Code != model.ErrCodeDuplicateChef {
		t.Errorf("Code = %q, want %q", resp.Code, model.ErrCodeDuplicateChef)
	}
}

// バリデーションエラーが400にマッピングされることを検証
func TestCreateChef_ValidationReturns400(t *testing.T) {
	svc := &mockChefService{
		createFn: func(ctx context.Context, name, address, phone string) (string, error) {
			return "", model.NewValidationError("name")
		},
	}

	router := chefTestRouter(svc)

	body := bytes.NewBufferString(`{"name":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chefs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// 不正なJSONボディが400になることを検証
func TestCreateChef_MalformedBodyReturns400(t *testing.T) {
	router := chefTestRouter(&mockChefService{})

	body := bytes.NewBufferString(`{not-json`)
	req := httptest.NewRequest(http.MethodPost, "/api/chefs", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// GET /api/chefs が作成日時順の一覧を返すことを検証
func TestListChefs(t *testing.T) {
	created := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := &mockChefService{
		listFn: func(ctx context.Context) ([]*model.Chef, error) {
			return []*model.Chef{
				{ID: "chef-1", Name: "Ana", Address: "1 Main St", Phone: "555-0100", CreatedAt: created},
				{ID: "chef-2", Name: "Bo", CreatedAt: created.Add(time.Minute)},
			}, nil
		},
	}

	router := chefTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/chefs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp []chefResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスのJSONパースに失敗: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("len = %d, want 2", len(resp))
	}
	if resp[0].Name != "Ana" || resp[1].Name != "Bo" {
		t.Errorf("unexpected order: %+v", resp)
	}
	if resp[0].CreatedAt != "2026-01-15T12:00:00Z" {
		t.Errorf("CreatedAt = %q, want %q", resp[0].CreatedAt, "2026-01-15T12:00:00Z")
	}
}

// 空の一覧が空配列（nullではなく）で返ることを検証
func TestListChefs_EmptyReturnsArray(t *testing.T) {
	router := chefTestRouter(&mockChefService{})

	req := httptest.NewRequest(http.MethodGet, "/api/chefs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want %q", got, "[]\n")
	}
}

// PATCH /api/chefs/{name} がパッチをサービスへ渡すことを検証
func TestUpdateChef(t *testing.T) {
	var gotSelector string
	var gotPatch model.ChefPatch
	svc := &mockChefService{
		updateFn: func(ctx context.Context, selectorName string, patch model.ChefPatch) error {
			gotSelector = selectorName
			gotPatch = patch
			return nil
		},
	}

	router := chefTestRouter(svc)

	body := bytes.NewBufferString(`{"phone":"555-0199"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/chefs/Ana", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if gotSelector != "Ana" {
		t.Errorf("selector = %q, want %q", gotSelector, "Ana")
	}
	if gotPatch.Phone != "555-0199" || gotPatch.Name != "" || gotPatch.Address != "" {
		t.Errorf("unexpected patch: %+v", gotPatch)
	}
}

// 更新対象不在が404になることを検証
func TestUpdateChef_NotFoundReturns404(t *testing.T) {
	svc := &mockChefService{
		updateFn: func(ctx context.Context, selectorName string, patch model.ChefPatch) error {
			return model.NewChefNotFoundError(selectorName)
		},
	}

	router := chefTestRouter(svc)

	body := bytes.NewBufferString(`{"phone":"555"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/chefs/Ghost", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// DELETE /api/chefs/{name} が204を返すことを検証
func TestDeleteChef(t *testing.T) {
	var gotName string
	svc := &mockChefService{
		deleteFn: func(ctx context.Context, name string) error {
			gotName = name
			return nil
		},
	}

	router := chefTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/chefs/Ana", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if gotName != "Ana" {
		t.Errorf("name = %q, want %q", gotName, "Ana")
	}
}

// 予期しないエラーが500と統一フォーマットになることを検証
func TestDeleteChef_InternalErrorReturns500(t *testing.T) {
	svc := &mockChefService{
		deleteFn: func(ctx context.Context, name string) error {
			return context.DeadlineExceeded
		},
	}

	router := chefTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/chefs/Ana", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスのJSONパースに失敗: %v", err)
	}
	if resp.Code != "INTERNAL_ERROR" {
		t.Errorf("Code = %q, want %q", resp.Code, "INTERNAL_ERROR")
	}
}
