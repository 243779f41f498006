package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/models/dtos"
	gormModels "appfiy/backoffice/internal/models/gorm"
	"appfiy/backoffice/internal/services"
	"appfiy/backoffice/internal/testutil"

	"github.com/go-chi/chi/v5"
)

// withURLParams attaches chi route params the way the router would.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) dtos.APIResponse {
	t.Helper()
	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

// Mock InlineUpdater
type mockInlineUpdater struct {
	calls          int
	gotKind        constants.EntityKind
	gotID          uint
	gotField       string
	gotValue       string
	gotIsChecked   *string
	updateFieldErr error
}

func (m *mockInlineUpdater) UpdateField(_ context.Context, kind constants.EntityKind, id uint, field, raw string, isChecked *string) (*dtos.InlineUpdateResult, error) {
	m.calls++
	m.gotKind, m.gotID, m.gotField, m.gotValue, m.gotIsChecked = kind, id, field, raw, isChecked
	if m.updateFieldErr != nil {
		return nil, m.updateFieldErr
	}
	return &dtos.InlineUpdateResult{ID: id, Entity: kind, FieldName: field, Value: raw}, nil
}

func TestComponentInlineUpdateHandler_Success(t *testing.T) {
	mock := &mockInlineUpdater{}
	handler := ComponentInlineUpdateHandler(mock)

	req := httptest.NewRequest("GET", "/admin/theme/assign-component/update?id=7&fieldName=selected_id&value=0&isChecked=true", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if mock.gotKind != constants.EntityThemeComponent || mock.gotID != 7 || mock.gotField != "selected_id" {
		t.Errorf("Unexpected call: %+v", mock)
	}
	if mock.gotIsChecked == nil || *mock.gotIsChecked != "true" {
		t.Errorf("Expected isChecked=true to be forwarded")
	}

	response := decodeResponse(t, rr)
	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}
}

func TestPageInlineUpdateHandler_NoIsChecked(t *testing.T) {
	mock := &mockInlineUpdater{}
	handler := PageInlineUpdateHandler(mock)

	req := httptest.NewRequest("GET", "/admin/theme/page/inline-update?id=3&fieldName=sort_order&value=4", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if mock.gotKind != constants.EntityThemePage || mock.gotValue != "4" {
		t.Errorf("Unexpected call: %+v", mock)
	}
	if mock.gotIsChecked != nil {
		t.Errorf("Expected isChecked to be absent")
	}
}

func TestInlineUpdateHandler_InvalidID(t *testing.T) {
	mock := &mockInlineUpdater{}
	handler := PageInlineUpdateHandler(mock)

	req := httptest.NewRequest("GET", "/admin/theme/page/inline-update?id=abc&fieldName=sort_order&value=4", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if mock.calls != 0 {
		t.Errorf("Service must not be called for an invalid id")
	}
}

func TestInlineUpdateHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown field", &services.ValidationError{Fields: map[string]string{"drop_table": "field is not editable"}}, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("theme page 9: %w", services.ErrNotFound), http.StatusNotFound},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"db failure", fmt.Errorf("failed to update: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := PageInlineUpdateHandler(&mockInlineUpdater{updateFieldErr: tt.err})
			req := httptest.NewRequest("GET", "/admin/theme/page/inline-update?id=9&fieldName=drop_table&value=1", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("Expected status %d, got %d", tt.want, rr.Code)
			}
			response := decodeResponse(t, rr)
			if response.Status != "error" {
				t.Errorf("Expected status error, got %s", response.Status)
			}
			if tt.want == http.StatusUnprocessableEntity && response.Errors["drop_table"] == "" {
				t.Errorf("Expected field error for drop_table, got %v", response.Errors)
			}
			if tt.want == http.StatusInternalServerError && strings.Contains(response.Message, "connection reset") {
				t.Errorf("Server error text leaked: %s", response.Message)
			}
		})
	}
}

// Mock ThemeLoader / PageDeleter
type mockThemes struct {
	view       *dtos.ThemeView
	loadErr    error
	deletedIDs []uint
}

func (m *mockThemes) Load(_ context.Context, themeID uint) (*dtos.ThemeView, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.view, nil
}

func (m *mockThemes) DeletePage(_ context.Context, pageID uint) error {
	if pageID == 404 {
		return services.ErrNotFound
	}
	m.deletedIDs = append(m.deletedIDs, pageID)
	return nil
}

func TestThemePagesHandler(t *testing.T) {
	mock := &mockThemes{view: &dtos.ThemeView{ThemeID: 1, Name: "Default", Pages: []dtos.ThemePageView{{ThemePageID: 5, Name: "Home"}}}}
	handler := ThemePagesHandler(mock)

	req := withURLParams(httptest.NewRequest("GET", "/api/v1/admin/themes/1/pages", nil), map[string]string{"theme_id": "1"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"theme_page_id":5`) {
		t.Errorf("Expected page in body, got %s", rr.Body.String())
	}

	req = withURLParams(httptest.NewRequest("GET", "/api/v1/admin/themes/x/pages", nil), map[string]string{"theme_id": "x"})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestDeletePageHandler(t *testing.T) {
	mock := &mockThemes{}
	handler := DeletePageHandler(mock)

	req := withURLParams(httptest.NewRequest("DELETE", "/admin/theme/page/12", nil), map[string]string{"id": "12"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || len(mock.deletedIDs) != 1 || mock.deletedIDs[0] != 12 {
		t.Errorf("Expected page 12 deleted, got %d %v", rr.Code, mock.deletedIDs)
	}

	req = withURLParams(httptest.NewRequest("DELETE", "/admin/theme/page/404", nil), map[string]string{"id": "404"})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

// Mock StaticImageUploader
type mockUploader struct {
	gotPageID uint
	gotBytes  int
}

func (m *mockUploader) Upload(_ context.Context, pageID uint, file io.Reader) (*dtos.StaticImageUploadResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	m.gotPageID, m.gotBytes = pageID, len(data)
	return &dtos.StaticImageUploadResult{ThemePageID: pageID, StoredPath: "theme-page/x.png"}, nil
}

func multipartBody(t *testing.T, fields map[string]string, fileField string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "splash.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStaticImageUploadHandler(t *testing.T) {
	mock := &mockUploader{}
	handler := StaticImageUploadHandler(mock, 1<<20)
	img := pngBytes(t)

	body, contentType := multipartBody(t, map[string]string{"theme_page_id": "8"}, "static_screen_image", img)
	req := httptest.NewRequest("POST", "/admin/theme/page/inline-image-upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if mock.gotPageID != 8 || mock.gotBytes != len(img) {
		t.Errorf("Unexpected upload call: page=%d bytes=%d", mock.gotPageID, mock.gotBytes)
	}
}

func TestStaticImageUploadHandler_MissingFile(t *testing.T) {
	handler := StaticImageUploadHandler(&mockUploader{}, 1<<20)

	body, contentType := multipartBody(t, map[string]string{"theme_page_id": "8"}, "", nil)
	req := httptest.NewRequest("POST", "/admin/theme/page/inline-image-upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rr.Code)
	}
	response := decodeResponse(t, rr)
	if response.Errors["static_screen_image"] == "" {
		t.Errorf("Expected static_screen_image error, got %v", response.Errors)
	}
}

// Mock BuildNotifier
type mockBuilds struct {
	got      dtos.BuildNotificationReq
	notified int
}

func (m *mockBuilds) Notify(_ context.Context, req dtos.BuildNotificationReq) (*dtos.BuildNotificationResult, error) {
	m.got = req
	if req.AndroidNotificationContent == "" && req.IOSNotificationContent == "" {
		return nil, &services.ValidationError{Fields: map[string]string{"android_notification_content": "is required"}}
	}
	m.notified++
	return &dtos.BuildNotificationResult{BuildDomainID: 1, SiteURL: req.SiteURL}, nil
}

func (m *mockBuilds) ListDomains(context.Context) ([]dtos.BuildDomainView, error) {
	return []dtos.BuildDomainView{{ID: 1, SiteURL: "https://shop.example.com", LicenseKeyHint: "****1234"}}, nil
}

func (m *mockBuilds) UpdatePushURLs(_ context.Context, id uint, _ dtos.PushURLsReq) error {
	if id != 1 {
		return services.ErrNotFound
	}
	return nil
}

func TestBuildNotificationHandler_Form(t *testing.T) {
	mock := &mockBuilds{}
	handler := BuildNotificationHandler(mock)

	form := url.Values{
		"site_url":                 {"https://shop.example.com"},
		"license_key":              {"abc"},
		"ios_notification_content": {"ready"},
	}
	req := httptest.NewRequest("POST", "/api/v1/build/notification", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if mock.got.IOSNotificationContent != "ready" || mock.got.LicenseKey != "abc" {
		t.Errorf("Form not parsed: %+v", mock.got)
	}
}

func TestBuildNotificationHandler_JSONRejectsEmptyContent(t *testing.T) {
	mock := &mockBuilds{}
	handler := BuildNotificationHandler(mock)

	body, _ := json.Marshal(dtos.BuildNotificationReq{SiteURL: "https://shop.example.com", LicenseKey: "abc"})
	req := httptest.NewRequest("POST", "/api/v1/build/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rr.Code)
	}
	if mock.notified != 0 {
		t.Errorf("Nothing should be dispatched")
	}
}

func TestUpdatePushURLsHandler(t *testing.T) {
	handler := UpdatePushURLsHandler(&mockBuilds{})

	req := withURLParams(httptest.NewRequest("PUT", "/api/v1/admin/build-domains/2/push-urls", strings.NewReader(`{}`)), map[string]string{"id": "2"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	req = withURLParams(httptest.NewRequest("PUT", "/api/v1/admin/build-domains/1/push-urls", strings.NewReader(`{bad`)), map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

// Mock VersionChecker
type mockChecker struct {
	gotApp     uint
	gotVersion string
}

func (m *mockChecker) Evaluate(_ context.Context, appID uint, version string, code *int) (*dtos.CompatibilityResult, error) {
	m.gotApp, m.gotVersion = appID, version
	if version == "1.2" {
		return nil, &services.ValidationError{Fields: map[string]string{"mobile_version": "invalid"}}
	}
	return &dtos.CompatibilityResult{MobileAppID: appID, MobileVersionCode: 10203, Matched: true}, nil
}

func TestVersionCheckHandler(t *testing.T) {
	mock := &mockChecker{}
	handler := VersionCheckHandler(mock)

	tests := []struct {
		body string
		want int
	}{
		{`{"mobile_app_id":3,"mobile_version":" 1.2.3 "}`, http.StatusOK},
		{`{"mobile_app_id":3,"mobile_version":"1.2"}`, http.StatusUnprocessableEntity},
		{`{"mobile_version":"1.2.3"}`, http.StatusUnprocessableEntity},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/api/v1/mobile/version-check", strings.NewReader(tt.body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != tt.want {
			t.Errorf("%s: expected status %d, got %d", tt.body, tt.want, rr.Code)
		}
	}
	if mock.gotVersion != "1.2" || mock.gotApp != 3 {
		t.Errorf("Unexpected last call: %+v", mock)
	}
}

// Mock LayoutTypeManager
type mockLayouts struct {
	rows map[uint]*gormModels.LayoutType
}

func (m *mockLayouts) List(context.Context, bool) ([]gormModels.LayoutType, error) {
	out := []gormModels.LayoutType{}
	for _, r := range m.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockLayouts) Get(_ context.Context, id uint) (*gormModels.LayoutType, error) {
	if r, ok := m.rows[id]; ok {
		return r, nil
	}
	return nil, services.ErrNotFound
}

func (m *mockLayouts) Create(_ context.Context, req dtos.LayoutTypeReq) (*gormModels.LayoutType, error) {
	if req.Name == "" {
		return nil, &services.ValidationError{Fields: map[string]string{"name": "is required"}}
	}
	row := &gormModels.LayoutType{ID: uint(len(m.rows) + 1), Name: req.Name, Slug: common.MakeSlug(req.Name, "layout")}
	m.rows[row.ID] = row
	return row, nil
}

func (m *mockLayouts) Update(ctx context.Context, id uint, req dtos.LayoutTypeReq) (*gormModels.LayoutType, error) {
	row, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Name = req.Name
	return row, nil
}

func (m *mockLayouts) Delete(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockLayouts) Restore(_ context.Context, id uint) (*gormModels.LayoutType, error) {
	return nil, services.ErrNotFound
}

func TestLayoutTypeHandlers(t *testing.T) {
	mock := &mockLayouts{rows: map[uint]*gormModels.LayoutType{}}

	rr := httptest.NewRecorder()
	CreateLayoutTypeHandler(mock).ServeHTTP(rr,
		httptest.NewRequest("POST", "/api/v1/admin/layout-types", strings.NewReader(`{"name":"Grid Layout"}`)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"slug":"grid-layout"`) {
		t.Errorf("Expected generated slug, got %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	CreateLayoutTypeHandler(mock).ServeHTTP(rr,
		httptest.NewRequest("POST", "/api/v1/admin/layout-types", strings.NewReader(`{"name":""}`)))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	DeleteLayoutTypeHandler(mock).ServeHTTP(rr,
		withURLParams(httptest.NewRequest("DELETE", "/api/v1/admin/layout-types/1", nil), map[string]string{"id": "1"}))
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	GetLayoutTypeHandler(mock).ServeHTTP(rr,
		withURLParams(httptest.NewRequest("GET", "/api/v1/admin/layout-types/1", nil), map[string]string{"id": "1"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	RestoreLayoutTypeHandler(mock).ServeHTTP(rr,
		withURLParams(httptest.NewRequest("POST", "/api/v1/admin/layout-types/1/restore", nil), map[string]string{"id": "1"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

type failingCache struct {
	common.CacheInterface
}

func (failingCache) Name() string               { return "redis" }
func (failingCache) Ping(context.Context) error { return fmt.Errorf("connection refused") }

func TestHealthCheckHandler(t *testing.T) {
	_, sqlDB := testutil.NewTestDB(t)
	upSince := time.Now().Add(-time.Minute)

	rr := httptest.NewRecorder()
	HealthCheckHandler(sqlDB, common.NewCacheService(60, 120), upSince).ServeHTTP(rr, httptest.NewRequest("GET", "/healthCheck", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok","dependencies"`) {
		t.Errorf("Expected overall ok, got %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	HealthCheckHandler(sqlDB, failingCache{}, upSince).ServeHTTP(rr, httptest.NewRequest("GET", "/healthCheck", nil))
	if !strings.Contains(rr.Body.String(), `"status":"degraded","dependencies"`) {
		t.Errorf("Expected overall degraded, got %s", rr.Body.String())
	}
}
