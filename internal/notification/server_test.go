package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	notificationdb "github.com/nao1215/schedulehub/internal/notification/db"
	"github.com/nao1215/schedulehub/pkg/middleware"
)

// setupTestServer はインメモリSQLiteを使ったテスト用の通知サーバーを生成する。
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("データベース接続に失敗: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := initSchema(sqlDB); err != nil {
		t.Fatalf("スキーマ初期化に失敗: %v", err)
	}

	s := &Server{
		router:  gin.New(),
		port:    "0",
		queries: notificationdb.New(sqlDB),
		db:      sqlDB,
	}
	s.setupRoutes()
	return s
}

// testToken はデフォルト秘密鍵で署名したテスト用JWTを生成する。
func testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.GenerateJWT("dev-secret-key", userID)
	if err != nil {
		t.Fatalf("JWT生成に失敗: %v", err)
	}
	return token
}

// doRequest はテスト用のHTTPリクエストを実行する。
func doRequest(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestNotificationHealthCheck(t *testing.T) {
	t.Parallel()

	s := setupTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("ステータスコードが一致しない: got=%d, want=%d", w.Code, http.StatusOK)
	}
}

func TestRecordNotification(t *testing.T) {
	t.Parallel()

	s := setupTestServer(t)

	t.Run("内部APIは認証なしで通知を記録できる", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/v1/internal/notifications", "",
			`{"user_id":"user-1","kind":"create","message":"2024-06-01 の空き時間が追加されました"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("ステータスコードが一致しない: got=%d, want=%d, body=%s", w.Code, http.StatusCreated, w.Body.String())
		}

		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if resp["id"] == "" {
			t.Error("通知IDが空")
		}
	})

	t.Run("不正なkindは400が返る", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/v1/internal/notifications", "",
			`{"user_id":"user-1","kind":"modify","message":"msg"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコードが一致しない: got=%d, want=%d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("必須フィールド欠落は400が返る", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/v1/internal/notifications", "",
			`{"kind":"create","message":"msg"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコードが一致しない: got=%d, want=%d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestListNotifications(t *testing.T) {
	t.Parallel()

	t.Run("トークンなしでは401が返る", func(t *testing.T) {
		t.Parallel()
		s := setupTestServer(t)

		w := doRequest(t, s, http.MethodGet, "/api/v1/notifications", "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコードが一致しない: got=%d, want=%d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("通知がない場合は空配列が返る", func(t *testing.T) {
		t.Parallel()
		s := setupTestServer(t)

		w := doRequest(t, s, http.MethodGet, "/api/v1/notifications", testToken(t, "user-1"), "")
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコードが一致しない: got=%d, body=%s", w.Code, w.Body.String())
		}
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Errorf("空配列が返るべき: body=%s", w.Body.String())
		}
	})

	t.Run("作成日時の降順で全件が返る", func(t *testing.T) {
		t.Parallel()
		s := setupTestServer(t)
		ctx := context.Background()

		// 作成日時をずらして直接挿入する
		base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		for i, msg := range []string{"1件目", "2件目", "3件目"} {
			if err := s.queries.CreateNotification(ctx, notificationdb.CreateNotificationParams{
				ID:        uuid.New().String(),
				UserID:    "user-1",
				Kind:      "create",
				Message:   msg,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}); err != nil {
				t.Fatalf("通知の挿入に失敗: %v", err)
			}
		}

		w := doRequest(t, s, http.MethodGet, "/api/v1/notifications", testToken(t, "user-1"), "")
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコードが一致しない: got=%d, body=%s", w.Code, w.Body.String())
		}

		var resp []notificationResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if len(resp) != 3 {
			t.Fatalf("件数が一致しない: got=%d, want=3", len(resp))
		}
		wantOrder := []string{"3件目", "2件目", "1件目"}
		for i, n := range resp {
			if n.Message != wantOrder[i] {
				t.Errorf("通知[%d]の順序が一致しない: got=%s, want=%s", i, n.Message, wantOrder[i])
			}
		}
	})

	t.Run("他ユーザーの通知は含まれない", func(t *testing.T) {
		t.Parallel()
		s := setupTestServer(t)

		w := doRequest(t, s, http.MethodPost, "/api/v1/internal/notifications", "",
			`{"user_id":"user-1","kind":"create","message":"user-1向け"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("通知の記録に失敗: body=%s", w.Body.String())
		}
		w = doRequest(t, s, http.MethodPost, "/api/v1/internal/notifications", "",
			`{"user_id":"user-2","kind":"delete","message":"user-2向け"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("通知の記録に失敗: body=%s", w.Body.String())
		}

		w = doRequest(t, s, http.MethodGet, "/api/v1/notifications", testToken(t, "user-1"), "")
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコードが一致しない: got=%d, body=%s", w.Code, w.Body.String())
		}

		var resp []notificationResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if len(resp) != 1 {
			t.Fatalf("件数が一致しない: got=%d, want=1", len(resp))
		}
		if resp[0].Message != "user-1向け" {
			t.Errorf("メッセージが一致しない: got=%s", resp[0].Message)
		}
		if resp[0].Kind != "create" {
			t.Errorf("種別が一致しない: got=%s", resp[0].Kind)
		}
	})
}
