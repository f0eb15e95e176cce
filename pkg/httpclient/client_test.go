package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestPostJSON はPOSTリクエストの送信とレスポンスのデシリアライズを検証する。
func TestPostJSON(t *testing.T) {
	t.Parallel()

	t.Run("JSONボディが正しく送信されること", func(t *testing.T) {
		t.Parallel()

		var receivedBody map[string]string
		var receivedContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedContentType = r.Header.Get("Content-Type")
			if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
				t.Errorf("リクエストボディのデコードに失敗: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"record-1"}`)
		}))
		t.Cleanup(server.Close)

		client := New(server.URL)
		var result map[string]string
		err := client.PostJSON(context.Background(), "/records", map[string]string{"kind": "create"}, &result)
		if err != nil {
			t.Fatalf("PostJSON()でエラーが発生: %v", err)
		}

		if receivedContentType != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", receivedContentType)
		}
		if receivedBody["kind"] != "create" {
			t.Errorf("送信されたkind = %q, want create", receivedBody["kind"])
		}
		if result["id"] != "record-1" {
			t.Errorf("result[id] = %q, want record-1", result["id"])
		}
	})

	t.Run("コンテキストのユーザーIDがX-User-IDヘッダーとして伝播されること", func(t *testing.T) {
		t.Parallel()

		var receivedUserID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedUserID = r.Header.Get("X-User-ID")
			fmt.Fprint(w, `{}`)
		}))
		t.Cleanup(server.Close)

		client := New(server.URL)
		ctx := WithUserID(context.Background(), "user-propagated")
		if err := client.PostJSON(ctx, "/records", map[string]string{}, nil); err != nil {
			t.Fatalf("PostJSON()でエラーが発生: %v", err)
		}

		if receivedUserID != "user-propagated" {
			t.Errorf("X-User-ID = %q, want user-propagated", receivedUserID)
		}
	})

	t.Run("エラーステータスの場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"記録に失敗しました"}`)
		}))
		t.Cleanup(server.Close)

		client := New(server.URL)
		err := client.PostJSON(context.Background(), "/records", map[string]string{}, nil)
		if err == nil {
			t.Fatal("エラーステータスでPostJSON()がエラーを返すべき")
		}
	})

	t.Run("接続先が存在しない場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		client := New("http://127.0.0.1:1")
		err := client.PostJSON(context.Background(), "/records", map[string]string{}, nil)
		if err == nil {
			t.Fatal("接続失敗でPostJSON()がエラーを返すべき")
		}
	})
}

// TestGetJSON はGETリクエストの送信とレスポンスのデシリアライズを検証する。
func TestGetJSON(t *testing.T) {
	t.Parallel()

	t.Run("レスポンスが正しくデシリアライズされること", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("メソッド = %q, want GET", r.Method)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"id":"n-1"},{"id":"n-2"}]`)
		}))
		t.Cleanup(server.Close)

		client := New(server.URL)
		var result []map[string]string
		if err := client.GetJSON(context.Background(), "/records", &result); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}

		if len(result) != 2 {
			t.Fatalf("結果の件数 = %d, want 2", len(result))
		}
		if result[0]["id"] != "n-1" {
			t.Errorf("result[0][id] = %q, want n-1", result[0]["id"])
		}
	})

	t.Run("resultがnilの場合はボディを読み捨てること", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"status":"ok"}`)
		}))
		t.Cleanup(server.Close)

		client := New(server.URL)
		if err := client.GetJSON(context.Background(), "/health", nil); err != nil {
			t.Fatalf("GetJSON()でエラーが発生: %v", err)
		}
	})
}

// TestWithUserID はコンテキストへのユーザーID設定を検証する。
func TestWithUserID(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(context.Background(), "user-ctx")
	got, ok := ctx.Value(contextKeyUserID).(string)
	if !ok || got != "user-ctx" {
		t.Errorf("コンテキストのユーザーID = %q (ok=%v), want user-ctx", got, ok)
	}
}
