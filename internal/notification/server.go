package notification

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	notificationdb "github.com/nao1215/schedulehub/internal/notification/db"
	"github.com/nao1215/schedulehub/pkg/change"
	"github.com/nao1215/schedulehub/pkg/middleware"
)

// Server は通知サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *notificationdb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// NewServer は新しい通知サーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成を行う。
func NewServer(port string) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", "/data/notification.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:  router,
		port:    port,
		queries: notificationdb.New(sqlDB),
		db:      sqlDB,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	api := s.router.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtSecret))
	{
		notifications := api.Group("/notifications")
		{
			// 通知一覧取得（作成日時の降順）
			notifications.GET("", s.handleList())
		}
	}

	// 内部API - availabilityサービスから呼び出される。
	// 信頼されたネットワーク内でのみ到達可能な前提で、JWT認証は課さない。
	internal := s.router.Group("/api/v1/internal")
	{
		internal.POST("/notifications", s.handleRecord())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "notification"})
	})
}

// notificationResponse は通知のJSONレスポンス構造。
type notificationResponse struct {
	// ID は通知の一意識別子。
	ID string `json:"id"`
	// UserID は通知先のユーザーID。
	UserID string `json:"user_id"`
	// Kind は変更の種別（create / update / delete）。
	Kind string `json:"kind"`
	// Message は通知メッセージ。
	Message string `json:"message"`
	// CreatedAt は通知の作成日時（RFC3339形式）。
	CreatedAt string `json:"created_at"`
}

// toNotificationResponse はDB行をJSONレスポンスに変換する。
func toNotificationResponse(n notificationdb.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      n.Kind,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

// handleList は認証済みユーザーの通知一覧を返すハンドラ。
// 作成日時の降順（最新が先頭）で全件を返す。件数制限は設けない。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		notifications, err := s.queries.ListNotificationsByUserID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("通知一覧取得エラー: %v", err)
			return
		}

		responses := make([]notificationResponse, 0, len(notifications))
		for _, n := range notifications {
			responses = append(responses, toNotificationResponse(n))
		}

		c.JSON(http.StatusOK, responses)
	}
}

// handleRecord は変更通知を記録するハンドラ。
// 内部API（availabilityサービスの台帳変更成功後に呼び出される）。
func (s *Server) handleRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req change.RecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		if !change.Kind(req.Kind).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kindはcreate / update / deleteのいずれかを指定してください"})
			return
		}

		notificationID := uuid.New().String()
		if err := s.queries.CreateNotification(c.Request.Context(), notificationdb.CreateNotificationParams{
			ID:        notificationID,
			UserID:    req.UserID,
			Kind:      req.Kind,
			Message:   req.Message,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "通知の記録に失敗しました"})
			log.Printf("通知記録エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      notificationID,
			"message": "通知を記録しました",
		})
	}
}
