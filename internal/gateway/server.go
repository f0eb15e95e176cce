package gateway

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	gatewaydb "github.com/nao1215/schedulehub/internal/gateway/db"
	"github.com/nao1215/schedulehub/pkg/middleware"
)

// Server はAPI GatewayサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *gatewaydb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
	// serviceURLs は内部サービスのURL。
	serviceURLs serviceURLConfig
}

// serviceURLConfig は内部サービスのURL設定。
type serviceURLConfig struct {
	Availability string
	Notification string
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(port string) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", "/data/gateway.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	urls := serviceURLConfig{
		Availability: getEnvOr("AVAILABILITY_URL", "http://localhost:8081"),
		Notification: getEnvOr("NOTIFICATION_URL", "http://localhost:8082"),
	}

	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router:      router,
		port:        port,
		queries:     gatewaydb.New(sqlDB),
		db:          sqlDB,
		jwtSecret:   jwtSecret,
		serviceURLs: urls,
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
	// 認証エンドポイント（認証不要）
	auth := s.router.Group("/auth")
	{
		auth.GET("/github", s.handleGitHubLogin())
		auth.GET("/github/callback", s.handleGitHubCallback())
		// 開発用トークン発行
		auth.POST("/dev-token", s.handleDevToken())
	}

	// 認証必須のAPIエンドポイント
	api := s.router.Group("/api/v1")
	api.Use(middleware.JWTAuth(s.jwtSecret))
	{
		// ユーザー情報
		api.GET("/me", s.handleGetCurrentUser())

		// 空き時間（プロキシ）
		api.POST("/availability", s.handleProxy(s.serviceURLs.Availability, "/api/v1/availability"))
		api.GET("/availability", s.handleProxy(s.serviceURLs.Availability, "/api/v1/availability"))
		api.GET("/availability/:date", s.handleProxyWithParam(s.serviceURLs.Availability, "/api/v1/availability/", "date"))
		api.PUT("/availability/:date", s.handleProxyWithParam(s.serviceURLs.Availability, "/api/v1/availability/", "date"))
		api.DELETE("/availability/:date", s.handleProxyWithParam(s.serviceURLs.Availability, "/api/v1/availability/", "date"))
		api.DELETE("/availability/delete/:date", s.handleProxyWithParam(s.serviceURLs.Availability, "/api/v1/availability/delete/", "date"))

		// 通知（プロキシ）
		api.GET("/notifications", s.handleProxy(s.serviceURLs.Notification, "/api/v1/notifications"))
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}

// handleDevToken は開発用JWTトークンを発行するハンドラを返す。
// 本番環境では無効化すべき。
func (s *Server) handleDevToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := uuid.New().String()

		// 開発用ユーザーが存在しなければ作成
		user, err := s.queries.GetUserByProvider(c.Request.Context(), gatewaydb.GetUserByProviderParams{
			Provider:       "dev",
			ProviderUserID: "dev-user",
		})
		if err == sql.ErrNoRows {
			if err := s.queries.CreateUser(c.Request.Context(), gatewaydb.CreateUserParams{
				ID:             userID,
				Provider:       "dev",
				ProviderUserID: "dev-user",
				Email:          "dev@localhost",
				DisplayName:    "開発ユーザー",
			}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザー作成に失敗しました"})
				log.Printf("開発ユーザー作成エラー: %v", err)
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザー取得に失敗しました"})
			log.Printf("開発ユーザー取得エラー: %v", err)
			return
		} else {
			// 既存の開発ユーザーを使用
			userID = user.ID
			_ = s.queries.UpdateLastLogin(c.Request.Context(), userID)
		}

		token, err := middleware.GenerateJWT(s.jwtSecret, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークン生成に失敗しました"})
			log.Printf("JWT生成エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":   token,
			"user_id": userID,
		})
	}
}

// handleGitHubLogin はGitHub OAuth2ログインを開始するハンドラを返す。
func (s *Server) handleGitHubLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := os.Getenv("GITHUB_CLIENT_ID")
		if clientID == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GitHub OAuth2が設定されていません"})
			return
		}
		state := uuid.New().String()
		redirectURL := fmt.Sprintf("https://github.com/login/oauth/authorize?client_id=%s&state=%s&scope=user:email", clientID, state)
		c.Redirect(http.StatusTemporaryRedirect, redirectURL)
	}
}

// handleGitHubCallback はGitHub OAuth2コールバックを処理するハンドラを返す。
func (s *Server) handleGitHubCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		// TODO: GitHub OAuth2のアクセストークン交換とユーザー情報取得を実装
		c.JSON(http.StatusNotImplemented, gin.H{"error": "GitHub OAuth2コールバックは未実装です。開発用トークン（POST /auth/dev-token）を使用してください。"})
	}
}

// handleGetCurrentUser は認証済みユーザーの情報を返すハンドラを返す。
func (s *Server) handleGetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		user, err := s.queries.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "ユーザーが見つかりません"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"provider":     user.Provider,
		})
	}
}

// handleProxy は指定されたサービスにリクエストをプロキシするハンドラを返す。
func (s *Server) handleProxy(baseURL, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		proxyURL := baseURL + path
		if c.Request.URL.RawQuery != "" {
			proxyURL += "?" + c.Request.URL.RawQuery
		}
		s.doProxy(c, c.Request.Method, proxyURL)
	}
}

// handleProxyWithParam はURLパラメータを含むプロキシハンドラを返す。
func (s *Server) handleProxyWithParam(baseURL, pathPrefix, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		proxyURL := baseURL + pathPrefix + c.Param(paramName)
		if c.Request.URL.RawQuery != "" {
			proxyURL += "?" + c.Request.URL.RawQuery
		}
		s.doProxy(c, c.Request.Method, proxyURL)
	}
}

// doProxy はリクエストを内部サービスにプロキシする共通処理。
// JWTトークンとユーザーIDヘッダーを転送する。
func (s *Server) doProxy(c *gin.Context, method, url string) {
	req, err := http.NewRequestWithContext(c.Request.Context(), method, url, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "プロキシリクエストの作成に失敗しました"})
		return
	}

	// 元のリクエストヘッダーを転送
	req.Header.Set("Content-Type", c.GetHeader("Content-Type"))
	req.Header.Set("Authorization", c.GetHeader("Authorization"))
	req.Header.Set("X-User-ID", middleware.GetUserID(c))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "内部サービスとの通信に失敗しました"})
		log.Printf("プロキシエラー: url=%s, error=%v", url, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "レスポンスの読み取りに失敗しました"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, body)
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
