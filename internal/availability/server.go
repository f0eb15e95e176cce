package availability

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	availabilitydb "github.com/nao1215/schedulehub/internal/availability/db"
	"github.com/nao1215/schedulehub/pkg/middleware"
)

// Server は空き時間サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// db はSQLiteデータベース接続。
	db *sql.DB
	// ledger は空き時間台帳。読み取り系ハンドラはこれを直接使用する。
	ledger *Ledger
	// coordinator は変更系ハンドラが使用するコーディネータ。
	coordinator *Coordinator
}

// NewServer は新しい空き時間サーバーを生成する。
// SQLiteデータベースの初期化とマイグレーションの適用を行う。
func NewServer(port string) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", "/data/availability.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	notificationURL := os.Getenv("NOTIFICATION_URL")
	if notificationURL == "" {
		notificationURL = "http://localhost:8082"
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())

	ledger := NewLedger(availabilitydb.New(sqlDB))
	s := &Server{
		router:      router,
		port:        port,
		db:          sqlDB,
		ledger:      ledger,
		coordinator: NewCoordinator(ledger, NewServiceNotifier(notificationURL)),
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
		availabilities := api.Group("/availability")
		{
			// エントリ追加
			availabilities.POST("", s.handleAppend())
			// 空き時間が存在する日付の一覧取得
			availabilities.GET("", s.handleListDates())
			// 指定日のエントリ一覧取得
			availabilities.GET("/:date", s.handleGetDate())
			// 指定インデックスのエントリ更新
			availabilities.PUT("/:date", s.handleUpdateAt())
			// 指定日のエントリ全削除
			availabilities.DELETE("/:date", s.handleDeleteDate())
			// 指定インデックスのエントリ削除
			availabilities.DELETE("/delete/:date", s.handleDeleteAt())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "availability"})
	})
}

// appendRequest はエントリ追加リクエストのJSON構造。
type appendRequest struct {
	// Date は対象日（YYYY-MM-DD形式）。
	Date string `json:"date" binding:"required"`
	// Entry は追加する空き時間エントリ。内容は解釈しない。
	Entry Entry `json:"entry" binding:"required"`
}

// updateRequest はエントリ更新リクエストのJSON構造。
type updateRequest struct {
	// Entry は置き換え後の空き時間エントリ。
	Entry Entry `json:"entry" binding:"required"`
}

// validDate は日付がYYYY-MM-DD形式であるかを検証する。
func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// handleAppend はエントリ追加を処理するハンドラを返す。
// 台帳への追加に成功すると、変更通知がベストエフォートで記録される。
func (s *Server) handleAppend() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		var req appendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}
		if !validDate(req.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日付はYYYY-MM-DD形式で指定してください"})
			return
		}

		if err := s.coordinator.Append(c.Request.Context(), userID, req.Date, req.Entry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("空き時間追加エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "空き時間を追加しました"})
	}
}

// handleGetDate は指定日のエントリ一覧取得を処理するハンドラを返す。
// ドキュメントが存在しない場合は空配列を返す。
func (s *Server) handleGetDate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		date := c.Param("date")
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日付はYYYY-MM-DD形式で指定してください"})
			return
		}

		entries, err := s.ledger.Get(c.Request.Context(), userID, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("空き時間取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// handleUpdateAt は指定インデックスのエントリ更新を処理するハンドラを返す。
// インデックスはindexクエリパラメータで指定する。
func (s *Server) handleUpdateAt() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		date := c.Param("date")
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日付はYYYY-MM-DD形式で指定してください"})
			return
		}

		index, err := strconv.Atoi(c.Query("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "indexクエリパラメータに整数を指定してください"})
			return
		}

		var req updateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		err = s.coordinator.UpdateAt(c.Request.Context(), userID, date, index, req.Entry)
		if errors.Is(err, ErrDayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("空き時間更新エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "空き時間を更新しました"})
	}
}

// handleDeleteAt は指定インデックスのエントリ削除を処理するハンドラを返す。
// インデックスはavailabilityIdクエリパラメータで指定する。
func (s *Server) handleDeleteAt() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		date := c.Param("date")
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日付はYYYY-MM-DD形式で指定してください"})
			return
		}

		index, err := strconv.Atoi(c.Query("availabilityId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "availabilityIdクエリパラメータに整数を指定してください"})
			return
		}

		err = s.coordinator.DeleteAt(c.Request.Context(), userID, date, index)
		if errors.Is(err, ErrDayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("空き時間削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "空き時間を削除しました"})
	}
}

// handleDeleteDate は指定日のエントリ全削除を処理するハンドラを返す。
// ドキュメントが存在しなくても成功する。
func (s *Server) handleDeleteDate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		date := c.Param("date")
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日付はYYYY-MM-DD形式で指定してください"})
			return
		}

		if err := s.coordinator.DeleteDate(c.Request.Context(), userID, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("空き時間全削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "指定日の空き時間をすべて削除しました"})
	}
}

// handleListDates は空き時間が存在する日付の一覧取得を処理するハンドラを返す。
// レスポンスは日付から存在マーカーへのマッピング。エントリ本体は含まないため、
// 必要に応じて日付ごとの取得APIを呼び出すこと。
func (s *Server) handleListDates() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		dates, err := s.ledger.ListDates(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			log.Printf("日付一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, dates)
	}
}
