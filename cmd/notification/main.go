// 通知サービスのエントリポイント。
// 空き時間の変更通知を追記専用ログとして永続化し、ユーザーごとに配信する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/schedulehub/internal/notification"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	server, err := notification.NewServer(port)
	if err != nil {
		log.Fatalf("通知サーバーの初期化に失敗: %v", err)
	}

	log.Printf("通知サービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("通知サービスの起動に失敗: %v", err)
	}
}
