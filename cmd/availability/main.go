// 空き時間サービスのエントリポイント。
// ユーザーごと・日付ごとの空き時間リストの管理を担当する。
// 変更が成功するたびに通知サービスへ変更通知を記録する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/schedulehub/internal/availability"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	server, err := availability.NewServer(port)
	if err != nil {
		log.Fatalf("空き時間サーバーの初期化に失敗: %v", err)
	}

	log.Printf("空き時間サービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("空き時間サービスの起動に失敗: %v", err)
	}
}
