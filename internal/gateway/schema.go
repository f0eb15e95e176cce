package gateway

import (
	"database/sql"
	"fmt"
)

// スキーマ定義。db/gateway/schema.sql と同期すること。
const schema = `
CREATE TABLE IF NOT EXISTS users (
    -- ユーザーの一意識別子（UUID）
    id TEXT PRIMARY KEY,
    -- 認証プロバイダ名（github / google / dev）
    provider TEXT NOT NULL,
    -- プロバイダ側のユーザーID
    provider_user_id TEXT NOT NULL,
    -- メールアドレス
    email TEXT NOT NULL,
    -- 表示名
    display_name TEXT NOT NULL,
    -- 登録日時
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    -- 最終ログイン日時
    last_login_at DATETIME NOT NULL DEFAULT (datetime('now')),
    UNIQUE (provider, provider_user_id)
);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}
