// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// JWT認証トークンの生成・検証、パニックリカバリ、CORS設定など、
// 全サービスで共通して使用するミドルウェアを含む。
// 各ハンドラはJWTAuthミドルウェアが解決したユーザーIDを
// GetUserIDで取り出して使用する。
package middleware
