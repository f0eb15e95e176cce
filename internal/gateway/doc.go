// Package gateway はAPI Gatewayサービスの内部実装を提供する。
//
// ユーザー認証（トークン発行・検証）と、空き時間サービス・通知サービスへの
// リクエストのプロキシを担当する。コアのサービス群は本パッケージが解決した
// ユーザーIDを信頼して動作する。
package gateway
