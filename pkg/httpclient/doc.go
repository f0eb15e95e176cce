// Package httpclient はサービス間のHTTP通信を行うクライアントを提供する。
//
// availabilityサービスからnotificationサービスへの変更通知の記録依頼など、
// サービス間の通信パターンを統一する。コンテキストに設定されたユーザーIDは
// X-User-IDヘッダーとして転送先に伝播される。
package httpclient
