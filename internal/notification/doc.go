// Package notification は通知サービスの内部実装を提供する。
//
// ユーザーごとの変更通知を追記専用のログとして保存する。
// 記録はavailabilityサービスからの内部API呼び出しで行われ、
// 一覧取得は作成日時の降順で返す。記録された通知は変更も削除もされない。
package notification
