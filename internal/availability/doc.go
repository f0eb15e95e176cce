// Package availability は空き時間サービスの内部実装を提供する。
//
// ユーザーごと・日付ごとの空き時間リストを台帳（Ledger）として保存し、
// インデックス指定の更新・削除を含む変更操作を提供する。変更の成功後は
// コーディネータ（Coordinator）が変更通知をnotificationサービスに記録する。
// 通知の記録はベストエフォートであり、失敗しても台帳の変更は成立する。
package availability
