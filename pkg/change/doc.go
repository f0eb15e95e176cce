// Package change は空き時間の変更をサービス間で伝達するための共通語彙を提供する。
//
// availabilityサービスが台帳を変更したとき、変更の種別とメッセージを
// notificationサービスに記録依頼する。その際のJSON構造と種別の定義を
// 両サービスで共有する。
package change
