package change

import "fmt"

// Kind は空き時間に対する変更の種別を表す。
type Kind string

const (
	// KindCreate は空き時間エントリが追加されたことを表す。
	KindCreate Kind = "create"
	// KindUpdate は空き時間エントリが更新されたことを表す。
	KindUpdate Kind = "update"
	// KindDelete は空き時間エントリまたは日付全体が削除されたことを表す。
	KindDelete Kind = "delete"
)

// Valid は種別が定義済みのものであるかを判定する。
func (k Kind) Valid() bool {
	switch k {
	case KindCreate, KindUpdate, KindDelete:
		return true
	}
	return false
}

// RecordRequest は通知サービスへの記録依頼のJSON構造。
// availabilityサービスが台帳変更の成功後にPOSTする。
type RecordRequest struct {
	// UserID は通知先のユーザーID。
	UserID string `json:"user_id" binding:"required"`
	// Kind は変更の種別（create / update / delete）。
	Kind string `json:"kind" binding:"required"`
	// Message は通知メッセージ。
	Message string `json:"message" binding:"required"`
}

// Message は変更種別と対象日付から通知メッセージを組み立てる。
func Message(kind Kind, date string) string {
	switch kind {
	case KindCreate:
		return fmt.Sprintf("%s の空き時間が追加されました", date)
	case KindUpdate:
		return fmt.Sprintf("%s の空き時間が更新されました", date)
	case KindDelete:
		return fmt.Sprintf("%s の空き時間が削除されました", date)
	default:
		return fmt.Sprintf("%s の空き時間が変更されました", date)
	}
}
