package availability

import (
	"context"
	"log"

	"github.com/nao1215/schedulehub/pkg/change"
)

// Notifier は変更通知の記録先を表す。
type Notifier interface {
	// Record は1件の変更通知を記録する。
	Record(ctx context.Context, userID string, kind change.Kind, message string) error
}

// Coordinator は台帳の変更と変更通知の記録を順序付けるコーディネータ。
//
// 台帳の変更が成功した場合にのみ通知を記録する。台帳の変更が失敗した場合は
// 通知を記録せず、エラーをそのまま呼び出し元に返す。通知の記録に失敗しても
// 台帳の変更は成立しているため、ログに残すだけで呼び出し元には成功を返す。
// 台帳が正、通知は派生情報という非対称性を保つ。
type Coordinator struct {
	// ledger は空き時間台帳。
	ledger *Ledger
	// notifier は変更通知の記録先。
	notifier Notifier
}

// NewCoordinator は新しいコーディネータを生成する。
func NewCoordinator(ledger *Ledger, notifier Notifier) *Coordinator {
	return &Coordinator{
		ledger:   ledger,
		notifier: notifier,
	}
}

// Append はエントリを追加し、成功したらcreate通知を記録する。
func (co *Coordinator) Append(ctx context.Context, userID, date string, entry Entry) error {
	if err := co.ledger.Append(ctx, userID, date, entry); err != nil {
		return err
	}
	co.record(ctx, userID, change.KindCreate, date)
	return nil
}

// UpdateAt はindex番目のエントリを置き換え、成功したらupdate通知を記録する。
func (co *Coordinator) UpdateAt(ctx context.Context, userID, date string, index int, entry Entry) error {
	if err := co.ledger.UpdateAt(ctx, userID, date, index, entry); err != nil {
		return err
	}
	co.record(ctx, userID, change.KindUpdate, date)
	return nil
}

// DeleteAt はindex番目のエントリを取り除き、成功したらdelete通知を記録する。
// 範囲外インデックスのno-op成功（台帳の仕様）でも通知は記録される。
func (co *Coordinator) DeleteAt(ctx context.Context, userID, date string, index int) error {
	if err := co.ledger.DeleteAt(ctx, userID, date, index); err != nil {
		return err
	}
	co.record(ctx, userID, change.KindDelete, date)
	return nil
}

// DeleteDate は指定日のドキュメント全体を削除し、成功したらdelete通知を記録する。
func (co *Coordinator) DeleteDate(ctx context.Context, userID, date string) error {
	if err := co.ledger.DeleteDate(ctx, userID, date); err != nil {
		return err
	}
	co.record(ctx, userID, change.KindDelete, date)
	return nil
}

// record は変更通知を記録する。失敗してもログに残すだけでエラーは伝播しない。
func (co *Coordinator) record(ctx context.Context, userID string, kind change.Kind, date string) {
	if err := co.notifier.Record(ctx, userID, kind, change.Message(kind, date)); err != nil {
		log.Printf("変更通知の記録に失敗: user_id=%s, kind=%s, date=%s, error=%v", userID, kind, date, err)
	}
}
