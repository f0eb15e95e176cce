package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	availabilitydb "github.com/nao1215/schedulehub/internal/availability/db"
)

// 台帳操作で発生するエラー。ハンドラ層でHTTPステータスに変換される。
var (
	// ErrDayNotFound は指定された日付のドキュメントが存在しないことを表す。
	ErrDayNotFound = errors.New("指定された日付の空き時間が存在しません")
	// ErrInvalidIndex は指定されたインデックスが現在のリストの範囲外であることを表す。
	ErrInvalidIndex = errors.New("インデックスが範囲外です")
	// ErrStoreUnavailable はストレージへのアクセスに失敗したことを表す。
	ErrStoreUnavailable = errors.New("ストレージへのアクセスに失敗しました")
)

// Entry は1件の空き時間エントリ。時間帯と任意のメタデータを含むが、
// 台帳は内容を解釈せず、受け取ったままの形で保存・返却する。
type Entry = json.RawMessage

// Ledger は（ユーザー, 日付）ごとの空き時間リストを所有する台帳。
//
// リストは1行のJSON配列として保存され、更新・削除は配列全体の
// 読み出し・書き戻しで行う。同一（ユーザー, 日付）への並行書き込みは
// 後勝ち（last-writer-wins）となり、行自体の整合性はストレージ層が保証する。
type Ledger struct {
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *availabilitydb.Queries
}

// NewLedger は新しい空き時間台帳を生成する。
func NewLedger(queries *availabilitydb.Queries) *Ledger {
	return &Ledger{queries: queries}
}

// Append は指定日のリストの末尾にエントリを追加する。
// ドキュメントが存在しない場合は、エントリ1件のリストとして新規作成する。
func (l *Ledger) Append(ctx context.Context, userID, date string, entry Entry) error {
	entries, _, err := l.load(ctx, userID, date)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	return l.store(ctx, userID, date, entries)
}

// Get は指定日のエントリを挿入順で返す。
// ドキュメントが存在しない場合は空のリストを返し、エラーにはしない。
func (l *Ledger) Get(ctx context.Context, userID, date string) ([]Entry, error) {
	entries, _, err := l.load(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateAt は指定日のリストのindex番目のエントリを置き換える。
// ドキュメントが無い場合はErrDayNotFound、indexが範囲外の場合は
// ErrInvalidIndexを返し、どちらの場合も保存内容は変更しない。
func (l *Ledger) UpdateAt(ctx context.Context, userID, date string, index int, entry Entry) error {
	entries, found, err := l.load(ctx, userID, date)
	if err != nil {
		return err
	}
	if !found {
		return ErrDayNotFound
	}
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("%w: index=%d, 件数=%d", ErrInvalidIndex, index, len(entries))
	}

	entries[index] = entry
	return l.store(ctx, userID, date, entries)
}

// DeleteAt は指定日のリストからindex番目のエントリを取り除く。
// 後続のエントリは1つずつ前に詰められる。ドキュメントが無い場合は
// ErrDayNotFoundを返す。indexが範囲外の場合の挙動はignoreOutOfRangeDeleteを参照。
func (l *Ledger) DeleteAt(ctx context.Context, userID, date string, index int) error {
	entries, found, err := l.load(ctx, userID, date)
	if err != nil {
		return err
	}
	if !found {
		return ErrDayNotFound
	}
	if ignoreOutOfRangeDelete(index, len(entries)) {
		return nil
	}

	entries = append(entries[:index], entries[index+1:]...)
	return l.store(ctx, userID, date, entries)
}

// ignoreOutOfRangeDelete は範囲外インデックスの削除を「何もせず成功」として
// 扱うかを判定する。歴史的経緯によりエラーにはしない。
// この挙動を変更する場合はこの関数だけを修正すること。
func ignoreOutOfRangeDelete(index, length int) bool {
	return index < 0 || index >= length
}

// DeleteDate は指定日のドキュメント全体を無条件に削除する。
// ドキュメントが存在しなくても成功する。
func (l *Ledger) DeleteDate(ctx context.Context, userID, date string) error {
	if err := l.queries.DeleteDay(ctx, availabilitydb.DeleteDayParams{
		UserID: userID,
		Date:   date,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// ListDates は空き時間が1件以上登録されている日付の集合を返す。
// 値は存在マーカーであり、エントリ本体は含まない。空配列のドキュメントは
// 削除済みと同様に扱い、結果に含めない。
func (l *Ledger) ListDates(ctx context.Context, userID string) (map[string]bool, error) {
	days, err := l.queries.ListDaysByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	dates := make(map[string]bool, len(days))
	for _, day := range days {
		var entries []Entry
		if err := json.Unmarshal([]byte(day.Entries), &entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		if len(entries) == 0 {
			continue
		}
		dates[day.Date] = true
	}
	return dates, nil
}

// load は保存されたエントリ列を読み出す。2番目の戻り値はドキュメントの有無。
// ドキュメントが無い場合は空のリストを返す。
func (l *Ledger) load(ctx context.Context, userID, date string) ([]Entry, bool, error) {
	day, err := l.queries.GetDay(ctx, availabilitydb.GetDayParams{
		UserID: userID,
		Date:   date,
	})
	if err == sql.ErrNoRows {
		return []Entry{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(day.Entries), &entries); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, true, nil
}

// store はエントリ列全体をJSON配列として書き戻す。
func (l *Ledger) store(ctx context.Context, userID, date string, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if err := l.queries.UpsertDay(ctx, availabilitydb.UpsertDayParams{
		UserID:    userID,
		Date:      date,
		Entries:   string(raw),
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
