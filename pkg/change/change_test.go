package change

import (
	"strings"
	"testing"
)

// TestKindValid は変更種別の妥当性判定を検証する。
func TestKindValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		want bool
	}{
		{name: "createは有効", kind: KindCreate, want: true},
		{name: "updateは有効", kind: KindUpdate, want: true},
		{name: "deleteは有効", kind: KindDelete, want: true},
		{name: "未定義の種別は無効", kind: Kind("archive"), want: false},
		{name: "空文字列は無効", kind: Kind(""), want: false},
		{name: "大文字は無効", kind: Kind("CREATE"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("Kind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

// TestMessage は通知メッセージの組み立てを検証する。
func TestMessage(t *testing.T) {
	t.Parallel()

	t.Run("メッセージに対象日付が含まれること", func(t *testing.T) {
		t.Parallel()
		for _, kind := range []Kind{KindCreate, KindUpdate, KindDelete} {
			msg := Message(kind, "2024-01-01")
			if !strings.Contains(msg, "2024-01-01") {
				t.Errorf("Message(%q, 2024-01-01) = %q, 日付が含まれていない", kind, msg)
			}
		}
	})

	t.Run("種別ごとにメッセージが異なること", func(t *testing.T) {
		t.Parallel()
		created := Message(KindCreate, "2024-01-01")
		updated := Message(KindUpdate, "2024-01-01")
		deleted := Message(KindDelete, "2024-01-01")

		if created == updated || updated == deleted || created == deleted {
			t.Errorf("種別ごとのメッセージが重複: create=%q, update=%q, delete=%q", created, updated, deleted)
		}
	})

	t.Run("未定義の種別でもメッセージを返すこと", func(t *testing.T) {
		t.Parallel()
		msg := Message(Kind("unknown"), "2024-01-01")
		if msg == "" {
			t.Error("未定義種別でMessage()が空文字列を返した")
		}
	})
}
