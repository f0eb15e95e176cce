package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

// newTestDB はテスト用のインメモリSQLiteデータベースを生成する。
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("インメモリDBの作成に失敗: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// TestRun はマイグレーションの適用を検証する。
func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("マイグレーションがバージョン順に適用されること", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000002_add_column.up.sql": &fstest.MapFile{
				Data: []byte("ALTER TABLE items ADD COLUMN note TEXT;"),
			},
			"migrations/000001_create_items.up.sql": &fstest.MapFile{
				Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);"),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("Run()でエラーが発生: %v", err)
		}

		// 2番目のマイグレーションで追加されたカラムが存在すること
		if _, err := db.Exec("INSERT INTO items (id, note) VALUES ('a', 'メモ')"); err != nil {
			t.Errorf("マイグレーション適用後のINSERTに失敗: %v", err)
		}
	})

	t.Run("適用済みのマイグレーションはスキップされること", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_create_items.up.sql": &fstest.MapFile{
				Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);"),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("1回目のRun()でエラーが発生: %v", err)
		}
		// CREATE TABLEにはIF NOT EXISTSが無いため、再適用されるとエラーになる
		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("2回目のRun()でエラーが発生: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("schema_migrationsの取得に失敗: %v", err)
		}
		if count != 1 {
			t.Errorf("適用済みバージョンの数 = %d, want 1", count)
		}
	})

	t.Run("up.sql以外のファイルは無視されること", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_create_items.up.sql": &fstest.MapFile{
				Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);"),
			},
			"migrations/000001_create_items.down.sql": &fstest.MapFile{
				Data: []byte("DROP TABLE items;"),
			},
			"migrations/README.md": &fstest.MapFile{
				Data: []byte("# migrations"),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("Run()でエラーが発生: %v", err)
		}

		if _, err := db.Exec("INSERT INTO items (id) VALUES ('a')"); err != nil {
			t.Errorf("テーブルが作成されていない: %v", err)
		}
	})

	t.Run("SQLが不正な場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_broken.up.sql": &fstest.MapFile{
				Data: []byte("CREATE TALBE broken;"),
			},
		}

		if err := Run(db, fsys, "migrations"); err == nil {
			t.Fatal("不正なSQLでRun()がエラーを返すべき")
		}
	})
}
