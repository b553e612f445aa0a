package db

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UnicodeLower 是注册到每个 sqlite 连接上的函数名。
// sqlite 自带的 LOWER 只处理 ASCII，搜索需要完整的大小写折叠。
const UnicodeLower = "unicode_lower"

const sqliteDriverName = "sqlite3_multiblog"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(UnicodeLower, strings.ToLower, true)
		},
	})
}

// SQLite returns a dialector whose connections carry UnicodeLower.
func SQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}
