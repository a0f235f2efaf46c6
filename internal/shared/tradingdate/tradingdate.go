// Package tradingdate は取引日（日単位の暦日）の解析とフォーマットを提供します。
package tradingdate

import (
	"fmt"
	"strings"
	"time"
)

// Layout は保存・レスポンスで使用する日付フォーマットです。
const Layout = "2006-01-02"

// inputLayouts はリクエストで受け付ける日付フォーマットです。
var inputLayouts = []string{Layout, "2006/01/02"}

// Parse はリクエストの日付文字列をUTCの0時に正規化した time.Time に変換します。
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range inputLayouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// Format は日付を Layout 形式の文字列にします。
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Normalize は時刻部分を切り捨て、UTCの0時にします。
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBefore は t から n 暦日前の日付を返します。
func DaysBefore(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, -n)
}
