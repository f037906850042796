package normalize

import "golang.org/x/text/unicode/norm"

// Z2H 全角→半角の互換正規化（Unicode NFKC）
// 全角英数字・記号を半角に畳み込み、検索時の表記ゆれを吸収する
// 空文字はそのまま返す（副作用なし・常に成功）
func Z2H(s string) string {
	if s == "" {
		return s
	}
	return norm.NFKC.String(s)
}
