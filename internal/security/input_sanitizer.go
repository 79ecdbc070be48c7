// Package security はアプリケーションのセキュリティ機能を提供する。
//
// InputSanitizerService はフォーム入力（シェフ名・住所・電話番号、
// 料理名・詳細）からHTMLタグを除去し、保存値に対する格納型XSSを防ぐ。
// bluemondayのStrictPolicyを使用し、タグを一切許可しない。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// InputSanitizerService は入力文字列のサニタイズ機能のインターフェースを定義する。
// エンティティの作成・更新前にサービス層から使用される。
type InputSanitizerService interface {
	// Sanitize は入力文字列からすべてのHTMLタグを除去し、
	// 前後の空白をトリムしたプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// inputSanitizer はInputSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type inputSanitizer struct {
	policy *bluemonday.Policy
}

// NewInputSanitizer はInputSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicy（許可タグなし）を使用するため、<b>等の整形タグも含めて
// すべてのマークアップがテキストから取り除かれる。
func NewInputSanitizer() *inputSanitizer {
	return &inputSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力文字列からすべてのHTMLタグを除去する。
func (s *inputSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}
