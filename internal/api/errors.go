package api

import (
	"errors"
	"fmt"
)

// APIError はリモート呼び出し1回分の失敗。
// Messageは必ず人間可読（サーバのメッセージ、無ければ操作ごとのフォールバック）。
// Statusは0なら到達前のトランスポートエラー。
type APIError struct {
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func NewAPIError(status int, message string) error {
	return &APIError{
		Status:  status,
		Message: message,
	}
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

// ErrorMessage はstoreが表示用に保持するメッセージを取り出す。
func ErrorMessage(err error) string {
	if ae, ok := AsAPIError(err); ok {
		return ae.Message
	}
	return err.Error()
}
