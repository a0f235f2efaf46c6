// Package response はハンドラー共通のエラーレスポンス処理を提供します。
package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_api/internal/shared/apperror"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusOf はエラー種別に対応するHTTPステータスコードを返します。
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error はエラーをステータスコード付きのJSONとして書き込みます。
// ストレージエラーはサーバー側でログに記録し、呼び出し元には汎用メッセージのみ返します。
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := StatusOf(kind)

	if kind == apperror.KindStorage {
		slog.Error("request failed", "error", err, "path", c.Request.URL.Path, "method", c.Request.Method)
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// BadRequest はリクエストボディのバインド失敗などを400として書き込みます。
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
