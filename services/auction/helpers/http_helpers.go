package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-client/internal/devserver/auctionerrors"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Некорректные данные запроса")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to an HTTP status code and the
// Russian error text the pages render verbatim
func MapErrorToHTTP(err error) (int, string) {
	var tooLow *auctionerrors.BidTooLowError
	if errors.As(err, &tooLow) {
		return http.StatusConflict, fmt.Sprintf("Ставка должна быть не менее %.2f", tooLow.Minimum)
	}
	var validation *auctionerrors.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, validation.Message
	}

	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "Аукцион не найден"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "Пользователь не найден"
	case errors.Is(err, auctionerrors.ErrNewsNotFound):
		return http.StatusNotFound, "Новость не найдена"
	case errors.Is(err, auctionerrors.ErrEmailTaken):
		return http.StatusConflict, "Пользователь с таким email уже существует"
	case errors.Is(err, auctionerrors.ErrNotStarted):
		return http.StatusConflict, "Аукцион еще не начался"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusConflict, "Аукцион завершен"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusConflict, "Недостаточно средств на балансе"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Неверный email или пароль"
	case errors.Is(err, auctionerrors.ErrUserBanned):
		return http.StatusForbidden, "Ваш аккаунт заблокирован"
	case errors.Is(err, auctionerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "Требуется авторизация"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "Недостаточно прав"
	default:
		return http.StatusInternalServerError, "Внутренняя ошибка сервера"
	}
}

// RespondError maps err and sends the standard error body
func RespondError(c *gin.Context, handlerName string, err error) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, message)
	utils.Warn(handlerName+": request failed", map[string]any{"error": err.Error(), "status": status})
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
