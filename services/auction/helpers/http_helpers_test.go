package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"auction-client/internal/devserver/auctionerrors"

	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "auction_not_found",
			err:         auctionerrors.ErrAuctionNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Аукцион не найден",
		},
		{
			name:        "wrapped_sentinel",
			err:         fmt.Errorf("service: %w", auctionerrors.ErrAuctionClosed),
			wantStatus:  http.StatusConflict,
			wantMessage: "Аукцион завершен",
		},
		{
			name:        "bid_too_low_carries_minimum",
			err:         fmt.Errorf("service: %w", &auctionerrors.BidTooLowError{Minimum: 110}),
			wantStatus:  http.StatusConflict,
			wantMessage: "Ставка должна быть не менее 110.00",
		},
		{
			name:        "validation_message_passes_through",
			err:         fmt.Errorf("service: %w", &auctionerrors.ValidationError{Message: "Название должно содержать минимум 5 символов"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Название должно содержать минимум 5 символов",
		},
		{
			name:        "insufficient_funds",
			err:         auctionerrors.ErrInsufficientFunds,
			wantStatus:  http.StatusConflict,
			wantMessage: "Недостаточно средств на балансе",
		},
		{
			name:        "banned_user",
			err:         auctionerrors.ErrUserBanned,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Ваш аккаунт заблокирован",
		},
		{
			name:        "unknown_error",
			err:         errors.New("database exploded"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Внутренняя ошибка сервера",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, message := MapErrorToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantMessage, message)
		})
	}
}
