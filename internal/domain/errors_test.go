package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockops/internal/domain"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		kind error
	}{
		{"no encontrada", domain.ErrOperationNotFound, "Operation not found", domain.ErrNotFound},
		{"envuelta", fmt.Errorf("tx: %w", domain.ErrInsufficientStock), "Insufficient stock for one or more items", domain.ErrInvariantViolation},
		{"stock negativo", &domain.NegativeStockError{ProductID: "p", Current: "1", Delta: "-2"}, "Resulting stock cannot be negative", domain.ErrInvariantViolation},
		{"estado", domain.ErrOperationNotReady, "Operation must be in READY state to validate", domain.ErrInvalidState},
		{"transitorio", domain.Transient(errors.New("deadlock detected")), "Temporary storage failure, retry later", domain.ErrTransient},
		{"duplicado", fmt.Errorf("insert: %w", domain.ErrDuplicate), "Resource already exists", domain.ErrDuplicate},
		{"interno", errors.New("boom"), "Internal error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Reason(tt.err))
			if tt.kind != nil {
				assert.ErrorIs(t, tt.err, tt.kind)
			}
		})
	}
	assert.Empty(t, domain.Reason(nil))
	assert.Nil(t, domain.Transient(nil))
}
