package inventory

import (
	"strings"
	"time"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
)

// ExpiryLayout es el formato de entrada del vencimiento (dd/mm/aaaa).
const ExpiryLayout = "02/01/2006"

// ValidateQuantity verifica que la cantidad solicitada sea positiva.
func ValidateQuantity(requested int) error {
	if requested <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// ValidateWithdrawal verifica 0 < requested <= available.
func ValidateWithdrawal(requested, available int) error {
	if err := ValidateQuantity(requested); err != nil {
		return err
	}
	if requested > available {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Drains indica si retirar requested deja la entrada en cero (debe eliminarse, no guardarse).
func Drains(requested, available int) bool {
	return requested == available
}

// ParseExpiry convierte "dd/mm/aaaa" a una fecha UTC sin hora.
func ParseExpiry(s string) (time.Time, error) {
	t, err := time.Parse(ExpiryLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidExpiry
	}
	return t, nil
}
