// Package ledger contiene la aritmética de asientos contra cuentas monetarias.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
)

// Delta valida un asiento y devuelve el cambio con signo sobre el saldo:
// +amount para crédito, -amount para débito.
// El monto debe ser positivo y expresarse en centavos (NUMERIC(18,2) en la base).
func Delta(direction string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: %s tiene fracciones de centavo", domain.ErrInvalidAmount, amount)
	}
	switch direction {
	case entity.DirectionCredit:
		return amount, nil
	case entity.DirectionDebit:
		return amount.Neg(), nil
	}
	return decimal.Zero, domain.ErrInvalidDirection
}

// Apply devuelve el saldo resultante de aplicar el asiento.
func Apply(balance decimal.Decimal, direction string, amount decimal.Decimal) (decimal.Decimal, error) {
	delta, err := Delta(direction, amount)
	if err != nil {
		return balance, err
	}
	return balance.Add(delta), nil
}
