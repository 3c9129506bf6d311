package refund

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Знаков после запятой в денежных суммах
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// SettleInput данные для расчета отмены
type SettleInput struct {
	ReservationID int64
	Total         decimal.Decimal
	Reason        domain.CancellationReason
	FeeOverride   *decimal.Decimal // штраф, заданный оператором
	Notes         *string
}

// Calculator считает штраф и возврат при отмене.
// Возврат всегда пересчитывается как total - fee.
type Calculator struct {
	feePercent decimal.Decimal
}

// NewCalculator создает калькулятор с процентом штрафа по политике
func NewCalculator(feePercent decimal.Decimal) *Calculator {
	return &Calculator{feePercent: feePercent}
}

// PolicyFee штраф по политике: 0 для уважительных причин, иначе процент от суммы
func (c *Calculator) PolicyFee(total decimal.Decimal, reason domain.CancellationReason) decimal.Decimal {
	if reason.WaivesFee() {
		return decimal.Zero
	}
	return total.Mul(c.feePercent).Div(hundred).Round(moneyPlaces)
}

// Settle рассчитывает итог отмены
func (c *Calculator) Settle(in SettleInput) (*domain.CancellationSettlement, error) {
	// 1. Валидация
	if in.Total.IsNegative() {
		return nil, fmt.Errorf("%w: total amount %s is negative", ErrInvalidInput, in.Total)
	}
	if !in.Reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown cancellation reason %q", ErrInvalidInput, in.Reason)
	}

	settlement := &domain.CancellationSettlement{
		ReservationID:  in.ReservationID,
		OriginalAmount: in.Total,
		Reason:         in.Reason,
		Notes:          in.Notes,
	}

	// 2. Штраф: оператор или политика
	if in.FeeOverride != nil {
		fee := *in.FeeOverride
		if fee.IsNegative() {
			return nil, &domain.FeeError{Fee: fee, Bound: decimal.Zero}
		}

		settlement.FeeSource = domain.FeeSourceOverride
		settlement.PolicyLabel = fmt.Sprintf("%s: operator fee", in.Reason.Label())

		// Штраф больше суммы брони: возврата нет, сообщаем предупреждением
		if fee.GreaterThan(in.Total) {
			fee = in.Total
			settlement.Clamped = true
			settlement.Warning = domain.NoRefundWarning
		}
		settlement.CancellationFee = fee
	} else {
		settlement.FeeSource = domain.FeeSourcePolicy
		settlement.CancellationFee = c.PolicyFee(in.Total, in.Reason)
		settlement.PolicyLabel = c.policyLabel(in.Reason)
	}

	// 3. Возврат только пересчетом
	settlement.RefundAmount = in.Total.Sub(settlement.CancellationFee)

	settlement.RefundType = domain.RefundPartial
	if settlement.CancellationFee.IsZero() {
		settlement.RefundType = domain.RefundFull
	}

	return settlement, nil
}

// VerifySubmittedRefund сверяет присланную клиентом сумму возврата с расчетной.
// nil означает, что клиент сумму не присылал.
func VerifySubmittedRefund(settlement *domain.CancellationSettlement, submitted *decimal.Decimal) error {
	if submitted == nil {
		return nil
	}
	if !submitted.Equal(settlement.RefundAmount) {
		return fmt.Errorf("%w: submitted %s, computed %s", ErrRefundMismatch, submitted, settlement.RefundAmount)
	}
	return nil
}

func (c *Calculator) policyLabel(reason domain.CancellationReason) string {
	if reason.WaivesFee() {
		return fmt.Sprintf("%s: full refund", reason.Label())
	}
	return fmt.Sprintf("%s: %s%% fee", reason.Label(), c.feePercent.String())
}
