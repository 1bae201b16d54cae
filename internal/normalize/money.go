package normalize

import (
	"fmt"
	"strconv"
	"strings"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"

	"github.com/aristath/marketdata/internal/domain"
)

// FromMoneyValue converts a wire MoneyValue to domain.Money, building the
// Formatted string with the minimum precision needed to show Nano exactly:
// "<N> <CCY>" when nano == 0, otherwise trailing zeros are stripped from
// nano and the fractional part shows exactly that many digits.
func FromMoneyValue(m *pb.MoneyValue) *domain.Money {
	if m == nil {
		return nil
	}
	q := domain.Quotation{Units: m.GetUnits(), Nano: m.GetNano()}
	return &domain.Money{
		Quotation: q,
		Currency:  m.GetCurrency(),
		Formatted: FormatMoney(q, m.GetCurrency()),
	}
}

// FormatMoney implements the formatting rule documented on FromMoneyValue,
// exposed standalone so it can be unit-tested against the quotation
// round-trip property directly.
func FormatMoney(q domain.Quotation, currency string) string {
	if q.Nano == 0 {
		return fmt.Sprintf("%d %s", q.Units, currency)
	}

	negative := q.Units < 0 || q.Nano < 0
	nanoAbs := q.Nano
	if nanoAbs < 0 {
		nanoAbs = -nanoAbs
	}
	unitsAbs := q.Units
	if unitsAbs < 0 {
		unitsAbs = -unitsAbs
	}

	nanoStr := fmt.Sprintf("%09d", nanoAbs)
	frac := strings.TrimRight(nanoStr, "0")

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%s %s", sign, unitsAbs, frac, currency)
}

// ParseMoney is the inverse of FormatMoney's numeric part, used by the
// quotation round-trip property test.
func ParseMoney(formatted string) (units int64, nano int32, err error) {
	parts := strings.Fields(formatted)
	if len(parts) == 0 {
		return 0, 0, fmt.Errorf("normalize: empty formatted money")
	}
	numeric := parts[0]
	negative := strings.HasPrefix(numeric, "-")
	numeric = strings.TrimPrefix(numeric, "-")

	dot := strings.IndexByte(numeric, '.')
	var unitsStr, fracStr string
	if dot < 0 {
		unitsStr = numeric
	} else {
		unitsStr = numeric[:dot]
		fracStr = numeric[dot+1:]
	}

	u, err := strconv.ParseInt(unitsStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("normalize: parse units: %w", err)
	}

	var n int64
	if fracStr != "" {
		padded := fracStr + strings.Repeat("0", 9-len(fracStr))
		n, err = strconv.ParseInt(padded, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("normalize: parse nano: %w", err)
		}
	}

	if negative {
		u, n = -u, -n
	}
	return u, int32(n), nil
}
