package model

import (
	"math"
	"regexp"
	"strconv"
)

// Discount - процент скидки, выпавший на колесе
type Discount int

// DefaultDiscounts Допустимые значения скидок в порядке сегментов колеса
var DefaultDiscounts = []Discount{5, 10, 15, 20, 25, 50}

// Ключи клиентского хранилища
const (
	KeyTheme          = "theme"
	KeyPromoSpun      = "promoSpun"
	KeyActiveDiscount = "activeDiscount"

	// SpunValue Значение флага promoSpun после спина или закрытия окна
	SpunValue = "1"
)

// MaxDiscount Верхняя граница процента скидки
const MaxDiscount Discount = 100

var numericRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseStoredDiscount - достает первое число из сохраненного значения.
// Значение может содержать декоративные символы ("15%", "Знижка 15%").
// Возвращает false, если числа нет или оно отрицательное.
// Значения больше MaxDiscount приводятся к MaxDiscount
func ParseStoredDiscount(raw string) (Discount, bool) {
	m := numericRe.FindString(raw)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	f = math.Min(math.Round(f), float64(MaxDiscount))
	return Discount(f), true
}

// ParseActiveDiscount - сохраненная скидка, если она из набора allowed
func ParseActiveDiscount(raw string, allowed []Discount) (Discount, bool) {
	d, ok := ParseStoredDiscount(raw)
	if !ok || !d.Allowed(allowed) {
		return 0, false
	}
	return d, true
}

// String - значение в том виде, в котором оно сохраняется в хранилище
func (d Discount) String() string {
	return strconv.Itoa(int(d))
}

// Allowed - входит ли скидка в набор допустимых значений
func (d Discount) Allowed(set []Discount) bool {
	for _, v := range set {
		if v == d {
			return true
		}
	}
	return false
}
