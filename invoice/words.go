package invoice

import "strings"

var units = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// lessThanThousand renders 0..999 with a trailing space; zero yields the
// empty string so exhausted groups never emit "Zero Thousand" and the like.
func lessThanThousand(n int) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return units[n] + " "
	case n < 100:
		return tens[n/10] + " " + lessThanThousand(n%10)
	default:
		return units[n/100] + " Hundred " + lessThanThousand(n%100)
	}
}

// scaleWords renders a non-negative amount on the Indian scale with a
// trailing space. The crore group recurses, so the lakh and thousand groups
// lessThanThousand sees are always below 100 and it never indexes past the
// units table, whatever the amount.
func scaleWords(n int) string {
	var result string

	if n >= 10000000 {
		result += scaleWords(n/10000000) + "Crore "
		n %= 10000000
	}

	if n >= 100000 {
		result += lessThanThousand(n/100000) + "Lakh "
		n %= 100000
	}

	if n >= 1000 {
		result += lessThanThousand(n/1000) + "Thousand "
		n %= 1000
	}

	return result + lessThanThousand(n)
}

// AmountInWords renders an integer rupee amount on the Indian numbering
// scale (crore, lakh, thousand). Zero short-circuits to the bare literal
// "Zero"; every other value carries the " Rupees Only" suffix.
func AmountInWords(num int) string {
	if num == 0 {
		return "Zero"
	}

	var result string
	n := num

	if n < 0 {
		result = "Negative "
		n = -n
	}

	result += scaleWords(n)

	return strings.TrimSpace(result) + " Rupees Only"
}
