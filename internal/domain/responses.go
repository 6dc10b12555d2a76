package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ProcessorAuthorizationCode is returned for every sale.
const ProcessorAuthorizationCode = "03589B"

// Codes returned when the amount does not select a specific response.
const (
	ProcessorCodeApproved = "1000"
	ProcessorCodeDeclined = "2046"
)

var (
	leadingNumber = regexp.MustCompile(`^\s*([-+]?)(\d+)(\.\d+)?`)
	noWhitespace  = regexp.MustCompile(`^\S*\n?$`) // a final newline still counts as "not provided"

	declineRangeLow  = decimal.RequireFromString("2047.00")
	declineRangeHigh = decimal.RequireFromString("2099.00")
)

// ProcessorResponseCode maps an amount to the processor response it triggers.
// An amount whose whole part is a known response code returns that code,
// amounts in [2047.00, 2099.00] are declined and everything else is approved.
func ProcessorResponseCode(amount string) string {
	whole, value := parseLeadingNumber(amount)
	if _, ok := processorResponses[whole]; ok {
		return whole
	}
	if value.GreaterThanOrEqual(declineRangeLow) && value.LessThanOrEqual(declineRangeHigh) {
		return ProcessorCodeDeclined
	}
	return ProcessorCodeApproved
}

// ProcessorResponseText returns the reason text for a processor code, or ""
// for an unknown code.
func ProcessorResponseText(code string) string {
	return processorResponses[code]
}

// IsApprovalCode reports whether code authorizes the sale.
func IsApprovalCode(code string) bool {
	switch code {
	case "1000", "1001", "1002":
		return true
	}
	return false
}

// AVSErrorResponseCode derives the AVS error code from the billing postal code.
func AVSErrorResponseCode(postalCode string) string {
	switch postalCode {
	case "30000":
		return "E" // AVS system error
	case "30001":
		return "S" // issuing bank does not support AVS
	}
	return ""
}

// AVSPostalCodeResponseCode derives the AVS postal code result.
func AVSPostalCodeResponseCode(postalCode string) string {
	switch {
	case postalCode == "20000":
		return "N" // does not match
	case postalCode == "20001":
		return "U" // not verified
	case noWhitespace.MatchString(postalCode):
		return "I" // not provided
	}
	return "M"
}

// AVSStreetAddressResponseCode derives the AVS street address result.
func AVSStreetAddressResponseCode(streetAddress string) string {
	switch {
	case strings.HasPrefix(streetAddress, "200"):
		return "N"
	case strings.HasPrefix(streetAddress, "201"):
		return "U"
	case noWhitespace.MatchString(streetAddress):
		return "I"
	}
	return "M"
}

// CVVResponseCode derives the CVV verification result.
func CVVResponseCode(cvv string) string {
	switch {
	case cvv == "200":
		return "N"
	case cvv == "201":
		return "U"
	case cvv == "301":
		return "S" // issuer does not participate
	case noWhitespace.MatchString(cvv):
		return "I"
	}
	return "M"
}

// parseLeadingNumber reads the numeric prefix of s the way a lenient string
// to number conversion does: garbage yields zero. It returns the whole part
// without leading zeros and the full value.
func parseLeadingNumber(s string) (string, decimal.Decimal) {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return "0", decimal.Zero
	}
	sign, digits, frac := m[1], strings.TrimLeft(m[2], "0"), m[3]
	if digits == "" {
		digits = "0"
	}
	if sign != "-" {
		sign = ""
	}
	whole := digits
	if sign == "-" && digits != "0" {
		whole = "-" + digits
	}
	value, err := decimal.NewFromString(sign + digits + frac)
	if err != nil {
		return whole, decimal.Zero
	}
	return whole, value
}
