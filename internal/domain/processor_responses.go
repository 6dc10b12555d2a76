package domain

// processorResponses maps processor response codes to their reason text.
var processorResponses = map[string]string{
	"1000": "Approved",
	"1001": "Approved, check customer ID",
	"1002": "Processed (Successful Credit)",
	"2000": "Do Not Honor",
	"2001": "Insufficient Funds",
	"2002": "Limit Exceeded",
	"2003": "Cardholder's Activity Limit Exceeded",
	"2004": "Expired Card",
	"2005": "Invalid Credit Card Number",
	"2006": "Invalid Date",
	"2007": "No Account",
	"2008": "Card Account Length Error",
	"2009": "No Such Issuer",
	"2010": "Card Issuer Declined CVV",
	"2011": "Voice Authorization Required",
	"2012": "Voice Authorization Required. Possible Lost Card",
	"2013": "Voice Authorization Required. Possible stolen card",
	"2014": "Voice Authorization Required. Fraud Suspected.",
	"2015": "Transaction Not Allowed",
	"2016": "Duplicate Transaction",
	"2017": "Cardholder Stopped Billing",
	"2018": "Cardholder Stopped All Billing",
	"2019": "Declined by Issuer- Invalid Transaction",
	"2020": "Violation",
	"2021": "Security Violation",
	"2022": "Declined- Updated cardholder available",
	"2023": "Processor does not support this feature",
	"2024": "Card Type not enabled",
	"2025": "Set up error- Merchant",
	"2026": "Invalid Merchant ID",
	"2027": "Set up error - Amount",
	"2028": "Set Up Error - Hierarchy",
	"2029": "Set up error- Card",
	"2030": "Set up error- Terminal",
	"2031": "Encryption Error",
	"2032": "Surcharge Not Permitted",
	"2033": "Inconsistent Data",
	"2034": "No Action Taken",
	"2035": "Partial Approval for amount in Group III version",
	"2036": "Unsolicited Reversal",
	"2037": "Already Reversed",
	"2038": "Processor Declined",
	"2039": "Invalid Authorization Code",
	"2040": "Invalid Store",
	"2041": "Declined Call for Approval",
	"2043": "Error. Do not retry, call issuer",
	"2044": "Declined. Call issuer",
	"2045": "Invalid Merchant Number",
	"2046": "Declined",
	"2047": "Call Issuer. Pick Up Card",
	"3000": "Processor network unavailable.Try Again",
}

