package service

import (
	"fmt"
	"strings"

	"gateway-sim/internal/domain"
	"gateway-sim/internal/parser"
)

// BuildSaleRequest turns a SALE amount and its fields into a sale request.
// Field keys look like card.number or billing.postal_code; an amount of "-"
// leaves the amount blank.
func BuildSaleRequest(amount string, fields []parser.Field) (domain.SaleRequest, error) {
	req := domain.SaleRequest{Amount: amount}
	if req.Amount == BlankAmount {
		req.Amount = ""
	}

	for _, f := range fields {
		if err := setField(&req, f.Key, f.Value); err != nil {
			return req, err
		}
	}
	return req, nil
}

func setField(req *domain.SaleRequest, key, value string) error {
	group, name, nested := strings.Cut(key, ".")
	if !nested {
		switch key {
		case "order_id":
			req.OrderID = value
		case "merchant_account_id":
			req.MerchantAccountID = value
		default:
			return fmt.Errorf("unknown field: %s", key)
		}
		return nil
	}

	switch group {
	case "card":
		if req.CreditCard == nil {
			req.CreditCard = &domain.CreditCard{}
		}
		return setCardField(req.CreditCard, name, value)
	case "billing":
		if req.Billing == nil {
			req.Billing = &domain.Address{}
		}
		return setAddressField(req.Billing, name, value)
	case "shipping":
		if req.Shipping == nil {
			req.Shipping = &domain.Address{}
		}
		return setAddressField(req.Shipping, name, value)
	case "customer":
		if req.Customer == nil {
			req.Customer = &domain.Customer{}
		}
		return setCustomerField(req.Customer, name, value)
	case "options":
		if req.Options == nil {
			req.Options = make(map[string]string)
		}
		req.Options[name] = value
		return nil
	}
	return fmt.Errorf("unknown field: %s", key)
}

func setCardField(c *domain.CreditCard, name, value string) error {
	switch name {
	case "number":
		c.Number = value
	case "expiration_date":
		c.ExpirationDate = value
	case "cardholder_name":
		c.CardholderName = value
	case "cvv":
		c.CVV = value
	default:
		return fmt.Errorf("unknown field: card.%s", name)
	}
	return nil
}

func setAddressField(a *domain.Address, name, value string) error {
	switch name {
	case "first_name":
		a.FirstName = value
	case "street_address":
		a.StreetAddress = value
	case "extended_address":
		a.ExtendedAddress = value
	case "locality":
		a.Locality = value
	case "region":
		a.Region = value
	case "postal_code":
		a.PostalCode = value
	default:
		return fmt.Errorf("unknown address field: %s", name)
	}
	return nil
}

func setCustomerField(c *domain.Customer, name, value string) error {
	switch name {
	case "first_name":
		c.FirstName = value
	case "last_name":
		c.LastName = value
	case "company":
		c.Company = value
	case "phone":
		c.Phone = value
	case "fax":
		c.Fax = value
	case "website":
		c.Website = value
	case "email":
		c.Email = value
	default:
		return fmt.Errorf("unknown field: customer.%s", name)
	}
	return nil
}
