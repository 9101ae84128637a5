package checkout

import (
	"regexp"
	"strings"

	"eventmart/internal/order"
)

var (
	phoneRegex   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// ValidateForm checks the billing contact locally, before any write.
func ValidateForm(form order.Customer) *ValidationError {
	fields := map[string]string{}

	required := map[string]string{
		"name":    form.Name,
		"email":   form.Email,
		"phone":   form.Phone,
		"address": form.Address,
		"city":    form.City,
		"state":   form.State,
		"pincode": form.Pincode,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "This field is required"
		}
	}

	if form.Phone != "" && !phoneRegex.MatchString(form.Phone) {
		fields["phone"] = "Invalid 10-digit phone number"
	}
	if form.Pincode != "" && !pincodeRegex.MatchString(form.Pincode) {
		fields["pincode"] = "Invalid 6-digit pincode"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
