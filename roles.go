package commerce

import "strings"

var validRoles = []UserRole{RoleAdmin, RoleUser}

var validAccountStatuses = []AccountStatus{
	AccountStatusActive,
	AccountStatusSuspended,
}

var validProductStatuses = []ProductStatus{
	ProductStatusPending,
	ProductStatusApproved,
	ProductStatusDisapproved,
}

var validCurrencies = []Currency{
	CurrencyNGN,
	CurrencyUSD,
	CurrencyEUR,
	CurrencyGBP,
}

// ParseRole normalizes raw input into a known role, falling back to
// RoleUser for anything it does not recognize.
func ParseRole(raw string) UserRole {
	role := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range validRoles {
		if r == role {
			return r
		}
	}
	return RoleUser
}

// ParseAccountStatus normalizes raw input into a known account status,
// falling back to AccountStatusActive.
func ParseAccountStatus(raw string) AccountStatus {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range validAccountStatuses {
		if s == status {
			return s
		}
	}
	return AccountStatusActive
}

// ParseProductStatus normalizes raw input into a known approval status,
// falling back to ProductStatusPending.
func ParseProductStatus(raw string) ProductStatus {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range validProductStatuses {
		if s == status {
			return s
		}
	}
	return ProductStatusPending
}

// ParseCurrency normalizes raw input into a supported currency code,
// falling back to CurrencyNGN.
func ParseCurrency(raw string) Currency {
	code := strings.ToUpper(strings.TrimSpace(raw))
	for _, c := range validCurrencies {
		if c == code {
			return c
		}
	}
	return CurrencyNGN
}

// IsValidRole checks raw against the known roles.
func IsValidRole(raw string) bool {
	role := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range validRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidAccountStatus checks raw against the known account statuses.
func IsValidAccountStatus(raw string) bool {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range validAccountStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidProductStatus checks raw against the known approval statuses.
func IsValidProductStatus(raw string) bool {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range validProductStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidCurrency checks raw against the supported currency codes.
func IsValidCurrency(raw string) bool {
	code := strings.ToUpper(strings.TrimSpace(raw))
	for _, c := range validCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
