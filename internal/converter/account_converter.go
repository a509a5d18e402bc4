package converter

import (
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
)

// AccountToSummary converts an Account to the summary returned on login
func AccountToSummary(account *entity.Account) *dto.AccountSummary {
	if account == nil {
		return nil
	}

	return &dto.AccountSummary{
		ID:       account.ID,
		Name:     account.Name,
		Email:    account.Email,
		UserType: string(account.Kind),
	}
}

// AccountToLoginResponse keys the summary as "doctor" or "user" depending on the kind
func AccountToLoginResponse(account *entity.Account) *dto.LoginResponse {
	summary := AccountToSummary(account)
	response := &dto.LoginResponse{Redirect: account.Kind.HomePath()}

	if account.Kind == entity.AccountKindDoctor {
		summary.UserType = ""
		response.Doctor = summary
	} else {
		response.User = summary
	}
	return response
}
