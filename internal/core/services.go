package core

import (
	temporalclient "go.temporal.io/sdk/client"
)

type Services struct {
	Auth        *AuthService
	User        *UserService
	Document    *DocumentService
	Application *ApplicationService
	Certificate *CertificateService
}

func NewServices(db DB, tc temporalclient.Client) *Services {
	return &Services{
		Auth:        NewAuthService(db),
		User:        NewUserService(db),
		Document:    NewDocumentService(db),
		Application: NewApplicationService(db, tc),
		Certificate: NewCertificateService(db),
	}
}
