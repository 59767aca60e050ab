package handlers

import (
	"strings"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"
)

// NewClientHandler creates the admin CRUD handler for clients.
func NewClientHandler(clients *services.Collection[models.Client]) *CollectionHandler[models.Client] {
	return NewCollectionHandler("Client", clients, validateClient)
}

func validateClient(cl *models.Client) string {
	cl.Name = strings.TrimSpace(cl.Name)
	cl.Email = strings.TrimSpace(cl.Email)
	if !utils.IsValidEmail(cl.Email) {
		return "invalid email format"
	}
	if cl.PersonType == "" {
		cl.PersonType = models.PersonFizica
	}
	if cl.PersonType != models.PersonFizica && cl.PersonType != models.PersonJuridica {
		return "personType must be fizica or juridica"
	}
	if cl.PersonType == models.PersonJuridica && (utils.IsEmpty(cl.CompanyName) || utils.IsEmpty(cl.TaxID)) {
		return "companyName and taxId are required for companies"
	}
	return ""
}
