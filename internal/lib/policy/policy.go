// Package policy содержит проверки прав, общие для всех сервисов.
package policy

import (
	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// AuthorizeAdmin пропускает только администратора.
func AuthorizeAdmin(user *models.User) error {
	if user == nil {
		return apperr.Unauthenticated("not authenticated")
	}
	if !user.IsAdmin() {
		return apperr.Forbidden("admin role required")
	}
	return nil
}

// AuthorizeOwner пропускает только владельца записи. Чужая запись
// выглядит для вызывающего как отсутствующая.
func AuthorizeOwner(resourceOwnerID, userID, resource string) error {
	if userID == "" || resourceOwnerID != userID {
		return apperr.NotFound("%s not found", resource)
	}
	return nil
}
