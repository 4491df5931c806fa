package auth

import "github.com/hongminglow/blogcart-be/internal/models"

// CanMutate reports whether the authenticated user may update or delete a
// resource owned by ownerID. Handlers call it after loading the resource
// and must not touch the store when it returns false.
func CanMutate(ownerID string, user models.User) bool {
	return ownerID != "" && ownerID == user.ID
}
