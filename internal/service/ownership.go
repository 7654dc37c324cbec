package service

import (
	"devconnector/internal/models"

	"github.com/google/uuid"
)

const notAuthorizedMsg = "User not authorized"

// requireOwner rejects actors that do not own the resource.
func requireOwner(ownerID, actorID uuid.UUID) error {
	if ownerID == uuid.Nil || ownerID != actorID {
		return models.NewForbiddenError(notAuthorizedMsg)
	}
	return nil
}
