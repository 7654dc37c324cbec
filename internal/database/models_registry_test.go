package database

import (
	"testing"

	modelspkg "devconnector/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_UsersFirst(t *testing.T) {
	list := PersistentModels()
	require.NotEmpty(t, list)
	_, ok := list[0].(*modelspkg.User)
	require.True(t, ok, "users must migrate before tables that reference them")
}

func TestPersistentModels_IncludesLike(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Like); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Like")
}
