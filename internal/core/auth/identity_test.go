package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
)

func TestHasRole(t *testing.T) {
	id := Identity{AccountID: "a-1", Role: domain.RoleWorker}

	assert.True(t, id.HasRole(domain.RoleAdmin, domain.RoleWorker))
	assert.False(t, id.HasRole(domain.RolePatient))
	assert.False(t, id.HasRole())
}
