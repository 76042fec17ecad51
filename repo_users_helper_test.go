package jobboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveUserIdentifier(t *testing.T) {
	t.Parallel()

	t.Run("uuid identifiers hit the id column", func(t *testing.T) {
		id := uuid.New().String()
		options := resolveUserIdentifier(id)
		assert.Len(t, options, 1)
		assert.Equal(t, "id", options[0].column)
		assert.Equal(t, id, options[0].value)
	})

	t.Run("emails try email before username", func(t *testing.T) {
		options := resolveUserIdentifier("alice@example.com")
		assert.Len(t, options, 2)
		assert.Equal(t, "email", options[0].column)
		assert.Equal(t, "username", options[1].column)
	})

	t.Run("plain handles go to username", func(t *testing.T) {
		options := resolveUserIdentifier("alice")
		assert.Len(t, options, 1)
		assert.Equal(t, "username", options[0].column)
	})

	t.Run("blank identifiers resolve to nothing", func(t *testing.T) {
		assert.Empty(t, resolveUserIdentifier("  "))
	})
}

func TestPrepareUserDefaults(t *testing.T) {
	t.Parallel()

	u := &User{}
	prepareUserDefaults(u)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, RoleApplicant, u.Role)

	keep := &User{ID: uuid.New(), Role: RoleEmployer}
	id := keep.ID
	prepareUserDefaults(keep)
	assert.Equal(t, id, keep.ID)
	assert.Equal(t, RoleEmployer, keep.Role)
}

func TestPrepareJobDefaults(t *testing.T) {
	t.Parallel()

	j := &Job{}
	prepareJobDefaults(j)

	assert.NotEqual(t, uuid.Nil, j.ID)
	assert.Equal(t, EmploymentFullTime, j.EmploymentType)
}

func TestPrepareApplicationDefaults(t *testing.T) {
	t.Parallel()

	a := &Application{}
	prepareApplicationDefaults(a)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, ApplicationSubmitted, a.Status)
}

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, normalizeLimit(0))
	assert.Equal(t, 10, normalizeLimit(-5))
	assert.Equal(t, 25, normalizeLimit(25))
}
