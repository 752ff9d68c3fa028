package definitions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/payrouter/core"
)

func TestCatalogDefaults(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, core.DefaultRoles(), c.Roles())

	for _, role := range c.Roles() {
		def, ok := c.ForRole(role)
		assert.True(t, ok, "role %s", role)
		assert.Equal(t, role.AgentName(), def.Name)
		assert.Equal(t, DefaultModel, def.Model)
		assert.NotEmpty(t, def.Instructions)
		assert.True(t, def.Tools.CodeInterpreter)
	}
}

func TestCatalogOverrides(t *testing.T) {
	c := NewCatalog(func(o *Options) {
		o.Model = "gpt-4o-mini"
		o.CodeInterpreterFileIDs = []string{"file-abc"}
	})

	def, ok := c.ForRole(core.RoleAnalytics)
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", def.Model)
	assert.Equal(t, []string{"file-abc"}, def.Tools.FileIDs)
}

func TestCatalogUnknownRole(t *testing.T) {
	c := NewCatalog()
	_, ok := c.ForRole(core.Role("made_up"))
	assert.False(t, ok)
}
