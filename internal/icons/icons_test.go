package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnown(t *testing.T) {
	ic := Resolve("SiGit")
	assert.Equal(t, SiGit, ic.ID)
	assert.Equal(t, PackSimpleIcons, ic.Pack)
	assert.Equal(t, "icon-si-git", ic.Class)
}

func TestResolveUnknownFallsBack(t *testing.T) {
	for _, name := range []string{"NoSuchIcon", "", "sigit"} {
		ic := Resolve(name)
		assert.Equal(t, Default, ic.ID, name)
		assert.Equal(t, "FaCode", ic.Name)
	}
}

func TestTableMatchesIDs(t *testing.T) {
	for i, ic := range table {
		assert.Equal(t, ID(i), ic.ID, ic.Name)
		got, ok := Lookup(ic.Name)
		assert.True(t, ok)
		assert.Equal(t, ic, got)
	}
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "icon-fa-check-circle", Resolve("FaCheckCircle").Class)
	assert.Equal(t, "icon-zap", Resolve("Zap").Class)
}

func TestGetOutOfRange(t *testing.T) {
	assert.Equal(t, Default, Get(ID(-1)).ID)
	assert.Equal(t, Default, Get(ID(1000)).ID)
	assert.Equal(t, "SiDocker", SiDocker.String())
}
