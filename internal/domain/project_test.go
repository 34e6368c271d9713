package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_HasDeveloper(t *testing.T) {
	p := &Project{Developers: []Member{{UserID: 7, Name: "Ana"}, {UserID: 9, Name: "Ben"}}}
	assert.True(t, p.HasDeveloper(9))
	assert.False(t, p.HasDeveloper(3))
}

func TestProject_HasDeveloper_ClientsIgnored(t *testing.T) {
	p := &Project{Clients: []Member{{UserID: 4}}}
	assert.False(t, p.HasDeveloper(4))
}

func TestProject_DisplayID(t *testing.T) {
	p := &Project{ID: 42}
	assert.Equal(t, "#42", p.DisplayID())
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}

func TestPointerHelpers(t *testing.T) {
	assert.Nil(t, Int64Ptr(0))
	assert.Equal(t, int64(5), *Int64Ptr(5))
	assert.Nil(t, StrPtr(""))
	assert.Equal(t, "x", *StrPtr("x"))
}
