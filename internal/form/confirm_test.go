package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maynagashev/libadmin/internal/form"
)

func TestConfirmer_AcceptReturnsTarget(t *testing.T) {
	var c form.Confirmer[int]
	c.Open(42, "Pramoedya")

	assert.True(t, c.Pending())
	assert.Contains(t, c.Prompt(), "«Pramoedya»")
	assert.Contains(t, c.Prompt(), "нельзя отменить")

	got, ok := c.Accept()
	assert.True(t, ok)
	assert.Equal(t, 42, got)
	assert.False(t, c.Pending())
}

func TestConfirmer_CancelDiscardsTarget(t *testing.T) {
	var c form.Confirmer[int]
	c.Open(42, "Pramoedya")
	c.Cancel()

	assert.False(t, c.Pending())
	got, ok := c.Accept()
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestConfirmer_AcceptWithoutOpen(t *testing.T) {
	var c form.Confirmer[string]
	_, ok := c.Accept()
	assert.False(t, ok)
}
