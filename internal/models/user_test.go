package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeSaveLowercasesEmail(t *testing.T) {
	user := &User{Username: "alice", Email: "Alice@Example.COM"}

	require.NoError(t, user.BeforeSave(nil))

	assert.Equal(t, "alice@example.com", user.Email)
}
