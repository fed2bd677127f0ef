package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenRejectsEmptyConnString(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestCloseDBWithoutConnection(t *testing.T) {
	DB = nil
	assert.NoError(t, CloseDB())
}
