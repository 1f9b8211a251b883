package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReadStatus(t *testing.T) {
	assert.True(t, ValidReadStatus(StatusRead))
	assert.True(t, ValidReadStatus(StatusUnread))
	assert.True(t, ValidReadStatus(StatusInProgress))
	assert.False(t, ValidReadStatus("Borrowed"))
	assert.False(t, ValidReadStatus(""))
	assert.False(t, ValidReadStatus("read"))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("Sci-Fi"))
	assert.True(t, ValidCategory("Health & Fitness"))
	assert.False(t, ValidCategory("Textbook"))
	assert.False(t, ValidCategory(""))
}
