package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsSerializationFailure(fmt.Errorf("txmanager: commit transaction: %w", serialization)))

	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("plain error")))
	assert.False(t, IsSerializationFailure(nil))
}
