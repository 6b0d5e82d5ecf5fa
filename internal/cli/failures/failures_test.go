package failures

import (
	"bytes"
	"context"
	"testing"

	"spotify-gateway/internal/env"

	"github.com/stretchr/testify/assert"
)

func TestList_JournalDisabled(t *testing.T) {
	var out bytes.Buffer
	err := List(context.Background(), env.Null(), &out, 10)
	assert.ErrorIs(t, err, ErrJournalDisabled)
}
