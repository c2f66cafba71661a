package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "foo", OrDefault("", "foo"))
	assert.Equal(t, "bar", OrDefault("bar", "foo"))
	assert.Equal(t, 3, OrDefault(0, 3))
	assert.Equal(t, 5, OrDefault(5, 3))
}

func TestRecoverPanicAsError(t *testing.T) {
	boom := errors.New("boom")

	panicky := func() (err error) {
		defer RecoverPanicAsError(&err)
		panic(boom)
	}

	err := panicky()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	panickyValue := func() (err error) {
		defer RecoverPanicAsError(&err)
		panic("not an error")
	}

	err = panickyValue()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not an error")
}
