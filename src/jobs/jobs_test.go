package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancelAndWait(t *testing.T) {
	quick := New("quick")
	go func() {
		<-quick.Canceled()
		quick.Finish()
	}()

	slow := New("slow")
	go func() {
		<-slow.Canceled()
		time.Sleep(5 * time.Second)
		slow.Finish()
	}()

	unfinished := Jobs{quick, slow}.CancelAndWait(50 * time.Millisecond)
	assert.Equal(t, []string{"slow"}, unfinished)
}
