package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutbox_DrainOrderAndReset(t *testing.T) {
	o := NewOutbox()
	o.Notify(Info("Added to Cart", "a"))
	o.Notify(Destructive("Cart is Empty", "b"))

	got := o.Drain()
	assert.Equal(t, []Toast{
		{Title: "Added to Cart", Description: "a", Variant: VariantDefault},
		{Title: "Cart is Empty", Description: "b", Variant: VariantDestructive},
	}, got)
	assert.Empty(t, o.Drain())
}

func TestOutbox_DropsOldestWhenFull(t *testing.T) {
	o := NewOutbox()
	for i := 0; i < defaultOutboxCap+2; i++ {
		o.Notify(Info(fmt.Sprint(i), ""))
	}

	got := o.Drain()
	assert.Len(t, got, defaultOutboxCap)
	assert.Equal(t, "2", got[0].Title)
}

func TestRecorder_Last(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(Info("one", ""))
	r.Notify(Info("two", ""))
	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, "two", last.Title)
}
