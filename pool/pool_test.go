package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jsonkit.dev/jsonkit/pool"
)

type cell struct {
	n     int
	reset bool
}

func (c *cell) Reset() {
	c.n = 0
	c.reset = true
}

func TestGetConstructsWhenEmpty(t *testing.T) {
	p := pool.New(func() *cell { return &cell{n: 7} })

	c := p.Get()
	assert.Equal(t, 7, c.n)
}

func TestPutResetsBeforeReuse(t *testing.T) {
	p := pool.New(func() *cell { return &cell{} })

	c := p.Get()
	c.n = 42
	p.Put(c)

	assert.True(t, c.reset)
	assert.Equal(t, 0, c.n)
}
