package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Range(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
	}{
		{
			name: "正常系: 円の数 5-10",
			min:  5,
			max:  10,
		},
		{
			name: "正常系: 0始まり",
			min:  0,
			max:  12,
		},
		{
			name: "正常系: 幅1",
			min:  7,
			max:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(1)

			for i := 0; i < 200; i++ {
				v := g.Range(tt.min, tt.max)

				assert.GreaterOrEqual(t, v, tt.min)
				assert.Less(t, v, tt.max)
			}
		})
	}
}

func TestGenerator_EmptyRange(t *testing.T) {
	g := New(1)

	assert.Equal(t, 5, g.Range(5, 5))
	assert.Equal(t, 5, g.Range(5, 3))
	assert.Equal(t, 0, g.Intn(0))
}

func TestGenerator_Randomness(t *testing.T) {
	g := NewDefault()

	results := make(map[int]bool)
	for i := 0; i < 100; i++ {
		results[g.Range(0, 100)] = true
	}

	assert.Greater(t, len(results), 10, "100回の生成で10種類以上の値が出るべき")
}

func TestGenerator_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Range(0, 1000), b.Range(0, 1000))
	}
}

func TestGenerator_Bool(t *testing.T) {
	g := New(7)

	trues := 0
	for i := 0; i < 1000; i++ {
		if g.Bool() {
			trues++
		}
	}

	assert.Greater(t, trues, 350)
	assert.Less(t, trues, 650)
}

func TestGenerator_Concurrent(t *testing.T) {
	g := NewDefault()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := g.Intn(10)
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, 10)
			}
		}()
	}
	wg.Wait()
}
