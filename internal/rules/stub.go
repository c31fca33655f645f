package rules

// Fixed is a deterministic RNG that replays queued values. Intn returns the
// next queued roll clamped to [0, n); Float64 returns the next queued chance.
// Exhausted queues return 0.
type Fixed struct {
	Ints   []int
	Floats []float64
}

func (f *Fixed) Intn(n int) int {
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[0]
	f.Ints = f.Ints[1:]
	return min(max(v, 0), n-1)
}

func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[0]
	f.Floats = f.Floats[1:]
	return v
}

// Die queues face values (1-based) for Roll.
func Die(faces ...int) *Fixed {
	f := &Fixed{}
	for _, v := range faces {
		f.Ints = append(f.Ints, v-1)
	}
	return f
}
