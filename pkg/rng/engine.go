package rng

// Engine is a counter-based bit generator: its state is the secret, a
// monotonically increasing counter, and a fixed sequence of user objects
// supplied at construction (typically a coordinate and/or salt). Next
// hashes (counter, userObjects...) under secret, then increments counter,
// and is a pure function of that state — two engines built from the same
// secret and user objects produce identical streams.
type Engine struct {
	secret  Secret
	counter uint32
	object  []byte
}

// NewEngine builds an Engine keyed by secret and a fixed tuple of
// trivially-copyable user objects (e.g. a flat coordinate, a kernel
// offset, a salt). The tuple is serialised once and reused on every call
// to Next.
func NewEngine(secret Secret, userObjects ...any) *Engine {
	return &Engine{secret: secret, object: serialise(userObjects...)}
}

// Next returns the next u64 in the stream and advances the counter.
func (e *Engine) Next() uint64 {
	var head [4]byte
	head[0] = byte(e.counter)
	head[1] = byte(e.counter >> 8)
	head[2] = byte(e.counter >> 16)
	head[3] = byte(e.counter >> 24)

	buf := make([]byte, 0, len(head)+len(e.object))
	buf = append(buf, head[:]...)
	buf = append(buf, e.object...)

	result := Hash(e.secret, buf)
	e.counter++
	return result
}

// Counter reports the number of values drawn so far.
func (e *Engine) Counter() uint32 {
	return e.counter
}

// UniformUint32 draws a value uniformly distributed over [0, n) using
// Lemire's multiply-shift reduction, avoiding the modulo bias a plain
// `Next() % n` would introduce.
func UniformUint32(e *Engine, n uint32) uint32 {
	if n == 0 {
		panic("rng: UniformUint32 requires n > 0")
	}
	hi, _ := bitsMul64(e.Next(), uint64(n))
	return uint32(hi)
}

// bitsMul64 returns the 128-bit product of x and y split into (hi, lo).
func bitsMul64(x, y uint64) (hi, lo uint64) {
	const mask32 = 1<<32 - 1
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32
	w0 := x0 * y0
	t := x1*y0 + w0>>32
	w1 := t & mask32
	w2 := t >> 32
	w1 += x0 * y1
	hi = x1*y1 + w2 + w1>>32
	lo = x * y
	return hi, lo
}
