package rng

// mt19937_64 is a direct port of the reference 64-bit Mersenne Twister
// (mt19937-64.c, Matsumoto & Nishimura / Takuji Nishimura), used only to
// expand an application secret into the splatting engine's hash secret
// (see GenerateSecret). It is not exported: callers only ever see the
// xxHash3-backed Engine built on top of it.
type mt19937_64 struct {
	state [mtN]uint64
	index int
}

const (
	mtN          = 312
	mtM          = 156
	mtMatrixA    = 0xB5026F5AA96619E9
	mtUpperMask  = 0xFFFFFFFF80000000
	mtLowerMask  = 0x7FFFFFFF
)

func newMT19937_64(seed uint64) *mt19937_64 {
	m := &mt19937_64{index: mtN}
	m.state[0] = seed
	for i := 1; i < mtN; i++ {
		m.state[i] = 6364136223846793005*(m.state[i-1]^(m.state[i-1]>>62)) + uint64(i)
	}
	return m
}

func (m *mt19937_64) generate() {
	var mag01 = [2]uint64{0, mtMatrixA}
	var i int
	for i = 0; i < mtN-mtM; i++ {
		x := (m.state[i] & mtUpperMask) | (m.state[i+1] & mtLowerMask)
		m.state[i] = m.state[i+mtM] ^ (x >> 1) ^ mag01[x&1]
	}
	for ; i < mtN-1; i++ {
		x := (m.state[i] & mtUpperMask) | (m.state[i+1] & mtLowerMask)
		m.state[i] = m.state[i+(mtM-mtN)] ^ (x >> 1) ^ mag01[x&1]
	}
	x := (m.state[mtN-1] & mtUpperMask) | (m.state[0] & mtLowerMask)
	m.state[mtN-1] = m.state[mtM-1] ^ (x >> 1) ^ mag01[x&1]
	m.index = 0
}

// next64 returns the next raw 64-bit output, tempered as per the reference.
func (m *mt19937_64) next64() uint64 {
	if m.index >= mtN {
		m.generate()
	}
	x := m.state[m.index]
	m.index++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43
	return x
}
