package belief

// prune runs the propagator to a fixed point. Whenever the slots sharing one
// exact possibility set are as many as the cards in it, those cards are
// taken and get stripped from every other slot. Masks only ever shrink, so
// the worklist drains.
func (s store) prune() {
	for {
		i := s.nextDirty()
		if i < 0 {
			return
		}
		s[i].dirty = false
		mask := s[i].possible

		matched := 0
		for j := range s {
			if s[j].possible == mask {
				matched++
			}
		}
		if matched != mask.Count() {
			continue
		}
		for j := range s {
			if s[j].possible != mask && s[j].possible.Intersects(mask) {
				s[j].possible &^= mask
				s[j].dirty = true
			}
		}
	}
}

func (s store) nextDirty() int {
	for i := range s {
		if s[i].dirty {
			return i
		}
	}
	return -1
}
