package isa

// resultFlags computes Z and N for a width-truncated result.
func resultFlags(bits int, result uint32) (flags Flags) {
	if result == 0 {
		flags |= FLAG_Z
	}
	if result&signBit(bits) != 0 {
		flags |= FLAG_N
	}
	return
}

func signBit(bits int) uint32 {
	return uint32(1) << (bits - 1)
}

// aluAdd adds two width-truncated values.
func aluAdd(bits int, a, b uint32) (result uint32, flags Flags) {
	mask := WidthMask(bits)
	sum := uint64(a) + uint64(b)
	result = uint32(sum) & mask

	flags = resultFlags(bits, result)
	if sum > uint64(mask) {
		flags |= FLAG_C
	}
	if (^(a^b))&(a^result)&signBit(bits) != 0 {
		flags |= FLAG_V
	}
	return
}

// aluSub subtracts b from a. C reports a borrow.
func aluSub(bits int, a, b uint32) (result uint32, flags Flags) {
	mask := WidthMask(bits)
	result = (a - b) & mask

	flags = resultFlags(bits, result)
	if a < b {
		flags |= FLAG_C
	}
	if (a^b)&(a^result)&signBit(bits) != 0 {
		flags |= FLAG_V
	}
	return
}

// aluMul multiplies; C and V report a non-zero upper half.
func aluMul(bits int, a, b uint32) (result uint32, flags Flags) {
	mask := WidthMask(bits)
	product := uint64(a) * uint64(b)
	result = uint32(product) & mask

	flags = resultFlags(bits, result)
	if product>>bits != 0 {
		flags |= FLAG_C | FLAG_V
	}
	return
}

// aluShl shifts left by b modulo the width. C is the last bit shifted out.
func aluShl(bits int, a, b uint32) (result uint32, flags Flags) {
	n := b % uint32(bits)
	result = (a << n) & WidthMask(bits)

	flags = resultFlags(bits, result)
	if n != 0 && (a>>(uint32(bits)-n))&1 != 0 {
		flags |= FLAG_C
	}
	return
}

// aluShr shifts right (logical) by b modulo the width.
func aluShr(bits int, a, b uint32) (result uint32, flags Flags) {
	n := b % uint32(bits)
	result = a >> n

	flags = resultFlags(bits, result)
	if n != 0 && (a>>(n-1))&1 != 0 {
		flags |= FLAG_C
	}
	return
}
