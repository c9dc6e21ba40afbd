package fixed

var (
	Zero   = FromInt(0, 0)
	One    = FromInt(1, 0)
	NegOne = FromInt(-1, 0)
)
