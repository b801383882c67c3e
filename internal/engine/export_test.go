package engine

// ArithmeticErrorsTotal exposes the failure counter to the engine_test package.
var ArithmeticErrorsTotal = arithmeticErrorsTotal
