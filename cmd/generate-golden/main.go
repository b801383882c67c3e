// Command generate-golden writes the golden evaluation cases used by the
// engine tests. Results come from math/big alone, so the file is an oracle
// independent of every engine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// GoldenCase is one expression and its expected outcome.
type GoldenCase struct {
	Expression string `json:"expression"`
	Result     string `json:"result,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
}

// operands are combined pairwise with every binary operator and passed to
// every function.
var operands = []string{
	"0",
	"1",
	"<-3/1>",
	"<1/2>",
	"<-2/3>",
	"<7/5>",
	"<123456789012345678901/987654321>",
	"<-100000000000000000000/3>",
}

var (
	binaryOps = []string{"+", "-", "*", "/", "<", "=="}
	functions = []string{"floor", "round", "abs", "inv"}
)

func main() {
	outputDir := flag.String("out", "internal/engine/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var cases []GoldenCase
	for _, op := range binaryOps {
		for _, a := range operands {
			for _, b := range operands {
				cases = append(cases, binary(op, a, b))
			}
		}
	}
	for _, fn := range functions {
		for _, a := range operands {
			cases = append(cases, call(fn, a))
		}
	}

	filename := filepath.Join(*outputDir, "golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cases); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d cases to %s\n", len(cases), filename)
}

func parse(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(strings.Trim(s, "<>"))
	if !ok {
		panic("bad operand " + s)
	}
	return r
}

func format(r *big.Rat) string {
	return "<" + r.Num().String() + "/" + r.Denom().String() + ">"
}

func binary(op, a, b string) GoldenCase {
	c := GoldenCase{Expression: a + " " + op + " " + b}
	x, y := parse(a), parse(b)
	switch op {
	case "+":
		c.Result = format(new(big.Rat).Add(x, y))
	case "-":
		c.Result = format(new(big.Rat).Sub(x, y))
	case "*":
		c.Result = format(new(big.Rat).Mul(x, y))
	case "/":
		if y.Sign() == 0 {
			c.ErrorKind = "zero_division"
		} else {
			c.Result = format(new(big.Rat).Quo(x, y))
		}
	case "<":
		c.Result = fmt.Sprint(x.Cmp(y) < 0)
	case "==":
		c.Result = fmt.Sprint(x.Cmp(y) == 0)
	}
	return c
}

func call(fn, a string) GoldenCase {
	c := GoldenCase{Expression: fn + "(" + a + ")"}
	x := parse(a)
	switch fn {
	case "abs":
		c.Result = format(new(big.Rat).Abs(x))
	case "inv":
		if x.Sign() == 0 {
			c.ErrorKind = "zero_division"
		} else {
			c.Result = format(new(big.Rat).Inv(x))
		}
	case "floor":
		c.Result, c.ErrorKind = toInt(new(big.Int).Quo(x.Num(), x.Denom()))
	case "round":
		c.Result, c.ErrorKind = toInt(roundHalfAway(x))
	}
	return c
}

// roundHalfAway rounds to the nearest integer, halves away from zero.
func roundHalfAway(x *big.Rat) *big.Int {
	q, r := new(big.Int).QuoRem(new(big.Int).Abs(x.Num()), x.Denom(), new(big.Int))
	if r.Lsh(r, 1).Cmp(x.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if x.Sign() < 0 {
		q.Neg(q)
	}
	return q
}

func toInt(q *big.Int) (string, string) {
	if !q.IsInt64() {
		return "", "out_of_bounds"
	}
	return "<" + q.String() + "/1>", ""
}
