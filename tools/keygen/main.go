// Command keygen is a development-only helper that exercises gnark's
// circuit-compile/setup path to produce a verifying key in the engine's wire
// format (spec §6, §4.4). It is NOT part of the runtime engine: circuit
// source and the trusted-setup ceremony are out of scope (spec §1); this
// tool exists only so an operator can regenerate a placeholder VK for local
// testing without a real trusted-setup ceremony, adapted from the teacher's
// internal/zkp/circuits.go CircuitManager.Setup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/ccoin/shieldpool/internal/curve"
)

// devCircuit is a placeholder knowledge-of-preimage circuit (X*X == Y),
// standing in for the real withdraw/transfer circuits a prover team would
// supply externally (spec §1 Out of scope: "Circuit source").
type devCircuit struct {
	X frontend.Variable
	Y frontend.Variable `gnark:",public"`
}

func (c *devCircuit) Define(api frontend.API) error {
	sq := api.Mul(c.X, c.X)
	api.AssertIsEqual(sq, c.Y)
	return nil
}

func main() {
	out := flag.String("out", "vk.bin", "output path for the generated verifying key")
	flag.Parse()

	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &devCircuit{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		os.Exit(1)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
	_ = pk // proving key stays with the prover; out of scope here

	raw, err := encodeVK(vk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode vk: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, raw, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d-byte verifying key to %s\n", len(raw), *out)
}

// encodeVK re-serialises a gnark groth16 VerifyingKey into the engine's wire
// format (alpha||beta||gamma||delta||icCount||ic[...]), since gnark's own
// VK.WriteTo uses a different on-disk encoding than the ledger's coefficient-
// swapped convention (spec §4.4, §9).
func encodeVK(vk groth16.VerifyingKey) ([]byte, error) {
	raw, ok := vk.(*groth16bn254.VerifyingKey)
	if !ok {
		return nil, fmt.Errorf("unexpected verifying key type %T", vk)
	}

	buf := append([]byte{}, curve.EncodeG1(&raw.G1.Alpha)...)
	buf = append(buf, curve.EncodeG2(&raw.G2.Beta)...)
	buf = append(buf, curve.EncodeG2(&raw.G2.Gamma)...)
	buf = append(buf, curve.EncodeG2(&raw.G2.Delta)...)

	icCount := len(raw.G1.K)
	icCountBytes := make([]byte, 4)
	for i := 0; i < 4; i++ {
		icCountBytes[3-i] = byte(icCount >> (8 * uint(i)))
	}
	buf = append(buf, icCountBytes...)
	for i := range raw.G1.K {
		buf = append(buf, curve.EncodeG1(&raw.G1.K[i])...)
	}

	return buf, nil
}
